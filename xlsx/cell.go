package xlsx

import (
	"fmt"
	"strconv"
)

// MaxColumns is the number of columns a worksheet can hold (A through XFD).
const MaxColumns = 16384

// ParseCellRef parses a cell reference like "A1" or "AA100" into column and row indices (0-indexed).
func ParseCellRef(ref string) (col, row int, err error) {
	if ref == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}

	letters := columnLetters(ref)
	if letters == "" {
		return 0, 0, fmt.Errorf("invalid cell reference %q: no column letters", ref)
	}
	if len(letters) == len(ref) {
		return 0, 0, fmt.Errorf("invalid cell reference %q: no row number", ref)
	}

	col = ColumnToIndex(letters)
	if col < 0 {
		return 0, 0, fmt.Errorf("invalid column: %s", letters)
	}

	rowNum, err := strconv.Atoi(ref[len(letters):])
	if err != nil || rowNum < 1 {
		return 0, 0, fmt.Errorf("invalid row: %s", ref[len(letters):])
	}

	return col, rowNum - 1, nil
}

// ColumnToIndex converts column letters to a 0-indexed column number,
// reading the letters as base-26 digits: A=0, Z=25, AA=26, AB=27.
// Lower case is accepted. It returns -1 for anything else, including
// columns beyond MaxColumns.
func ColumnToIndex(letters string) int {
	if letters == "" {
		return -1
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		switch {
		case c >= 'A' && c <= 'Z':
			n = n*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			n = n*26 + int(c-'a') + 1
		default:
			return -1
		}
		if n > MaxColumns {
			return -1
		}
	}
	return n - 1
}

// IndexToColumn converts a 0-indexed column number to column letter(s).
// 0=A, 1=B, ..., 25=Z, 26=AA, 27=AB, etc.
func IndexToColumn(index int) string {
	if index < 0 {
		return ""
	}

	var buf [16]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// CellRef creates a cell reference string from column and row indices (0-indexed).
func CellRef(col, row int) string {
	return IndexToColumn(col) + strconv.Itoa(row+1)
}

// columnLetters returns the leading ASCII letters of a cell reference.
func columnLetters(ref string) string {
	i := 0
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}
	return ref[:i]
}

// refColumn returns the 0-indexed column of a cell reference, or -1 when
// the reference has no usable column letters.
func refColumn(ref string) int {
	return ColumnToIndex(columnLetters(ref))
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
