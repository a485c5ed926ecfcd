// Package records maps inventory and customer records to and from
// worksheet rows.
//
// Export functions produce a header row followed by one row per record,
// with counts and amounts written as numeric cells. Import functions take
// the rows recovered by xlsx.Read, skip blank rows, treat the first
// remaining row as headers and convert the rest leniently: integer columns
// accept any leading integer text and fall back to zero, and rows missing
// their identifying columns are dropped rather than reported.
package records

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	"github.com/tsawler/sheetzip/xlsx"
)

var (
	// ErrNoRows is returned when a workbook yields no importable records.
	ErrNoRows = errors.New("no valid rows found")
	// ErrMissingColumns is returned when the header row lacks a required column.
	ErrMissingColumns = errors.New("missing required columns")
)

// RowError reports a record that was parsed but failed validation.
// Row is the 1-based worksheet row number.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkHeaders verifies that the leading header cells match required,
// ignoring case and surrounding whitespace.
func checkHeaders(header []string, required []string) error {
	fold := cases.Fold()
	var missing []string
	for i, want := range required {
		if i >= len(header) || fold.String(strings.TrimSpace(header[i])) != fold.String(want) {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// sheetRows drops blank rows and splits the rest into the header (the
// first non-blank row) and the data rows after it, each paired with its
// 1-based worksheet row number. ok is false when there is no data row.
func sheetRows(rows [][]string) (header []string, body [][]string, numbers []int, ok bool) {
	seenHeader := false
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if !seenHeader {
			header, seenHeader = row, true
			continue
		}
		body = append(body, row)
		numbers = append(numbers, i+1)
	}
	return header, body, numbers, len(body) > 0
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// column returns the trimmed value at index i, or "" past the row end.
func column(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseInt reads the leading integer of s: optional sign then digits,
// after leading whitespace. Anything else, including overflow, gives 0.
// "12.5" and "12 pcs" both read as 12.
func parseInt(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// validateAll runs struct validation over parsed records, keeping the
// valid ones and collecting a RowError for each invalid one.
func validateAll[T any](items []T, numbers []int) ([]T, error) {
	var kept []T
	var errs []error
	for i := range items {
		if err := validate.Struct(items[i]); err != nil {
			errs = append(errs, &RowError{Row: numbers[i], Err: err})
			continue
		}
		kept = append(kept, items[i])
	}
	return kept, errors.Join(errs...)
}

// decode reads the worksheet rows of an .xlsx workbook.
func decode(data []byte, opts xlsx.ReadOptions) ([][]string, error) {
	rows, err := xlsx.DecodeWithOptions(data, opts)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	return rows, nil
}
