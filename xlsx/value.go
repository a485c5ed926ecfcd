package xlsx

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueKind is the kind of a cell value.
type ValueKind int

const (
	// KindString is written as an inline string.
	KindString ValueKind = iota
	// KindNumber is written as raw numeric text.
	KindNumber
)

// String returns the string representation of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a cell value to be written: a string or a number.
// The zero Value is the empty string.
type Value struct {
	kind ValueKind
	text string
}

// String returns a string cell value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns a numeric cell value. NaN and infinities have no numeric
// form in a worksheet and become string values.
func Number(f float64) Value {
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return String(text)
	}
	return Value{kind: KindNumber, text: text}
}

// Int returns a numeric cell value holding an integer.
func Int(n int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(n, 10)}
}

// Kind reports whether v is a string or a number.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Text returns the value as it is written into the worksheet and read back.
func (v Value) Text() string {
	return v.text
}

// ValueOf converts a Go value into a cell value. Integers and floats become
// numbers, as does a json.Number that parses as a float. Booleans become the
// strings TRUE and FALSE, nil becomes the empty string, and anything else is
// formatted with fmt.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return String("")
	case Value:
		return v
	case string:
		return String(v)
	case bool:
		if v {
			return String("TRUE")
		}
		return String("FALSE")
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return ValueOf(uint64(v))
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case uint64:
		if v <= math.MaxInt64 {
			return Int(int64(v))
		}
		return Number(float64(v))
	case float32:
		return Number(float64(v))
	case float64:
		return Number(v)
	case json.Number:
		if f, err := v.Float64(); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return Value{kind: KindNumber, text: v.String()}
		}
		return String(v.String())
	case fmt.Stringer:
		return String(v.String())
	default:
		return String(fmt.Sprint(v))
	}
}

// Row converts its arguments into a row of cell values with ValueOf.
func Row(values ...any) []Value {
	row := make([]Value, len(values))
	for i, v := range values {
		row[i] = ValueOf(v)
	}
	return row
}

// Strings converts rows of strings into rows of string cell values.
func Strings(rows [][]string) [][]Value {
	out := make([][]Value, len(rows))
	for i, row := range rows {
		out[i] = make([]Value, len(row))
		for j, s := range row {
			out[i][j] = String(s)
		}
	}
	return out
}
