// Package sheetzip provides a fluent API for reading rows, tables and
// archive entries from minimal .xlsx workbooks.
//
// Basic usage:
//
//	rows, warnings, err := sheetzip.Open("inventory.xlsx").Rows()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", sheetzip.FormatWarnings(warnings))
//	}
//
// With options:
//
//	md, _, err := sheetzip.Open("pelanggan.xlsx").
//	    Sheet("Pelanggan").
//	    Inflate().
//	    ToMarkdown()
//
// For lower-level access, the container and xlsx packages are also available.
package sheetzip

// Open returns an Extractor for the .xlsx file at filename. The file is
// read on the first terminal operation.
//
// Example:
//
//	rows, warnings, err := sheetzip.Open("inventory.xlsx").Rows()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns an Extractor over an .xlsx workbook already in memory.
//
// Example:
//
//	text, _, err := sheetzip.FromBytes(data).Text()
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	names := sheetzip.Must(sheetzip.Open("inventory.xlsx").Sheets())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRows is a helper that wraps a call to Rows(), Text() or another
// terminal operation returning warnings, and panics if the error is
// non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	rows := sheetzip.MustRows(sheetzip.Open("inventory.xlsx").Rows())
func MustRows[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
