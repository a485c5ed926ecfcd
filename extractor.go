package sheetzip

import (
	"fmt"
	"os"

	"github.com/tsawler/sheetzip/container"
	"github.com/tsawler/sheetzip/format"
	"github.com/tsawler/sheetzip/xlsx"
)

// Extractor provides a fluent interface for reading .xlsx workbooks.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte
	loaded   bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor. The workbook bytes are
// shared and never modified.
func (e *Extractor) clone() *Extractor {
	newExt := *e
	return &newExt
}

// load returns the workbook bytes, reading the file when the Extractor
// was opened by name, and checks that they hold an .xlsx workbook.
func (e *Extractor) load() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}

	data := e.data
	if !e.loaded {
		if e.filename == "" {
			return nil, fmt.Errorf("no filename specified")
		}
		if f := format.Detect(e.filename); f != format.XLSX && f != format.Unknown {
			return nil, fmt.Errorf("unsupported file format: %s", f)
		}
		var err error
		data, err = os.ReadFile(e.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", err)
		}
	}

	if err := format.CheckSpreadsheet(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (e *Extractor) readOptions() xlsx.ReadOptions {
	return xlsx.ReadOptions{
		Sheet:        e.options.sheet,
		Inflate:      e.options.inflate,
		MaxEntrySize: e.options.maxEntrySize,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Sheet selects the worksheet to read by name, ignoring case.
// The default is the first sheet in the workbook.
//
// Example:
//
//	rows, _, err := sheetzip.Open("book.xlsx").Sheet("Pelanggan").Rows()
func (e *Extractor) Sheet(name string) *Extractor {
	newExt := e.clone()
	newExt.options.sheet = name
	return newExt
}

// Inflate enables reading DEFLATE-compressed parts. Workbooks saved by
// spreadsheet applications usually need it; workbooks written by this
// module store their parts uncompressed.
func (e *Extractor) Inflate() *Extractor {
	newExt := e.clone()
	newExt.options.inflate = true
	return newExt
}

// MaxEntrySize bounds the size of any single inflated part. Parts that
// would inflate beyond n bytes are skipped.
func (e *Extractor) MaxEntrySize(n int64) *Extractor {
	newExt := e.clone()
	if n <= 0 {
		newExt.err = fmt.Errorf("invalid max entry size: %d", n)
		return newExt
	}
	newExt.options.maxEntrySize = n
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Sheets returns the worksheet names in workbook order.
func (e *Extractor) Sheets() ([]string, error) {
	data, err := e.load()
	if err != nil {
		return nil, err
	}
	return xlsx.Sheets(data, e.readOptions()), nil
}

// Rows returns the cells of the selected worksheet as strings, one slice
// per row, with skipped columns filled with empty strings.
//
// Example:
//
//	rows, warnings, err := sheetzip.Open("inventory.xlsx").Rows()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range rows {
//	    fmt.Println(strings.Join(row, ","))
//	}
func (e *Extractor) Rows() ([][]string, []Warning, error) {
	data, err := e.load()
	if err != nil {
		return nil, nil, err
	}

	warnings := e.archiveWarnings(data)
	rows, err := xlsx.DecodeWithOptions(data, e.readOptions())
	if err != nil {
		return nil, warnings, err
	}
	return rows, warnings, nil
}

// Table returns the selected worksheet as a Table whose headers are the
// first row.
func (e *Extractor) Table() (xlsx.Table, []Warning, error) {
	rows, warnings, err := e.Rows()
	if err != nil {
		return xlsx.Table{}, warnings, err
	}
	return xlsx.NewTable(rows), warnings, nil
}

// Text returns the selected worksheet as tab-separated lines.
func (e *Extractor) Text() (string, []Warning, error) {
	t, warnings, err := e.Table()
	if err != nil {
		return "", warnings, err
	}
	return t.Text("\t"), warnings, nil
}

// ToMarkdown returns the selected worksheet as a Markdown pipe table.
//
// Example:
//
//	md, _, err := sheetzip.Open("inventory.xlsx").ToMarkdown()
func (e *Extractor) ToMarkdown() (string, []Warning, error) {
	t, warnings, err := e.Table()
	if err != nil {
		return "", warnings, err
	}
	return t.Markdown(), warnings, nil
}

// ToHTML returns the selected worksheet as an HTML table.
func (e *Extractor) ToHTML() (string, []Warning, error) {
	t, warnings, err := e.Table()
	if err != nil {
		return "", warnings, err
	}
	s, err := t.HTML()
	if err != nil {
		return "", warnings, fmt.Errorf("rendering HTML: %w", err)
	}
	return s, warnings, nil
}

// Entries returns the headers of every entry in the workbook archive.
func (e *Extractor) Entries() ([]container.FileHeader, []Warning, error) {
	data, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	return container.Headers(data), e.archiveWarnings(data), nil
}

// archiveWarnings reports conditions under which entries may have been
// missed: an unreadable central directory, or compressed parts that are
// skipped because inflation is off.
func (e *Extractor) archiveWarnings(data []byte) []Warning {
	var warnings []Warning
	if _, err := container.Directory(data); err != nil {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("%v; entries recovered by scanning local headers", err),
		})
	}

	if !e.options.inflate {
		skipped := 0
		for _, h := range container.Headers(data) {
			if h.Method != container.Store {
				skipped++
			}
		}
		if skipped > 0 {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("%d compressed entries skipped; use Inflate to read them", skipped),
			})
		}
	}
	return warnings
}
