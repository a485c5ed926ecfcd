// Package format provides file format detection for sheetzip inputs.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tsawler/sheetzip/container"
)

// Format represents a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// ZIP indicates a ZIP archive that is not a known office document.
	ZIP
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// PPTX indicates a Microsoft PowerPoint (.pptx) presentation.
	PPTX
	// ODS indicates an OpenDocument spreadsheet (.ods).
	ODS
	// JSON indicates a JSON document.
	JSON
)

// ErrNotSpreadsheet is returned by CheckSpreadsheet for anything other
// than an XLSX workbook.
var ErrNotSpreadsheet = errors.New("not an XLSX workbook")

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case ZIP:
		return "ZIP"
	case XLSX:
		return "XLSX"
	case DOCX:
		return "DOCX"
	case PPTX:
		return "PPTX"
	case ODS:
		return "ODS"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case ZIP:
		return ".zip"
	case XLSX:
		return ".xlsx"
	case DOCX:
		return ".docx"
	case PPTX:
		return ".pptx"
	case ODS:
		return ".ods"
	case JSON:
		return ".json"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip":
		return ZIP
	case ".xlsx", ".xlsm":
		return XLSX
	case ".docx":
		return DOCX
	case ".pptx":
		return PPTX
	case ".ods":
		return ODS
	case ".json":
		return JSON
	default:
		return Unknown
	}
}

// DetectBytes inspects content to determine its format. ZIP archives are
// told apart by the names of their entries, which works for compressed
// archives as well as stored ones.
func DetectBytes(data []byte) Format {
	if isZIPMagic(data) {
		return detectZIPFormat(data)
	}
	if isJSONMagic(data) {
		return JSON
	}
	return Unknown
}

// CheckSpreadsheet returns nil when data is an XLSX workbook and an error
// wrapping ErrNotSpreadsheet naming the detected format otherwise.
func CheckSpreadsheet(data []byte) error {
	if f := DetectBytes(data); f != XLSX {
		return fmt.Errorf("%w (detected %s)", ErrNotSpreadsheet, f)
	}
	return nil
}

// isZIPMagic checks for a local file header, or the end record of an
// empty archive, at the start of data.
func isZIPMagic(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04")) || bytes.HasPrefix(data, []byte("PK\x05\x06"))
}

// isJSONMagic checks whether the first non-space byte opens an array or object.
func isJSONMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n\ufeff")
	return len(data) > 0 && (data[0] == '[' || data[0] == '{')
}

// detectZIPFormat inspects entry names to tell XLSX, DOCX, PPTX and ODS apart.
func detectZIPFormat(data []byte) Format {
	headers := container.Headers(data)

	// OpenDocument stores an uncompressed mimetype entry first.
	for _, h := range headers {
		if h.Name == "mimetype" {
			if strings.Contains(container.Scan(data)["mimetype"], "application/vnd.oasis.opendocument.spreadsheet") {
				return ODS
			}
		}
	}

	// Check for Office Open XML markers
	for _, h := range headers {
		switch {
		case strings.HasPrefix(h.Name, "xl/"):
			return XLSX
		case strings.HasPrefix(h.Name, "word/"):
			return DOCX
		case strings.HasPrefix(h.Name, "ppt/"):
			return PPTX
		}
	}

	return ZIP
}
