package xlsx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tsawler/sheetzip/container"
)

// ErrNoWorksheet is returned when no worksheet part can be recovered from
// the input.
var ErrNoWorksheet = errors.New("no worksheet found")

// ReadOptions holds options for reading a workbook.
type ReadOptions struct {
	Sheet        string // Worksheet name to read (default: first sheet)
	Inflate      bool   // Decode DEFLATE-compressed parts instead of skipping them
	MaxEntrySize int64  // Limit for an inflated part (default: container.DefaultMaxEntrySize)
}

// Read returns the cells of the first worksheet in data as strings, one
// slice per row. Read never fails: damaged or unrecognized input yields
// the rows that could be recovered, possibly none.
//
// Only parts stored without compression are read. Workbooks saved by
// spreadsheet applications usually compress their parts; use
// ReadWithOptions with Inflate set to read those.
func Read(data []byte) [][]string {
	return ReadWithOptions(data, ReadOptions{})
}

// ReadWithOptions is Read with the specified options.
func ReadWithOptions(data []byte, opts ReadOptions) [][]string {
	rows, _ := DecodeWithOptions(data, opts)
	return rows
}

// Decode is Read, but reports ErrNoWorksheet when data holds no readable
// worksheet part.
func Decode(data []byte) ([][]string, error) {
	return DecodeWithOptions(data, ReadOptions{})
}

// DecodeWithOptions is Decode with the specified options.
func DecodeWithOptions(data []byte, opts ReadOptions) ([][]string, error) {
	wb := openWorkbook(data, opts)

	sheet, ok := wb.sheet(opts.Sheet)
	if !ok {
		if opts.Sheet != "" {
			return nil, fmt.Errorf("%w: %q", ErrNoWorksheet, opts.Sheet)
		}
		return nil, ErrNoWorksheet
	}

	text, ok := wb.files[sheet.path]
	if !ok {
		return nil, fmt.Errorf("%w: part %s is missing or compressed", ErrNoWorksheet, sheet.path)
	}

	return ParseWorksheet(text, wb.sharedStrings()), nil
}

// Sheets returns the names of the worksheets in data, in workbook order.
func Sheets(data []byte, opts ReadOptions) []string {
	wb := openWorkbook(data, opts)
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.name
	}
	return names
}

// workbook is the set of parts recovered from an archive.
type workbook struct {
	files  map[string]string
	rels   map[string]relationshipXML // workbook relationships by ID
	sheets []sheetPart
}

type sheetPart struct {
	name string
	path string
}

func openWorkbook(data []byte, opts ReadOptions) *workbook {
	wb := &workbook{
		files: container.ExtractWithOptions(data, container.ExtractOptions{Inflate: opts.Inflate, MaxEntrySize: opts.MaxEntrySize}),
		rels:  make(map[string]relationshipXML),
	}
	wb.parseRelationships()
	wb.parseSheets()
	return wb
}

// parseRelationships parses the workbook relationships file.
func (wb *workbook) parseRelationships() {
	text, ok := wb.files[partWorkbookRels]
	if !ok {
		return
	}

	var rels relationshipsXML
	if err := unmarshal(text, &rels); err != nil {
		return
	}
	for _, rel := range rels.Relationship {
		wb.rels[rel.ID] = rel
	}
}

// parseSheets lists the worksheets named by xl/workbook.xml. Without a
// usable workbook part the conventional first sheet is assumed.
func (wb *workbook) parseSheets() {
	var book workbookXML
	if text, ok := wb.files[partWorkbook]; ok && unmarshal(text, &book) == nil {
		for i, ref := range book.Sheets {
			target := ""
			if rel, ok := wb.rels[ref.RID]; ok {
				target = rel.Target
			}
			if target == "" {
				target = "worksheets/sheet" + strconv.Itoa(i+1) + ".xml"
			}
			wb.sheets = append(wb.sheets, sheetPart{name: ref.Name, path: partPath(target)})
		}
	}

	if len(wb.sheets) == 0 {
		if _, ok := wb.files[partSheet1]; ok {
			wb.sheets = append(wb.sheets, sheetPart{name: DefaultSheetName, path: partSheet1})
		}
	}
}

// sheet returns the named worksheet, or the first one when name is empty.
func (wb *workbook) sheet(name string) (sheetPart, bool) {
	for _, s := range wb.sheets {
		if name == "" || strings.EqualFold(s.name, name) {
			return s, true
		}
	}
	return sheetPart{}, false
}

// sharedStrings returns the shared strings table, or nil when the workbook
// has none.
func (wb *workbook) sharedStrings() []string {
	target := partSharedStrings
	for _, rel := range wb.rels {
		if rel.Type == relSharedStrings && rel.Target != "" {
			target = partPath(rel.Target)
			break
		}
	}

	text, ok := wb.files[target]
	if !ok {
		return nil
	}
	return ParseSharedStrings(text)
}

// partPath resolves a relationship target from xl/_rels/workbook.xml.rels
// to a part name. Relative targets are relative to xl/.
func partPath(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join("xl", target)
}

// ParseSharedStrings returns the entries of a shared strings part
// (xl/sharedStrings.xml) in order. An entry made of several text runs is
// returned as their concatenation. Parsing stops quietly at the first
// malformed entry.
func ParseSharedStrings(text string) []string {
	var strs []string
	forEachElement(text, "si", func(dec *xml.Decoder, start *xml.StartElement) error {
		var si richTextXML
		if err := dec.DecodeElement(&si, start); err != nil {
			return err
		}
		strs = append(strs, si.text())
		return nil
	})
	return strs
}

// ParseWorksheet returns the cell values of a worksheet part as strings,
// one slice per <row> element in document order.
//
// A cell whose reference skips columns is preceded by empty strings, so
// each value lands at the index of its column. Shared string cells (t="s")
// are resolved through shared; an index outside the table reads as the
// empty string. Parsing stops quietly at the first malformed row.
func ParseWorksheet(text string, shared []string) [][]string {
	var rows [][]string
	forEachElement(text, "row", func(dec *xml.Decoder, start *xml.StartElement) error {
		var row rowXML
		if err := dec.DecodeElement(&row, start); err != nil {
			return err
		}
		rows = append(rows, row.values(shared))
		return nil
	})
	return rows
}

func (r rowXML) values(shared []string) []string {
	values := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		for col := refColumn(c.R); len(values) < col; {
			values = append(values, "")
		}
		values = append(values, c.value(shared))
	}
	return values
}

func (c cellXML) value(shared []string) string {
	switch c.T {
	case "inlineStr":
		if c.Is != nil {
			return c.Is.text()
		}
		return c.V
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(c.V))
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	default:
		return c.V
	}
}

func (rt richTextXML) text() string {
	if len(rt.R) == 0 && len(rt.T) == 1 {
		return rt.T[0]
	}
	var b strings.Builder
	for _, t := range rt.T {
		b.WriteString(t)
	}
	for _, run := range rt.R {
		b.WriteString(run.T)
	}
	return b.String()
}

// newDecoder returns a lenient decoder that understands the encodings
// declared by non-UTF-8 XML parts. Invalid bytes in a UTF-8 part become
// U+FFFD so the rest of the part is still read.
func newDecoder(text string) *xml.Decoder {
	if isUTF8(declaredEncoding(text)) {
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = false
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

// declaredEncoding returns the encoding named in the XML declaration at
// the start of text, or "" when there is none.
func declaredEncoding(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	if !strings.HasPrefix(text, "<?xml") {
		return ""
	}
	decl, _, ok := strings.Cut(text, "?>")
	if !ok {
		return ""
	}
	_, rest, ok := strings.Cut(decl, "encoding")
	if !ok {
		return ""
	}
	rest = strings.TrimLeft(rest, " \t\r\n")
	if !strings.HasPrefix(rest, "=") {
		return ""
	}
	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	value, _, ok := strings.Cut(rest[1:], rest[:1])
	if !ok {
		return ""
	}
	return value
}

func isUTF8(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

func unmarshal(text string, v any) error {
	return newDecoder(text).Decode(v)
}

// forEachElement calls fn for every start element named local, at any
// depth. It stops at the end of input, at the first syntax error, or when
// fn returns an error.
func forEachElement(text, local string, fn func(*xml.Decoder, *xml.StartElement) error) {
	dec := newDecoder(text)
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != local {
			continue
		}
		if err := fn(dec, &start); err != nil {
			return
		}
	}
}
