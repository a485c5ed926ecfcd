package xlsx

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/sheetzip/container"
)

// DefaultSheetName is the name of the single worksheet Write produces.
const DefaultSheetName = "Sheet1"

// maxSheetNameLen is the longest sheet name spreadsheet applications accept.
const maxSheetNameLen = 31

// WriteOptions holds options for writing a workbook.
type WriteOptions struct {
	SheetName string // Worksheet name (default: Sheet1)
}

// Write serializes rows into a single-sheet XLSX workbook. Rows may have
// different lengths; a row with no values is still written.
func Write(rows [][]Value) []byte {
	return WriteWithOptions(rows, WriteOptions{})
}

// WriteWithOptions is Write with the specified options.
func WriteWithOptions(rows [][]Value, opts WriteOptions) []byte {
	return container.Build(Parts(rows, opts))
}

// Parts returns the package parts of a single-sheet workbook holding rows,
// in the order they are written to the archive.
func Parts(rows [][]Value, opts WriteOptions) []container.Entry {
	return []container.Entry{
		{Name: partContentTypes, Data: []byte(contentTypesXML)},
		{Name: partRootRels, Data: []byte(rootRelsXML)},
		{Name: partWorkbook, Data: []byte(workbookPartXML(sheetName(opts.SheetName)))},
		{Name: partWorkbookRels, Data: []byte(workbookRelsXML)},
		{Name: partSheet1, Data: []byte(WorksheetXML(rows))},
	}
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const contentTypesXML = xmlHeader +
	`<Types xmlns="` + nsContentTypes + `">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
	`<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>` +
	`</Types>`

const rootRelsXML = xmlHeader +
	`<Relationships xmlns="` + nsPackageRels + `">` +
	`<Relationship Id="rId1" Type="` + relOfficeDocument + `" Target="xl/workbook.xml"/>` +
	`</Relationships>`

const workbookRelsXML = xmlHeader +
	`<Relationships xmlns="` + nsPackageRels + `">` +
	`<Relationship Id="rId1" Type="` + relWorksheet + `" Target="worksheets/sheet1.xml"/>` +
	`</Relationships>`

func workbookPartXML(name string) string {
	return xmlHeader +
		`<workbook xmlns="` + nsSpreadsheetML + `" xmlns:r="` + nsRelationships + `">` +
		`<sheets><sheet name="` + escapeText(name) + `" sheetId="1" r:id="rId1"/></sheets>` +
		`</workbook>`
}

// WorksheetXML returns the xl/worksheets/sheet1.xml part for rows.
//
// Row r and column c (both 0-indexed) become the cell at CellRef(c, r).
// Numbers are written as a plain <v> element, strings as inline strings.
func WorksheetXML(rows [][]Value) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<worksheet xmlns="` + nsSpreadsheetML + `"><sheetData>`)

	for r, row := range rows {
		rowNum := strconv.Itoa(r + 1)
		if len(row) == 0 {
			b.WriteString(`<row r="` + rowNum + `"/>`)
			continue
		}

		b.WriteString(`<row r="` + rowNum + `">`)
		for c, v := range row {
			ref := IndexToColumn(c) + rowNum
			if v.kind == KindNumber {
				b.WriteString(`<c r="` + ref + `"><v>` + v.text + `</v></c>`)
				continue
			}
			b.WriteString(`<c r="` + ref + `" t="inlineStr"><is>`)
			if needsPreserve(v.text) {
				b.WriteString(`<t xml:space="preserve">`)
			} else {
				b.WriteString(`<t>`)
			}
			b.WriteString(escapeText(v.text))
			b.WriteString(`</t></is></c>`)
		}
		b.WriteString(`</row>`)
	}

	b.WriteString(`</sheetData></worksheet>`)
	return b.String()
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\r", "&#xD;",
)

// escapeText escapes s for use as XML character data or a double-quoted
// attribute value. Characters XML 1.0 cannot carry are replaced with U+FFFD.
func escapeText(s string) string {
	return textEscaper.Replace(strings.Map(xmlChar, s))
}

func xmlChar(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20, r == 0xFFFE, r == 0xFFFF, r >= 0xD800 && r <= 0xDFFF:
		return utf8.RuneError
	default:
		return r
	}
}

// needsPreserve reports whether s has whitespace that a spreadsheet
// application would trim unless told to preserve it.
func needsPreserve(s string) bool {
	if s == "" {
		return false
	}
	return strings.TrimSpace(s[:1]) == "" || strings.TrimSpace(s[len(s)-1:]) == ""
}

// sheetName returns name made acceptable as a worksheet name.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return DefaultSheetName
	}
	if utf8.RuneCountInString(name) > maxSheetNameLen {
		name = string([]rune(name)[:maxSheetNameLen])
	}
	return name
}
