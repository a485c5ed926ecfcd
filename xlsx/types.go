// Package xlsx reads and writes minimal single-sheet XLSX (Office Open XML
// spreadsheet) workbooks.
//
// Writing produces a stored ZIP container holding the five parts a
// spreadsheet application needs to open a one-sheet workbook. Strings are
// always written as inline strings and numbers as raw numeric text:
//
//	data := xlsx.Write([][]xlsx.Value{
//	    xlsx.Row("kode", "nama", "qty"),
//	    xlsx.Row("A1", "Widget", 3),
//	})
//
// Reading is best-effort and returns every cell as a string, resolving
// shared strings and padding cells that a sparse file leaves out:
//
//	rows := xlsx.Read(data) // [["kode" "nama" "qty"] ["A1" "Widget" "3"]]
package xlsx

import "encoding/xml"

// XML namespaces used in XLSX files.
const (
	nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Relationship types.
const (
	relOfficeDocument = nsRelationships + "/officeDocument"
	relWorksheet      = nsRelationships + "/worksheet"
	relSharedStrings  = nsRelationships + "/sharedStrings"
)

// Part names.
const (
	partContentTypes  = "[Content_Types].xml"
	partRootRels      = "_rels/.rels"
	partWorkbook      = "xl/workbook.xml"
	partWorkbookRels  = "xl/_rels/workbook.xml.rels"
	partSheet1        = "xl/worksheets/sheet1.xml"
	partSharedStrings = "xl/sharedStrings.xml"
)

// workbookXML represents the xl/workbook.xml file structure.
type workbookXML struct {
	XMLName xml.Name      `xml:"workbook"`
	Sheets  []sheetRefXML `xml:"sheets>sheet"`
}

type sheetRefXML struct {
	Name    string `xml:"name,attr"`
	SheetID string `xml:"sheetId,attr"`
	RID     string `xml:"id,attr"` // r:id attribute for relationship
}

// rowXML is one <row> of a worksheet's sheetData.
type rowXML struct {
	R     string    `xml:"r,attr"` // Row number (1-indexed), unused when reading
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	R  string       `xml:"r,attr"` // Cell reference (e.g., "A1")
	T  string       `xml:"t,attr"` // Type: s=shared string, inlineStr, n or absent=number, str, b, e
	V  string       `xml:"v"`      // Value
	Is *richTextXML `xml:"is"`     // Inline string (optional)
}

// richTextXML is the content model shared by <si> in the shared strings
// table and <is> in inline string cells: plain <t> elements or rich text
// runs each holding a <t>. Phonetic runs (<rPh>) are ignored.
type richTextXML struct {
	T []string `xml:"t"`
	R []runXML `xml:"r"`
}

type runXML struct {
	T string `xml:"t"`
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
