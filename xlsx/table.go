package xlsx

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Table is a worksheet split into a header row and data rows, every row
// padded to the same width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable builds a Table from rows as returned by Read. The first row
// becomes the headers.
func NewTable(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{}
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	pad := func(row []string) []string {
		out := make([]string, width)
		copy(out, row)
		return out
	}

	t := Table{Headers: pad(rows[0])}
	for _, row := range rows[1:] {
		t.Rows = append(t.Rows, pad(row))
	}
	return t
}

// Text renders the table with cells joined by delimiter (default: tab)
// and one line per row.
func (t Table) Text(delimiter string) string {
	if delimiter == "" {
		delimiter = "\t"
	}

	var result strings.Builder
	if len(t.Headers) > 0 {
		result.WriteString(strings.Join(t.Headers, delimiter))
		result.WriteString("\n")
	}
	for _, row := range t.Rows {
		result.WriteString(strings.Join(row, delimiter))
		result.WriteString("\n")
	}
	return result.String()
}

// Markdown renders the table as a Markdown pipe table.
func (t Table) Markdown() string {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return ""
	}

	var result strings.Builder
	writeRow := func(cells []string) {
		result.WriteString("|")
		for _, cell := range cells {
			result.WriteString(" ")
			result.WriteString(escapeMarkdown(cell))
			result.WriteString(" |")
		}
		result.WriteString("\n")
	}

	writeRow(t.Headers)
	result.WriteString("|")
	for range t.Headers {
		result.WriteString("---|")
	}
	result.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}

	return result.String()
}

// HTML renders the table as an HTML <table> element with a <thead> for
// the headers and a <tbody> for the rows.
func (t Table) HTML() (string, error) {
	table := element(atom.Table)

	if len(t.Headers) > 0 {
		thead := element(atom.Thead)
		thead.AppendChild(htmlRow(atom.Th, t.Headers))
		table.AppendChild(thead)
	}

	tbody := element(atom.Tbody)
	for _, row := range t.Rows {
		tbody.AppendChild(htmlRow(atom.Td, row))
	}
	table.AppendChild(tbody)

	var b strings.Builder
	if err := html.Render(&b, table); err != nil {
		return "", err
	}
	return b.String(), nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func htmlRow(cell atom.Atom, values []string) *html.Node {
	tr := element(atom.Tr)
	for _, v := range values {
		td := element(cell)
		td.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		tr.AppendChild(td)
	}
	return tr
}

// escapeMarkdown escapes special markdown characters in table cells.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
