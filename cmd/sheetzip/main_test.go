package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/sheetzip/container"
	"github.com/tsawler/sheetzip/records"
	"github.com/tsawler/sheetzip/xlsx"
)

// execute runs the command tree with args and returns stdout and stderr.
func execute(t *testing.T, stdin []byte, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(defaultConfig())
	var stdout, stderr bytes.Buffer
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rows.json")
	out := filepath.Join(dir, "rows.xlsx")
	require.NoError(t, os.WriteFile(in, []byte(`[["kode","nama","qty"],["A1","Widget",3],["A2","Gadget & Co",1.5]]`), 0o644))

	_, _, err := execute(t, nil, "write", in, "-o", out, "--sheet", "Data")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data"}, xlsx.Sheets(data, xlsx.ReadOptions{}))

	stdout, _, err := execute(t, nil, "read", out)
	require.NoError(t, err)
	var rows [][]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	assert.Equal(t, [][]string{{"kode", "nama", "qty"}, {"A1", "Widget", "3"}, {"A2", "Gadget & Co", "1.5"}}, rows)
}

func TestWriteFromStdin(t *testing.T) {
	stdout, _, err := execute(t, []byte(`[["a"],[1]]`), "write", "-")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"1"}}, xlsx.Read([]byte(stdout)))
}

func TestWriteRejectsNonJSON(t *testing.T) {
	_, _, err := execute(t, []byte("kode,nama\n"), "write", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON")

	_, _, err = execute(t, []byte(`[["a"],`), "write", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding rows")
}

func TestReadFormats(t *testing.T) {
	book := xlsx.Write(xlsx.Strings([][]string{{"kode", "nama"}, {"A1", "Widget"}}))

	stdout, _, err := execute(t, book, "read", "-", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "kode\tnama\nA1\tWidget\n", stdout)

	stdout, _, err = execute(t, book, "read", "-", "-f", "markdown")
	require.NoError(t, err)
	assert.Contains(t, stdout, "| kode | nama |")
	assert.Contains(t, stdout, "| A1 | Widget |")

	stdout, _, err = execute(t, book, "read", "-", "-f", "html")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<th>kode</th>")
	assert.Contains(t, stdout, "<td>Widget</td>")

	_, _, err = execute(t, book, "read", "-", "-f", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestReadListSheets(t *testing.T) {
	book := xlsx.WriteWithOptions(nil, xlsx.WriteOptions{SheetName: "Stok"})
	stdout, _, err := execute(t, book, "read", "-", "--list-sheets")
	require.NoError(t, err)
	assert.Equal(t, "Stok\n", stdout)
}

func TestReadRejectsOtherFormats(t *testing.T) {
	_, _, err := execute(t, []byte(`[["a"]]`), "read", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an XLSX workbook")

	_, _, err = execute(t, nil, "read", filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input")
}

func TestReadVerboseLogs(t *testing.T) {
	book := xlsx.Write(xlsx.Strings([][]string{{"a"}}))
	_, stderr, err := execute(t, book, "read", "-", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[read] 1 rows")

	_, stderr, err = execute(t, book, "read", "-")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestEntries(t *testing.T) {
	archive := container.Build([]container.Entry{
		{Name: "a.txt", Data: []byte("123456789")},
		{Name: "dir/b.xml", Data: []byte("<b/>")},
	})

	stdout, _, err := execute(t, archive, "entries", "-")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "a.txt")
	assert.Contains(t, lines[1], "store")
	assert.Contains(t, lines[1], "cbf43926")
	assert.Contains(t, lines[2], "dir/b.xml")
}

func TestEntriesDeflated(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("data.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte(strings.Repeat("sheetzip ", 50)))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	stdout, _, err := execute(t, buf.Bytes(), "entries", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "deflate")
	assert.Contains(t, stdout, "450")
}

func TestEntriesNotZip(t *testing.T) {
	_, _, err := execute(t, []byte("plain text"), "entries", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ZIP entries")
}

func TestInventoryExportImport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "inventory.json")
	book := filepath.Join(dir, "inventory.xlsx")
	items := []records.InventoryItem{
		{ItemCode: "BRG-001", ItemName: "Oli", Quantity: 2, SellPrice: 55000, BuyPrice: 48000, Stock: 10, MinStock: 1, MaxStock: 20},
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, data, 0o644))

	_, _, err = execute(t, nil, "inventory", "export", in, "-o", book)
	require.NoError(t, err)

	stdout, _, err := execute(t, nil, "inventory", "import", book)
	require.NoError(t, err)
	var got []records.InventoryItem
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, items, got)
}

func TestCustomersImportWarnings(t *testing.T) {
	rows := append([][]string{records.CustomerHeaders},
		[]string{"Budi", "0812", "1", "0", "150", "Barang"},
		[]string{"Rina", "0814", "2", "0", "5", "Jasa"},
	)
	book := xlsx.Write(xlsx.Strings(rows))

	stdout, stderr, err := execute(t, book, "customers", "import", "-")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: row 2")

	var got []records.Customer
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Rina", got[0].Name)
}

func TestCustomersImportNoRows(t *testing.T) {
	book := records.ExportCustomers(nil)
	_, _, err := execute(t, book, "customers", "import", "-")
	assert.ErrorIs(t, err, records.ErrNoRows)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(envFormat, " Markdown ")
	t.Setenv(envInflate, "false")
	t.Setenv(envVerbose, "not-a-bool")

	cfg := loadConfig()
	assert.Equal(t, "markdown", cfg.format)
	assert.False(t, cfg.inflate)
	assert.False(t, cfg.verbose)
}

func TestConfigFlagDefaults(t *testing.T) {
	cfg := defaultConfig()
	cfg.format = "text"
	cmd := newRootCmd(cfg)

	var stdout bytes.Buffer
	cmd.SetIn(bytes.NewReader(xlsx.Write(xlsx.Strings([][]string{{"x", "y"}}))))
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"read", "-"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "x\ty\n", stdout.String())
}
