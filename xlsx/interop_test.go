package xlsx

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrittenWorkbookOpensInExcelize(t *testing.T) {
	data := Write([][]Value{
		Row("Kode Barang", "Nama Barang", "Qty", "Harga Jual"),
		Row("A1", "Oli & Filter", 3, 55000),
		Row("A2", `Ban "Tubeless"`, 12, 350000),
	})

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Kode Barang", "Nama Barang", "Qty", "Harga Jual"},
		{"A1", "Oli & Filter", "3", "55000"},
		{"A2", `Ban "Tubeless"`, "12", "350000"},
	}, rows)

	cellType, err := f.GetCellType("Sheet1", "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)
}

func TestWrittenWorkbookOpensInArchiveZip(t *testing.T) {
	data := Write([][]Value{Row("kode", "nama")})

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 5)

	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		_, err = io.ReadAll(rc)
		rc.Close()
		assert.NoError(t, err, "%s failed checksum", f.Name)
	}
}

func TestReadExcelizeWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Nama", "No HP", "Jumlah Transaksi"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Budi", "0812345", 4}))
	require.NoError(t, f.SetCellValue("Sheet1", "C3", "sparse"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	data := buf.Bytes()

	// Parts saved by excelize are compressed, so the default reader
	// recovers nothing.
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrNoWorksheet)

	rows, err := DecodeWithOptions(data, ReadOptions{Inflate: true})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Nama", "No HP", "Jumlah Transaksi"},
		{"Budi", "0812345", "4"},
		{"", "", "sparse"},
	}, rows)
	assert.Equal(t, []string{"Sheet1"}, Sheets(data, ReadOptions{Inflate: true}))
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.xlsx")

	require.NoError(t, WriteFile(path, [][]Value{Row("kode", "qty"), Row("A1", 5)}, WriteOptions{}))

	rows, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"kode", "qty"}, {"A1", "5"}}, rows)

	g, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer g.Close()
	v, err := g.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "5", v)
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"), ReadOptions{})
	assert.Error(t, err)

	err = WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir.xlsx"), nil, WriteOptions{})
	assert.Error(t, err)
}
