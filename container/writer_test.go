package container

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	return []Entry{
		{Name: "[Content_Types].xml", Data: []byte(`<?xml version="1.0"?><Types/>`)},
		{Name: "xl/worksheets/sheet1.xml", Data: []byte("<worksheet><sheetData/></worksheet>")},
		{Name: "empty.txt", Data: nil},
		{Name: "docs/kode barang.txt", Data: []byte("A1\tWidget\nA2\tGadget\n")},
	}
}

func TestBuildReadableByArchiveZip(t *testing.T) {
	entries := sampleEntries()
	data := Build(entries)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, len(entries))

	for i, f := range zr.File {
		want := entries[i]
		assert.Equal(t, want.Name, f.Name)
		assert.Equal(t, zip.Store, f.Method)
		assert.Equal(t, CRC32(want.Data), f.CRC32)
		assert.EqualValues(t, len(want.Data), f.CompressedSize64)
		assert.EqualValues(t, len(want.Data), f.UncompressedSize64)

		rc, err := f.Open()
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err, "reading %s (CRC is verified at EOF)", f.Name)
		assert.Equal(t, string(want.Data), string(got))
	}
}

func TestBuildOffsets(t *testing.T) {
	entries := sampleEntries()
	data := Build(entries)

	headers, err := Directory(data)
	require.NoError(t, err)
	require.Len(t, headers, len(entries))

	offset := 0
	for i, h := range headers {
		assert.EqualValues(t, offset, h.Offset, "entry %d offset", i)
		assert.Equal(t, uint32(localHeaderSignature), le.Uint32(data[h.Offset:]))

		nameLen := int(le.Uint16(data[int(h.Offset)+26:]))
		name := string(data[int(h.Offset)+localHeaderLen : int(h.Offset)+localHeaderLen+nameLen])
		assert.Equal(t, entries[i].Name, name)
		assert.Equal(t, h.CompressedSize, le.Uint32(data[int(h.Offset)+18:]))
		assert.Equal(t, h.CRC32, le.Uint32(data[int(h.Offset)+14:]))

		offset += localHeaderLen + len(entries[i].Name) + len(entries[i].Data)
	}

	end := findEndOfDir(data)
	require.GreaterOrEqual(t, end, 0)
	assert.EqualValues(t, offset, le.Uint32(data[end+16:]), "central directory offset")
	assert.EqualValues(t, len(entries), le.Uint16(data[end+8:]))
	assert.EqualValues(t, len(entries), le.Uint16(data[end+10:]))
	assert.EqualValues(t, end-offset, le.Uint32(data[end+12:]), "central directory size")
	assert.Equal(t, len(data), end+endOfDirLen, "no trailing comment")
}

func TestBuildEmpty(t *testing.T) {
	data := Build(nil)
	require.Len(t, data, endOfDirLen)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, zr.File)

	headers, err := Directory(data)
	require.NoError(t, err)
	assert.Empty(t, headers)
}

func TestBuildDeterministic(t *testing.T) {
	assert.Equal(t, Build(sampleEntries()), Build(sampleEntries()))
}

func TestBuildUTF8Name(t *testing.T) {
	data := Build([]Entry{{Name: "laporan/pelanggan-é.xml", Data: []byte("<x/>")}})

	headers, err := Directory(data)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, "laporan/pelanggan-é.xml", headers[0].Name)
	assert.Equal(t, "<x/>", Scan(data)["laporan/pelanggan-é.xml"])
}

func TestBuildOverlongName(t *testing.T) {
	long := strings.Repeat("n", maxNameLen+1)
	data := Build([]Entry{
		{Name: long, Data: []byte("first")},
		{Name: "b.txt", Data: []byte("second")},
	})

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, long[:maxNameLen], zr.File[0].Name)
	assert.Equal(t, "b.txt", zr.File[1].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "second", string(got))

	files := Scan(data)
	assert.Equal(t, "first", files[long[:maxNameLen]])
	assert.Equal(t, "second", files["b.txt"])
}

func TestClampNameRuneBoundary(t *testing.T) {
	// The two-byte rune straddles the limit and must be dropped whole.
	name := strings.Repeat("a", maxNameLen-1) + "é"
	got := clampName(name)
	assert.Len(t, got, maxNameLen-1)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "short.xml", clampName("short.xml"))
	exact := strings.Repeat("x", maxNameLen)
	assert.Equal(t, exact, clampName(exact))
}

func TestBuildEntryLimit(t *testing.T) {
	entries := make([]Entry, maxEntries+1)
	for i := range entries {
		entries[i] = Entry{Name: "e"}
	}
	data := Build(entries)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Len(t, zr.File, maxEntries)

	headers, err := Directory(data)
	require.NoError(t, err)
	assert.Len(t, headers, maxEntries)
}
