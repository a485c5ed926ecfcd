package container

import (
	"fmt"
	"strings"

	"github.com/tsawler/sheetzip/internal/inflate"
)

// Scan extracts the stored entries of an archive by walking the buffer for
// local file header signatures. It does not consult the central directory.
//
// The result maps entry names to their contents. Entries using any
// compression method other than Store are skipped. A stored entry whose
// sizes are deferred to a data descriptor is read up to the matching
// descriptor, and skipped when none is found. Scanning stops at the first entry
// that extends past the end of data, so a truncated archive yields the
// entries that precede the damage.
func Scan(data []byte) map[string]string {
	return decodeEntries(data, scanHeaders(data), ExtractOptions{})
}

// Extract returns the contents of the stored entries of an archive, located
// through its central directory. When the directory cannot be read, Extract
// falls back to Scan.
func Extract(data []byte) map[string]string {
	return ExtractWithOptions(data, ExtractOptions{})
}

// ExtractWithOptions is Extract with the specified options.
func ExtractWithOptions(data []byte, opts ExtractOptions) map[string]string {
	return decodeEntries(data, Headers(data), opts)
}

// Headers lists the entries of an archive from its central directory, or
// from a local header scan when the directory is unreadable.
func Headers(data []byte) []FileHeader {
	headers, err := Directory(data)
	if err != nil {
		return scanHeaders(data)
	}
	return headers
}

// Directory parses the end of central directory record and the central
// directory it points to.
//
// Unlike the other read functions, Directory reports damage: it returns
// ErrNoEndOfDirectory when no end record is present and ErrCorruptDirectory
// when the directory does not fit inside data or an entry is malformed.
// ZIP64 archives are reported as corrupt.
func Directory(data []byte) ([]FileHeader, error) {
	end := findEndOfDir(data)
	if end < 0 {
		return nil, ErrNoEndOfDirectory
	}

	rec := data[end : end+endOfDirLen]
	count := int(le.Uint16(rec[10:12]))
	size := int(le.Uint32(rec[12:16]))
	offset := int(le.Uint32(rec[16:20]))

	if offset+size < offset || offset+size > end {
		return nil, fmt.Errorf("%w: directory at %d (size %d) overlaps end record at %d",
			ErrCorruptDirectory, offset, size, end)
	}

	headers := make([]FileHeader, 0, count)
	pos := offset
	for i := 0; i < count; i++ {
		if pos+centralHeaderLen > end || le.Uint32(data[pos:]) != centralHeaderSignature {
			return nil, fmt.Errorf("%w: entry %d at offset %d", ErrCorruptDirectory, i, pos)
		}

		rec := data[pos : pos+centralHeaderLen]
		nameLen := int(le.Uint16(rec[28:30]))
		extraLen := int(le.Uint16(rec[30:32]))
		commentLen := int(le.Uint16(rec[32:34]))

		next := pos + centralHeaderLen + nameLen + extraLen + commentLen
		if next > end {
			return nil, fmt.Errorf("%w: entry %d overruns directory", ErrCorruptDirectory, i)
		}

		headers = append(headers, FileHeader{
			Name:             string(data[pos+centralHeaderLen : pos+centralHeaderLen+nameLen]),
			Flags:            le.Uint16(rec[8:10]),
			Method:           le.Uint16(rec[10:12]),
			CRC32:            le.Uint32(rec[16:20]),
			CompressedSize:   le.Uint32(rec[20:24]),
			UncompressedSize: le.Uint32(rec[24:28]),
			Offset:           le.Uint32(rec[42:46]),
			dataStart:        -1,
			sizesKnown:       true,
		})
		pos = next
	}

	return headers, nil
}

// findEndOfDir returns the offset of the last end of central directory
// record in data, or -1.
func findEndOfDir(data []byte) int {
	last := len(data) - endOfDirLen
	first := last - maxCommentLen
	if first < 0 {
		first = 0
	}
	for i := last; i >= first; i-- {
		if le.Uint32(data[i:]) == endOfDirSignature {
			return i
		}
	}
	return -1
}

// scanHeaders walks data for local file headers. After each header the
// cursor skips the entry data so signatures inside it are never matched.
func scanHeaders(data []byte) []FileHeader {
	var headers []FileHeader

	pos := 0
	for pos+localHeaderLen <= len(data) {
		if le.Uint32(data[pos:]) != localHeaderSignature {
			pos++
			continue
		}

		h, next, ok := readLocalHeader(data, pos)
		if !ok {
			break
		}
		headers = append(headers, h)
		pos = next
	}

	return headers
}

// readLocalHeader parses the local file header at pos. next is the offset
// just past the entry data, or just past the header when the sizes are
// deferred to a data descriptor.
func readLocalHeader(data []byte, pos int) (h FileHeader, next int, ok bool) {
	start, ok := localDataStart(data, pos)
	if !ok {
		return h, 0, false
	}

	rec := data[pos : pos+localHeaderLen]
	nameLen := int(le.Uint16(rec[26:28]))
	h = FileHeader{
		Name:             string(data[pos+localHeaderLen : pos+localHeaderLen+nameLen]),
		Flags:            le.Uint16(rec[6:8]),
		Method:           le.Uint16(rec[8:10]),
		CRC32:            le.Uint32(rec[14:18]),
		CompressedSize:   le.Uint32(rec[18:22]),
		UncompressedSize: le.Uint32(rec[22:26]),
		Offset:           uint32(pos),
		dataStart:        start,
	}

	if h.Flags&flagDataDescriptor != 0 && h.CompressedSize == 0 {
		if h.Method != Store {
			return h, start, true
		}
		size, crc, next, found := findDataDescriptor(data, start)
		if !found {
			return h, start, true
		}
		h.CRC32 = crc
		h.CompressedSize = size
		h.UncompressedSize = size
		h.sizesKnown = true
		return h, next, true
	}
	h.sizesKnown = true

	end := start + int(h.CompressedSize)
	if end < start || end > len(data) {
		return h, 0, false
	}
	return h, end, true
}

// findDataDescriptor locates the data descriptor that follows stored entry
// data beginning at start. A candidate must carry the descriptor signature,
// a size equal to its distance from start and the CRC of the bytes in
// between. next is the offset just past the descriptor.
func findDataDescriptor(data []byte, start int) (size, crc uint32, next int, ok bool) {
	for p := start; p+dataDescriptorLen <= len(data); p++ {
		if le.Uint32(data[p:]) != dataDescriptorSignature {
			continue
		}
		rec := data[p : p+dataDescriptorLen]
		n := le.Uint32(rec[8:12])
		if int64(n) != int64(p-start) || le.Uint32(rec[12:16]) != n {
			continue
		}
		if c := le.Uint32(rec[4:8]); c == CRC32(data[start:p]) {
			return n, c, p + dataDescriptorLen, true
		}
	}
	return 0, 0, 0, false
}

// localDataStart returns the offset of the data that follows the local file
// header at pos.
func localDataStart(data []byte, pos int) (int, bool) {
	if pos < 0 || pos+localHeaderLen > len(data) || le.Uint32(data[pos:]) != localHeaderSignature {
		return 0, false
	}
	nameLen := int(le.Uint16(data[pos+26 : pos+28]))
	extraLen := int(le.Uint16(data[pos+28 : pos+30]))
	start := pos + localHeaderLen + nameLen + extraLen
	if start > len(data) {
		return 0, false
	}
	return start, true
}

// entryData returns the raw, possibly compressed, bytes of an entry.
func entryData(data []byte, h FileHeader) ([]byte, bool) {
	start := h.dataStart
	if start < 0 {
		var ok bool
		if start, ok = localDataStart(data, int(h.Offset)); !ok {
			return nil, false
		}
	}
	end := start + int(h.CompressedSize)
	if end < start || end > len(data) {
		return nil, false
	}
	return data[start:end], true
}

func decodeEntries(data []byte, headers []FileHeader, opts ExtractOptions) map[string]string {
	files := make(map[string]string, len(headers))
	for _, h := range headers {
		if content, ok := decodeEntry(data, h, opts); ok {
			files[h.Name] = content
		}
	}
	return files
}

func decodeEntry(data []byte, h FileHeader, opts ExtractOptions) (string, bool) {
	if !h.sizesKnown || strings.HasSuffix(h.Name, "/") {
		return "", false
	}

	raw, ok := entryData(data, h)
	if !ok {
		return "", false
	}

	switch h.Method {
	case Store:
		return string(raw), true
	case Deflate:
		if !opts.Inflate {
			return "", false
		}
		out, err := inflate.Decode(raw, opts.maxEntrySize())
		if err != nil {
			return "", false
		}
		return string(out), true
	default:
		return "", false
	}
}
