package container

import (
	"bytes"
	"unicode/utf8"
)

// Build assembles a stored ZIP archive from entries, in order.
//
// Each entry is written as a local file header followed by its raw bytes,
// then one central directory header per entry, then the end of central
// directory record. Build never fails: an empty entry list produces an
// archive holding only the end record.
//
// Only what fits the 16- and 32-bit header fields is written. Names are
// cut to 65535 bytes on a rune boundary, entries larger than 4 GiB are
// left out, and entries past the 65535th, or that would place a record
// beyond 4 GiB, are dropped.
func Build(entries []Entry) []byte {
	var body, dir bytes.Buffer
	count := 0

	for _, e := range entries {
		if count == maxEntries {
			break
		}
		if uint64(len(e.Data)) > maxUint32 {
			continue
		}

		name := clampName(e.Name)
		localLen := uint64(localHeaderLen + len(name) + len(e.Data))
		dirLen := uint64(centralHeaderLen + len(name))
		if uint64(body.Len())+localLen > maxUint32 || uint64(dir.Len())+dirLen > maxUint32 {
			break
		}

		h := FileHeader{
			Name:             name,
			Method:           Store,
			CRC32:            CRC32(e.Data),
			CompressedSize:   uint32(len(e.Data)),
			UncompressedSize: uint32(len(e.Data)),
			Offset:           uint32(body.Len()),
		}

		body.Write(encodeLocalHeader(h))
		body.WriteString(h.Name)
		body.Write(e.Data)

		dir.Write(encodeCentralHeader(h))
		dir.WriteString(h.Name)
		count++
	}

	dirOffset := uint32(body.Len())
	dirSize := uint32(dir.Len())
	body.Write(dir.Bytes())
	body.Write(encodeEndOfDir(count, dirSize, dirOffset))

	return body.Bytes()
}

// clampName cuts name to maxNameLen bytes without splitting a UTF-8 sequence.
func clampName(name string) string {
	if len(name) <= maxNameLen {
		return name
	}
	cut := maxNameLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// encodeLocalHeader returns the fixed part of a local file header.
// Modification time and date are left at zero.
func encodeLocalHeader(h FileHeader) []byte {
	buf := make([]byte, localHeaderLen)
	le.PutUint32(buf[0:4], localHeaderSignature)
	le.PutUint16(buf[4:6], zipVersion)
	le.PutUint16(buf[6:8], h.Flags)
	le.PutUint16(buf[8:10], h.Method)
	le.PutUint32(buf[14:18], h.CRC32)
	le.PutUint32(buf[18:22], h.CompressedSize)
	le.PutUint32(buf[22:26], h.UncompressedSize)
	le.PutUint16(buf[26:28], uint16(len(h.Name)))
	return buf
}

// encodeCentralHeader returns the fixed part of a central directory header.
// Extra field, comment, disk number and file attributes are all zero.
func encodeCentralHeader(h FileHeader) []byte {
	buf := make([]byte, centralHeaderLen)
	le.PutUint32(buf[0:4], centralHeaderSignature)
	le.PutUint16(buf[4:6], zipVersion)
	le.PutUint16(buf[6:8], zipVersion)
	le.PutUint16(buf[8:10], h.Flags)
	le.PutUint16(buf[10:12], h.Method)
	le.PutUint32(buf[16:20], h.CRC32)
	le.PutUint32(buf[20:24], h.CompressedSize)
	le.PutUint32(buf[24:28], h.UncompressedSize)
	le.PutUint16(buf[28:30], uint16(len(h.Name)))
	le.PutUint32(buf[42:46], h.Offset)
	return buf
}

// encodeEndOfDir returns an end of central directory record with an empty
// comment. The archive always lives on a single disk.
func encodeEndOfDir(entries int, dirSize, dirOffset uint32) []byte {
	buf := make([]byte, endOfDirLen)
	le.PutUint32(buf[0:4], endOfDirSignature)
	le.PutUint16(buf[8:10], uint16(entries))
	le.PutUint16(buf[10:12], uint16(entries))
	le.PutUint32(buf[12:16], dirSize)
	le.PutUint32(buf[16:20], dirOffset)
	return buf
}
