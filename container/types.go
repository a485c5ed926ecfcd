package container

import (
	"encoding/binary"
	"errors"
)

// Record signatures, little-endian "PK" followed by the record type.
const (
	localHeaderSignature   = 0x04034b50
	centralHeaderSignature = 0x02014b50
	endOfDirSignature      = 0x06054b50

	dataDescriptorSignature = 0x08074b50
)

// Fixed record lengths, excluding variable-length name, extra and comment fields.
const (
	localHeaderLen   = 30
	centralHeaderLen = 46
	endOfDirLen      = 22

	// dataDescriptorLen covers the signature, CRC and 32-bit sizes.
	dataDescriptorLen = 16

	// Field limits of a ZIP archive without ZIP64 extensions.
	maxNameLen = 0xFFFF
	maxEntries = 0xFFFF
	maxUint32  = 0xFFFFFFFF

	// maxCommentLen bounds how far from the end of the buffer the
	// end-of-central-directory record can start.
	maxCommentLen = 0xFFFF
)

// Compression methods.
const (
	Store   uint16 = 0
	Deflate uint16 = 8
)

const (
	zipVersion = 20 // 2.0, the minimum for stored entries in folders

	flagDataDescriptor = 0x0008
)

// DefaultMaxEntrySize limits how many bytes a single inflated entry may
// expand to when ExtractOptions.MaxEntrySize is zero.
const DefaultMaxEntrySize = 64 << 20

var le = binary.LittleEndian

// Errors returned by Directory.
var (
	ErrNoEndOfDirectory = errors.New("end of central directory record not found")
	ErrCorruptDirectory = errors.New("corrupt central directory")
)

// Entry is a named file to be written into an archive.
type Entry struct {
	Name string // path within the archive, forward slashes, no leading slash
	Data []byte
}

// FileHeader describes an entry found in an existing archive.
type FileHeader struct {
	Name             string
	Method           uint16
	Flags            uint16
	CRC32            uint32
	CompressedSize   uint32
	UncompressedSize uint32
	Offset           uint32 // offset of the entry's local file header

	// dataStart is the absolute offset of the entry data, or -1 when it has
	// not been resolved from the local header yet.
	dataStart int
	// sizesKnown is false for local headers whose sizes live in a data
	// descriptor after the entry data.
	sizesKnown bool
}

// ExtractOptions holds options for Extract.
type ExtractOptions struct {
	Inflate      bool  // decode DEFLATE entries instead of skipping them
	MaxEntrySize int64 // inflated size limit per entry (0 = DefaultMaxEntrySize)
}

func (o ExtractOptions) maxEntrySize() int64 {
	if o.MaxEntrySize <= 0 {
		return DefaultMaxEntrySize
	}
	return o.MaxEntrySize
}
