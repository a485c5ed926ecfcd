package container

// crcTable is the reflected lookup table for the IEEE polynomial used by
// ZIP and PNG. It is built once and never written again.
var crcTable = makeCRCTable(0xEDB88320)

func makeCRCTable(poly uint32) *[256]uint32 {
	var t [256]uint32
	for i := range t {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 == 1 {
				c = poly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return &t
}

// CRC32 returns the ZIP checksum of data.
func CRC32(data []byte) uint32 {
	return UpdateCRC32(0, data)
}

// UpdateCRC32 returns the checksum of data appended to the bytes that
// produced crc. UpdateCRC32(CRC32(a), b) equals CRC32(append(a, b...)).
func UpdateCRC32(crc uint32, data []byte) uint32 {
	crc = ^crc
	for _, b := range data {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}
