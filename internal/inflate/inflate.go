// Package inflate decodes the raw DEFLATE streams stored in ZIP entries
// that use compression method 8.
package inflate

import (
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned when a stream expands past the caller's limit.
var ErrTooLarge = errors.New("inflated data exceeds size limit")

// Decode decompresses a raw DEFLATE stream (no zlib or gzip wrapper).
// At most limit bytes of output are accepted.
func Decode(data []byte, limit int64) ([]byte, error) {
	reader := flate.NewReader(bytes.NewReader(data))
	defer reader.Close()

	var buf bytes.Buffer
	if hint := int64(len(data)) * 4; hint < limit {
		buf.Grow(int(hint))
	}

	n, err := io.Copy(&buf, io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to inflate: %w", err)
	}
	if n > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, limit)
	}

	return buf.Bytes(), nil
}
