package ipf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// defaultDeflateLevel balances CPU cost against output size for archive rewrites.
const defaultDeflateLevel = flate.DefaultCompression

// deflateRaw compresses data as a raw DEFLATE stream with no zlib/gzip wrapper.
func deflateRaw(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	fw, err := flate.NewWriter(&buf, defaultDeflateLevel)
	if err != nil {
		return nil, fmt.Errorf("deflate: new writer: %w", err)
	}

	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: write: %w", err)
	}

	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("deflate: close: %w", err)
	}

	return buf.Bytes(), nil
}

// inflateRaw decompresses a raw DEFLATE stream with no zlib/gzip wrapper.
func inflateRaw(data []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()

	out, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}

	return out, nil
}
