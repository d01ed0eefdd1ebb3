package ipf

import (
	"bytes"
	"testing"
)

func TestDeflateRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("hello world"),
		bytes.Repeat([]byte("abcabcabc"), 1000),
	}

	for _, data := range cases {
		compressed, err := deflateRaw(data)
		if err != nil {
			t.Fatalf("deflateRaw: %v", err)
		}

		got, err := inflateRaw(compressed)
		if err != nil {
			t.Fatalf("inflateRaw: %v", err)
		}

		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch: got %v, want %v", got, data)
		}
	}
}

func TestInflateRawRejectsGarbage(t *testing.T) {
	if _, err := inflateRaw([]byte{0xFF, 0xFF, 0xFF, 0xFF}); err == nil {
		t.Fatalf("inflateRaw accepted garbage input")
	}
}
