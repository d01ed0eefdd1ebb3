package ipf

import (
	"bytes"
	"testing"
)

func TestCipherInvolution(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x01},
		{0x01, 0x02, 0x03},
		bytes.Repeat([]byte{0xAB}, 257),
	}

	for _, data := range cases {
		enc := encryptStream(data)
		if got := decryptStream(enc); !bytes.Equal(got, data) {
			t.Fatalf("decrypt(encrypt(%v)) = %v, want %v", data, got, data)
		}

		dec := decryptStream(data)
		if got := encryptStream(dec); !bytes.Equal(got, data) {
			t.Fatalf("encrypt(decrypt(%v)) = %v, want %v", data, got, data)
		}
	}
}

func TestCipherOddBytesPassThrough(t *testing.T) {
	data := []byte{0x10, 0x20, 0x30, 0x40, 0x50}
	enc := encryptStream(data)

	for i := 1; i < len(data); i += 2 {
		if enc[i] != data[i] {
			t.Fatalf("odd index %d: got %#x, want unchanged %#x", i, enc[i], data[i])
		}
	}
}

func TestCipherPasswordLength(t *testing.T) {
	if len(cipherPassword) != 22 {
		t.Fatalf("cipherPassword is %d bytes, want 22", len(cipherPassword))
	}
}
