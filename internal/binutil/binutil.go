// Package binutil provides the small fixed-width and XOR-obfuscated
// byte-stream helpers shared by the ipf and ies packages. All scalars are
// little-endian; nothing here is specific to either archive format.
package binutil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrStringTooLong is returned when a fixed-width string write would not fit
// in the requested field size.
var ErrStringTooLong = errors.New("binutil: string exceeds fixed field width")

// WriteFixedString writes the UTF-8 bytes of s, NUL-padded to exactly n
// bytes. It fails if the UTF-8 encoding of s is longer than n.
func WriteFixedString(w io.Writer, s string, n int) error {
	b := []byte(s)
	if len(b) > n {
		return fmt.Errorf("%w: %d > %d", ErrStringTooLong, len(b), n)
	}

	buf := make([]byte, n)
	copy(buf, b)

	_, err := w.Write(buf)
	return err
}

// ReadFixedString reads n bytes and returns them trimmed of trailing NUL
// padding, decoded as UTF-8.
func ReadFixedString(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return string(bytes.TrimRight(buf, "\x00")), nil
}

// XORBytes XORs every byte of b with key, in place, and returns b.
func XORBytes(b []byte, key byte) []byte {
	for i := range b {
		b[i] ^= key
	}

	return b
}

// WriteXoredFixedString writes s as a fixed n-byte field, NUL-padded, then
// XORs the whole field (including padding) with key so that on disk the
// padding bytes are stored as key.
func WriteXoredFixedString(w io.Writer, s string, n int, key byte) error {
	b := []byte(s)
	if len(b) > n {
		return fmt.Errorf("%w: %d > %d", ErrStringTooLong, len(b), n)
	}

	buf := make([]byte, n)
	copy(buf, b)
	XORBytes(buf, key)

	_, err := w.Write(buf)
	return err
}

// ReadXoredFixedString reads n bytes, trims trailing key-fill bytes (the
// NUL padding written by WriteXoredFixedString reads back as key before
// decryption, since the pad bytes themselves were XORed with key), then
// XORs the remainder with key to recover the original string bytes.
func ReadXoredFixedString(r io.Reader, n int, key byte) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	trimmed := bytes.TrimRight(buf, string(rune(key)))

	return string(XORBytes(trimmed, key)), nil
}

// WriteXoredLPString writes a u16 length prefix followed by s XORed with
// key.
func WriteXoredLPString(w io.Writer, s string, key byte) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("%w: length-prefixed string too long (%d)", ErrStringTooLong, len(s))
	}

	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(s)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}

	if len(s) == 0 {
		return nil
	}

	buf := []byte(s)
	XORBytes(buf, key)

	_, err := w.Write(buf)
	return err
}

// ReadXoredLPString reads a u16 length prefix followed by that many bytes,
// XORed with key. No trimming is applied: the caller gets exactly length
// bytes of decrypted content.
func ReadXoredLPString(r io.Reader, key byte) (string, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", err
	}

	n := binary.LittleEndian.Uint16(lenBuf[:])
	if n == 0 {
		return "", nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	XORBytes(buf, key)

	return string(buf), nil
}

// ReadU16LE reads one little-endian uint16.
func ReadU16LE(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadU32LE reads one little-endian uint32.
func ReadU32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadI32LE reads one little-endian int32.
func ReadI32LE(r io.Reader) (int32, error) {
	v, err := ReadU32LE(r)
	return int32(v), err //nolint:gosec // bit-identical reinterpretation, not a value conversion
}

// ReadF32LE reads one little-endian IEEE-754 float32.
func ReadF32LE(r io.Reader) (float32, error) {
	v, err := ReadU32LE(r)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

// WriteU16LE writes one little-endian uint16.
func WriteU16LE(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteU32LE writes one little-endian uint32.
func WriteU32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteI32LE writes one little-endian int32.
func WriteI32LE(w io.Writer, v int32) error {
	return WriteU32LE(w, uint32(v)) //nolint:gosec // bit-identical reinterpretation, not a value conversion
}

// WriteF32LE writes one little-endian IEEE-754 float32.
func WriteF32LE(w io.Writer, v float32) error {
	return WriteU32LE(w, math.Float32bits(v))
}
