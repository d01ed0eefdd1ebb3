package ipf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeCopyBufferSize bounds the per-entry copy buffer used when passing
// unmodified payloads through verbatim.
const writeCopyBufferSize = 64 * 1024

// Save rewrites the archive atomically to filePath via a temp file named
// "~<basename>" in the same directory. It returns true iff the caller must
// reopen the archive, because filePath overwrote the archive's own backing
// source.
func (a *Archive) Save(filePath string) (bool, error) {
	dir := filepath.Dir(filePath)
	tempPath := filepath.Join(dir, "~"+filepath.Base(filePath))

	reopenRequired := filePath == a.sourcePath

	if err := a.rewriteTo(tempPath); err != nil {
		_ = os.Remove(tempPath)
		return false, err
	}

	if reopenRequired {
		if err := a.Close(); err != nil {
			_ = os.Remove(tempPath)
			return false, fmt.Errorf("close source before overwrite: %w", err)
		}
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		_ = os.Remove(tempPath)
		return false, fmt.Errorf("remove existing target: %w", err)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return false, fmt.Errorf("rename temp to target: %w", err)
	}

	return reopenRequired, nil
}

// rewriteTo writes the full archive to a fresh file at tempPath. Unmodified
// entries are read through the archive's current backing source, which the
// caller is responsible for closing afterward if it is about to be replaced.
func (a *Archive) rewriteTo(tempPath string) error {
	f, err := os.OpenFile(tempPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriterSize(f, writeCopyBufferSize)

	var pos int64
	for _, e := range a.entries {
		written, err := a.writeEntryPayload(bw, e)
		if err != nil {
			return err
		}

		e.Offset = uint32(pos) //nolint:gosec // archive payloads are bounded by the u32 size fields
		pos += written
	}

	fileTableOffset := pos
	for _, e := range a.entries {
		n, err := writeEntryRecord(bw, e)
		if err != nil {
			return fmt.Errorf("write entry record %s: %w", e.FullPath(), err)
		}

		pos += int64(n)
	}

	a.footer.FileCount = uint16(len(a.entries)) //nolint:gosec // entry counts fit u16 by format contract
	a.footer.FileTableOffset = uint32(fileTableOffset) //nolint:gosec // bounded by u32 size fields
	if a.footer.Signature == [4]byte{} {
		a.footer.Signature = footerSignature
	}

	if _, err := writeFooter(bw, a.footer); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush temp archive: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp archive: %w", err)
	}

	for _, e := range a.entries {
		e.Modified = false
		e.content = nil
	}

	return nil
}

// writeEntryPayload writes one entry's stored bytes to w and returns the
// number of bytes written, mutating the entry's size/checksum fields when
// it is modified.
func (a *Archive) writeEntryPayload(w io.Writer, e *Entry) (int64, error) {
	if !e.Modified {
		stored, err := a.ReadRaw(int64(e.Offset), int64(e.SizeCompressed))
		if err != nil {
			return 0, fmt.Errorf("copy stored payload for %s: %w", e.FullPath(), err)
		}

		if _, err := w.Write(stored); err != nil {
			return 0, fmt.Errorf("write stored payload for %s: %w", e.FullPath(), err)
		}

		return int64(len(stored)), nil
	}

	e.SizeUncompressed = uint32(len(e.content)) //nolint:gosec // bounded by u32 size fields

	compressed, err := compressEntryPayload(e.Path, e.content, a.CipherEnabled())
	if err != nil {
		return 0, fmt.Errorf("compress payload for %s: %w", e.FullPath(), err)
	}

	e.SizeCompressed = uint32(len(compressed)) //nolint:gosec // bounded by u32 size fields
	e.Checksum = crc32Checksum(0, compressed)

	if _, err := w.Write(compressed); err != nil {
		return 0, fmt.Errorf("write payload for %s: %w", e.FullPath(), err)
	}

	return int64(len(compressed)), nil
}

// compressEntryPayload produces the stored bytes for a modified entry's
// content: no-compression extensions skip both DEFLATE and the cipher;
// everything else is deflated and, when the version gate is enabled,
// cipher-wrapped.
func compressEntryPayload(path string, content []byte, cipherEnabled bool) ([]byte, error) {
	if noCompressExtension(path) {
		return content, nil
	}

	deflated, err := deflateRaw(content)
	if err != nil {
		return nil, err
	}

	if cipherEnabled {
		return encryptStream(deflated), nil
	}

	return deflated, nil
}

// writeEntryRecord writes one entry-table record and returns the number of
// bytes written.
func writeEntryRecord(w io.Writer, e *Entry) (int, error) {
	onDiskPath := e.Path

	pathBytes := []byte(onDiskPath)
	packNameBytes := []byte(e.PackName)

	var head [entryRecordHeadSize]byte
	binary.LittleEndian.PutUint16(head[0:2], uint16(len(pathBytes))) //nolint:gosec // bounded by format contract
	binary.LittleEndian.PutUint32(head[2:6], e.Checksum)
	binary.LittleEndian.PutUint32(head[6:10], e.SizeCompressed)
	binary.LittleEndian.PutUint32(head[10:14], e.SizeUncompressed)
	binary.LittleEndian.PutUint32(head[14:18], e.Offset)
	binary.LittleEndian.PutUint16(head[18:20], uint16(len(packNameBytes))) //nolint:gosec // bounded by format contract

	if _, err := w.Write(head[:]); err != nil {
		return 0, err
	}
	if _, err := w.Write(packNameBytes); err != nil {
		return 0, err
	}
	if _, err := w.Write(pathBytes); err != nil {
		return 0, err
	}

	return len(head) + len(packNameBytes) + len(pathBytes), nil
}

// writeFooter writes the fixed 24-byte footer record and returns the
// number of bytes written.
func writeFooter(w io.Writer, f Footer) (int, error) {
	var buf [defaultFooterSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], f.FileCount)
	binary.LittleEndian.PutUint32(buf[2:6], f.FileTableOffset)
	binary.LittleEndian.PutUint16(buf[6:8], f.RemovedCount)
	binary.LittleEndian.PutUint32(buf[8:12], f.RemovedTableOffset)
	copy(buf[12:16], f.Signature[:])
	binary.LittleEndian.PutUint32(buf[16:20], f.OldVersion)
	binary.LittleEndian.PutUint32(buf[20:24], f.NewVersion)

	n, err := w.Write(buf[:])
	return n, err
}
