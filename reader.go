package ipf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
)

// Archive holds an ordered list of entries, a footer, and an optional
// backing byte source. The backing source is the one concurrency primitive
// in this package: ReadRaw serializes seek+read as a single critical
// section so extraction workers can share one Archive safely.
type Archive struct {
	mu sync.Mutex

	source     io.ReaderAt
	file       *os.File
	sourcePath string
	sourceSize int64
	closed     bool

	footer  Footer
	entries []*Entry
}

// Open opens an archive file by path and parses its footer and entry table.
func Open(path string, opts ReaderOptions) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ipf: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	a, err := NewFromReaderAt(f, fi.Size(), opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	a.file = f
	a.sourcePath = path
	return a, nil
}

// NewFromReaderAt parses an archive from an existing ReaderAt of known size.
func NewFromReaderAt(ra io.ReaderAt, size int64, opts ReaderOptions) (*Archive, error) {
	opts.applyDefaults()

	a := &Archive{source: ra, sourceSize: size}
	if err := a.parse(ra, size); err != nil {
		return nil, err
	}

	return a, nil
}

// Entries returns the archive's entries in on-disk iteration order.
func (a *Archive) Entries() []*Entry {
	out := make([]*Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Footer returns a copy of the parsed footer.
func (a *Archive) Footer() Footer {
	return a.footer
}

// CipherEnabled reports whether the version gate enables the PKWARE cipher
// layer: new_version > 11000 or new_version == 0.
func (a *Archive) CipherEnabled() bool {
	return a.footer.NewVersion > versionGateMinValue || a.footer.NewVersion == 0
}

// ReadRaw reads length bytes at offset from the backing source under the
// archive's mutex, the one shared critical section between concurrent
// extraction workers.
func (a *Archive) ReadRaw(offset, length int64) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrClosed
	}
	if a.source == nil {
		return nil, ErrNilSource
	}

	buf := make([]byte, length)
	if _, err := a.source.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("read raw at %d: %w", offset, err)
	}

	return buf, nil
}

// Close releases the backing byte source if the archive owns one. After
// Close, GetData on unmodified entries fails.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}

	a.closed = true
	if a.file != nil {
		return a.file.Close()
	}

	return nil
}

// parse reads the footer at length-0x18 and the entry table at
// footer.FileTableOffset.
func (a *Archive) parse(ra io.ReaderAt, size int64) error {
	if size < defaultFooterSize {
		return fmt.Errorf("%w: file too small for footer", ErrInvalidFooter)
	}

	footerBuf := make([]byte, defaultFooterSize)
	if _, err := ra.ReadAt(footerBuf, size-defaultFooterSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFooter, err)
	}

	footer, err := parseFooter(footerBuf)
	if err != nil {
		return err
	}
	a.footer = footer

	entries, err := parseEntryTable(ra, int64(footer.FileTableOffset), size, footer.FileCount)
	if err != nil {
		return err
	}

	for _, e := range entries {
		e.archive = a
	}
	a.entries = entries

	return nil
}

// parseFooter decodes the 24-byte little-endian footer record.
func parseFooter(buf []byte) (Footer, error) {
	if len(buf) != defaultFooterSize {
		return Footer{}, fmt.Errorf("%w: footer is %d bytes, want %d", ErrInvalidFooter, len(buf), defaultFooterSize)
	}

	var f Footer
	f.FileCount = binary.LittleEndian.Uint16(buf[0:2])
	f.FileTableOffset = binary.LittleEndian.Uint32(buf[2:6])
	f.RemovedCount = binary.LittleEndian.Uint16(buf[6:8])
	f.RemovedTableOffset = binary.LittleEndian.Uint32(buf[8:12])
	copy(f.Signature[:], buf[12:16])
	f.OldVersion = binary.LittleEndian.Uint32(buf[16:20])
	f.NewVersion = binary.LittleEndian.Uint32(buf[20:24])

	if f.Signature != footerSignature {
		return Footer{}, fmt.Errorf("%w: signature %x", ErrInvalidFooter, f.Signature)
	}

	return f, nil
}

// parseEntryTable reads fileCount entry records starting at tableOffset.
func parseEntryTable(ra io.ReaderAt, tableOffset int64, size int64, fileCount uint16) ([]*Entry, error) {
	if tableOffset < 0 || tableOffset > size {
		return nil, fmt.Errorf("%w: file_table_offset %d out of range", ErrInvalidEntryTable, tableOffset)
	}

	sr := io.NewSectionReader(ra, tableOffset, size-tableOffset)
	entries := make([]*Entry, 0, fileCount)

	for i := uint16(0); i < fileCount; i++ {
		e, err := readEntryRecord(sr)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidEntryTable, i, err)
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// entryRecordHeadSize is the fixed portion of an entry record, up to and
// including pack_name_length: path_length(2) + checksum(4) + size_compressed(4)
// + size_uncompressed(4) + offset(4) + pack_name_length(2).
const entryRecordHeadSize = 20

// readEntryRecord reads one entry-table record from r.
func readEntryRecord(r io.Reader) (*Entry, error) {
	var head [entryRecordHeadSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, err
	}

	pathLength := binary.LittleEndian.Uint16(head[0:2])
	checksum := binary.LittleEndian.Uint32(head[2:6])
	sizeCompressed := binary.LittleEndian.Uint32(head[6:10])
	sizeUncompressed := binary.LittleEndian.Uint32(head[10:14])
	offset := binary.LittleEndian.Uint32(head[14:18])
	packNameLength := binary.LittleEndian.Uint16(head[18:20])

	packNameBuf := make([]byte, packNameLength)
	if _, err := io.ReadFull(r, packNameBuf); err != nil {
		return nil, err
	}

	pathBuf := make([]byte, pathLength)
	if _, err := io.ReadFull(r, pathBuf); err != nil {
		return nil, err
	}

	rawPath := bytes.ReplaceAll(pathBuf, []byte(`\`), []byte("/"))

	return &Entry{
		PackName:         string(packNameBuf),
		Path:             string(rawPath),
		Offset:           offset,
		SizeCompressed:   sizeCompressed,
		SizeUncompressed: sizeUncompressed,
		Checksum:         checksum,
	}, nil
}
