package ipf

import "fmt"

// Entry represents one archived file. It carries a back-reference to its
// owning Archive so GetData can fetch stored bytes lazily through the
// archive's shared, mutex-guarded backing source; this mirrors the design
// note on cyclic ownership (entry ⇄ archive) rather than threading an
// explicit (archive, index) pair through every call site.
type Entry struct {
	archive *Archive

	// PackName is the logical sub-archive name; the first segment of FullPath.
	PackName string
	// Path is the entry path relative to PackName, forward-slash separated.
	Path string
	// Offset is the absolute byte offset of the stored payload in the backing source.
	Offset uint32
	// SizeCompressed is the size in bytes of the stored (possibly compressed, possibly
	// ciphered) payload.
	SizeCompressed uint32
	// SizeUncompressed is the size in bytes of the decoded payload.
	SizeUncompressed uint32
	// Checksum is the CRC-32 of the stored bytes.
	Checksum uint32

	// Modified reports whether content holds pending bytes that have not yet
	// been written to any backing source.
	Modified bool
	// content holds pending bytes when Modified is true; nil otherwise.
	content []byte
}

// FullPath returns PackName + "/" + Path, which is unique within an archive.
func (e *Entry) FullPath() string {
	return e.PackName + "/" + e.Path
}

// GetData returns the entry's decoded payload:
//  1. If Modified, return the pending content.
//  2. Else read SizeCompressed bytes at Offset from the backing source.
//  3. If Path's extension is in the no-compression list, return those bytes verbatim.
//  4. Else if the archive's cipher gate is enabled, decrypt.
//  5. Decompress via raw DEFLATE and return.
func (e *Entry) GetData() ([]byte, error) {
	if e.Modified {
		return e.content, nil
	}

	if e.archive == nil {
		return nil, ErrNilSource
	}

	stored, err := e.archive.ReadRaw(int64(e.Offset), int64(e.SizeCompressed))
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", e.FullPath(), err)
	}

	if noCompressExtension(e.Path) {
		return stored, nil
	}

	if e.archive.CipherEnabled() {
		stored = decryptStream(stored)
	}

	data, err := inflateRaw(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: entry %s: %w", ErrEncryptionMismatch, e.FullPath(), err)
	}

	return data, nil
}

// SetContent replaces the entry's payload and marks it modified so the next
// Save rewrites it from content rather than copying stored bytes verbatim.
func (e *Entry) SetContent(content []byte) {
	e.Modified = true
	e.content = content
	e.SizeUncompressed = uint32(len(content)) //nolint:gosec // archive payloads are bounded by the u32 size fields themselves
}
