package ipf

import "errors"

// Sentinel errors for IPF operations. Use errors.Is in callers.
var (
	// ErrInvalidFooter means the 24-byte footer signature or offsets are malformed.
	ErrInvalidFooter = errors.New("ipf: invalid or malformed footer")
	// ErrInvalidEntryTable means an entry record in the table could not be parsed.
	ErrInvalidEntryTable = errors.New("ipf: invalid entry table")
	// ErrNilSource means the archive has no backing byte source.
	ErrNilSource = errors.New("ipf: archive has no backing source")
	// ErrClosed means the archive's backing source is already closed.
	ErrClosed = errors.New("ipf: archive is closed")
	// ErrEncryptionMismatch means decrypted bytes did not look like a valid DEFLATE stream.
	ErrEncryptionMismatch = errors.New("ipf: decrypted payload is not a valid deflate stream")
	// ErrInvalidEntryPath means an entry path is empty or escapes the archive namespace.
	ErrInvalidEntryPath = errors.New("ipf: invalid entry path")
)
