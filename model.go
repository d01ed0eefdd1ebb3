package ipf

import (
	"github.com/woozymasta/pathrules"
)

// Default archive tuning values.
const (
	DefaultNewVersion   = 1000000
	DefaultOldVersion   = 0
	defaultFooterSize   = 0x18
	versionGateMinValue = 11000
)

// footerSignature is the default 4-byte footer magic, shared with the ZIP
// end-of-central-directory record this container format descends from.
var footerSignature = [4]byte{0x50, 0x4B, 0x05, 0x06}

// Footer is the fixed 24-byte trailer located at the end of an archive. It
// locates the entry table and carries the version numbers that gate the
// cipher layer.
type Footer struct {
	// FileCount is the number of entries in the entry table.
	FileCount uint16
	// FileTableOffset is the absolute byte offset of the entry table.
	FileTableOffset uint32
	// RemovedCount and RemovedTableOffset are carried through unchanged;
	// no reader parses the removed-file table and no writer populates it.
	RemovedCount uint16
	// RemovedTableOffset is the absolute byte offset of the (unparsed) removed-file table.
	RemovedTableOffset uint32
	// Signature is the 4-byte footer magic, default 50 4B 05 06.
	Signature [4]byte
	// OldVersion and NewVersion are opaque version numbers; NewVersion
	// additionally gates the PKWARE cipher layer (see CipherEnabled).
	OldVersion uint32
	NewVersion uint32
}

// ReaderOptions configures Open/NewFromReaderAt. Currently has no fields;
// kept so callers have a stable extension point.
type ReaderOptions struct{}

// AddFolderOptions configures AddFolder.
type AddFolderOptions struct {
	// SkipRules are ordered path rules excluding matching files from ingest.
	SkipRules []pathrules.Rule
	// SkipMatcherOptions controls SkipRules matching.
	SkipMatcherOptions pathrules.MatcherOptions
}

// ExtractOptions configures ExtractAll.
type ExtractOptions struct {
	// OnEntryDone is called after one entry has been written to disk.
	OnEntryDone func(e *Entry, written int64, outputPath string)
	// MaxWorkers is the number of extraction workers; zero means GOMAXPROCS.
	MaxWorkers int
	// StopOnError, once one worker reports an error, cancels any entries not
	// yet dequeued by a worker. Entries already being extracted still run
	// to completion.
	StopOnError bool
}

// applyDefaults fills zero-valued reader options with defaults.
func (opts *ReaderOptions) applyDefaults() {}

// applyDefaults fills zero-valued folder-ingest options with defaults.
func (opts *AddFolderOptions) applyDefaults() {
	if opts.SkipMatcherOptions == (pathrules.MatcherOptions{}) {
		opts.SkipMatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionInclude,
		}
	}

	if opts.SkipMatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.SkipMatcherOptions.DefaultAction = pathrules.ActionInclude
	}
}

// applyDefaults fills zero-valued extract options with defaults.
func (opts *ExtractOptions) applyDefaults() {
	if opts.MaxWorkers < 0 {
		opts.MaxWorkers = 0
	}
}
