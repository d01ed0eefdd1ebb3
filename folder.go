package ipf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/pathrules"
)

// newSkipMatcher compiles the folder-ingest skip rules, if any.
func newSkipMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*pathrules.Matcher, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("compile skip rules: %w", err)
	}

	return matcher, nil
}

// New creates an empty, sourceless archive ready for AddFolder/AddFile and Save.
func New(oldVersion, newVersion uint32) *Archive {
	return &Archive{
		footer: Footer{
			Signature:  footerSignature,
			OldVersion: oldVersion,
			NewVersion: newVersion,
		},
	}
}

// AddFile stages one entry with the given content, marking it modified. It
// overwrites any existing entry with the same FullPath.
func (a *Archive) AddFile(packName, entryPath string, content []byte) (*Entry, error) {
	normalized, err := validateEntryPath(entryPath)
	if err != nil {
		return nil, err
	}

	e := &Entry{archive: a, PackName: packName, Path: normalized}
	e.SetContent(content)

	if i := a.indexOf(e.FullPath()); i >= 0 {
		a.entries[i] = e
		return e, nil
	}

	a.entries = append(a.entries, e)
	return e, nil
}

// Remove deletes the entry with the given full path, if present.
func (a *Archive) Remove(fullPath string) bool {
	i := a.indexOf(fullPath)
	if i < 0 {
		return false
	}

	a.entries = append(a.entries[:i], a.entries[i+1:]...)
	return true
}

// indexOf returns the index of the entry with the given full path, or -1.
func (a *Archive) indexOf(fullPath string) int {
	for i, e := range a.entries {
		if e.FullPath() == fullPath {
			return i
		}
	}

	return -1
}

// AddFolder ingests filesystem content into the archive. With an empty
// packName, it discovers child directories of dir whose name ends in
// ".ipf" and ingests each as a pack named after the directory's basename
// (suffix included). With a non-empty packName, it ingests every file
// under dir recursively into that one pack.
func (a *Archive) AddFolder(packName, dir string, opts AddFolderOptions) error {
	opts.applyDefaults()

	if packName != "" {
		return a.ingestPack(packName, dir, opts)
	}

	children, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read folder %s: %w", dir, err)
	}

	for _, child := range children {
		if !child.IsDir() || !strings.EqualFold(filepath.Ext(child.Name()), ".ipf") {
			continue
		}

		name := child.Name()
		if err := a.ingestPack(name, filepath.Join(dir, child.Name()), opts); err != nil {
			return err
		}
	}

	return nil
}

// ingestPack walks folder recursively, staging every non-excluded file as a
// modified entry under packName.
func (a *Archive) ingestPack(packName, folder string, opts AddFolderOptions) error {
	skipMatcher, err := newSkipMatcher(opts.SkipRules, opts.SkipMatcherOptions)
	if err != nil {
		return err
	}

	return filepath.WalkDir(folder, func(p string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(folder, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}

		normalized := normalizeEntryPath(rel)
		if skipMatcher != nil && !skipMatcher.Included(normalized, false) {
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		if _, err := a.AddFile(packName, normalized, content); err != nil {
			return fmt.Errorf("add %s: %w", normalized, err)
		}

		return nil
	})
}
