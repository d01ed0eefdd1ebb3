package ipf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestExtractAll(t *testing.T) {
	a := New(0, 20000)
	files := map[string]string{
		"hello.txt": "Hello",
		"world.txt": "World",
	}
	for name, content := range files {
		if _, err := a.AddFile("data.ipf", name, []byte(content)); err != nil {
			t.Fatalf("AddFile: %v", err)
		}
	}

	archivePath := filepath.Join(t.TempDir(), "a.ipf")
	if _, err := a.Save(archivePath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(archivePath, ReaderOptions{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close()

	dstDir := t.TempDir()

	var mu sync.Mutex
	done := map[string]int64{}

	opts := ExtractOptions{
		MaxWorkers: 4,
		OnEntryDone: func(e *Entry, written int64, outputPath string) {
			mu.Lock()
			done[e.FullPath()] = written
			mu.Unlock()
		},
	}

	if err := reopened.ExtractAll(context.Background(), dstDir, opts); err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}

	for name, content := range files {
		got, err := os.ReadFile(filepath.Join(dstDir, "data.ipf", name))
		if err != nil {
			t.Fatalf("read extracted %s: %v", name, err)
		}
		if string(got) != content {
			t.Errorf("extracted %s = %q, want %q", name, got, content)
		}

		if done["data.ipf/"+name] != int64(len(content)) {
			t.Errorf("OnEntryDone written for %s = %d, want %d", name, done["data.ipf/"+name], len(content))
		}
	}
}

func TestExtractAllStopOnError(t *testing.T) {
	a := New(0, 20000)
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		content := strings.Repeat(name, 64)
		if _, err := a.AddFile("data.ipf", name, []byte(content)); err != nil {
			t.Fatalf("AddFile %s: %v", name, err)
		}
	}

	archivePath := filepath.Join(t.TempDir(), "a.ipf")
	if _, err := a.Save(archivePath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(archivePath, ReaderOptions{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close()

	var bad *Entry
	for _, e := range reopened.entries {
		if e.Path == "b.txt" {
			bad = e
			break
		}
	}
	if bad == nil {
		t.Fatal("entry b.txt not found")
	}
	bad.SizeCompressed /= 2 // truncate the stored deflate stream so decoding fails

	var mu sync.Mutex
	done := map[string]bool{}

	opts := ExtractOptions{
		MaxWorkers:  1,
		StopOnError: true,
		OnEntryDone: func(e *Entry, written int64, outputPath string) {
			mu.Lock()
			done[e.Path] = true
			mu.Unlock()
		},
	}

	if err := reopened.ExtractAll(context.Background(), t.TempDir(), opts); err == nil {
		t.Fatal("ExtractAll: want error from corrupted entry, got nil")
	}

	if !done["a.txt"] {
		t.Error("a.txt should have been extracted before the failing entry")
	}
	if done["c.txt"] {
		t.Error("c.txt should have been skipped once StopOnError canceled remaining work")
	}
}

func TestExtractAllEmptyArchive(t *testing.T) {
	a := New(0, 1000000)
	archivePath := filepath.Join(t.TempDir(), "a.ipf")
	if _, err := a.Save(archivePath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(archivePath, ReaderOptions{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close()

	if err := reopened.ExtractAll(context.Background(), t.TempDir(), ExtractOptions{}); err != nil {
		t.Fatalf("ExtractAll on empty archive: %v", err)
	}
}
