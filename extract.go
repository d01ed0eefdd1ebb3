package ipf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// ExtractAll writes every entry's decoded payload under dstDir, preserving
// FullPath as the relative output path. Extraction is embarrassingly
// parallel: each worker calls Entry.GetData concurrently, and the only
// shared mutable resource is the archive's backing source, serialized by
// its own mutex (see Archive.ReadRaw). In-flight GetData calls run to
// completion even when work is canceled; ExtractAll only stops handing out
// new work, it does not interrupt a worker already extracting an entry.
func (a *Archive) ExtractAll(ctx context.Context, dstDir string, opts ExtractOptions) error {
	opts.applyDefaults()

	if err := os.MkdirAll(dstDir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	entries := a.Entries()
	if len(entries) == 0 {
		return nil
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	taskCh := make(chan *Entry, len(entries))
	errCh := make(chan error, len(entries))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for e := range taskCh {
				select {
				case <-runCtx.Done():
					errCh <- runCtx.Err()
					continue
				default:
				}

				err := extractOne(dstDir, e, opts.OnEntryDone)
				if err != nil && opts.StopOnError {
					cancel()
				}

				errCh <- err
			}
		}()
	}

	for _, e := range entries {
		taskCh <- e
	}
	close(taskCh)

	wg.Wait()
	close(errCh)

	var first error
	for err := range errCh {
		if err != nil && first == nil {
			first = err
		}
	}

	return first
}

// extractOne decodes one entry and writes it to its output path under dstDir.
func extractOne(dstDir string, e *Entry, onDone func(*Entry, int64, string)) error {
	data, err := e.GetData()
	if err != nil {
		return fmt.Errorf("extract %s: %w", e.FullPath(), err)
	}

	outPath := filepath.Join(dstDir, filepath.FromSlash(e.FullPath()))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("create output dir for %s: %w", e.FullPath(), err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	if onDone != nil {
		onDone(e, int64(len(data)), outPath)
	}

	return nil
}
