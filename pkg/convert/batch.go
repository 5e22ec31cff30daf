package convert

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// BatchResult reports the outcome for one source file.
type BatchResult struct {
	Src     string
	Dst     string
	Err     error
	Elapsed time.Duration
}

// Batch converts every PNG under srcDir into dstDir, fanning the files out
// across workers. Results come back in the same order as the discovered
// inputs. A per-file failure is recorded in its result; the batch keeps
// going unless ctx is canceled.
func Batch(ctx context.Context, srcDir, dstDir string, workers int, opts Options) ([]BatchResult, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, err
	}
	var srcs []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		srcs = append(srcs, filepath.Join(srcDir, e.Name()))
	}
	if len(srcs) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, err
	}

	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(srcs) {
		workers = len(srcs)
	}

	results := make([]BatchResult, len(srcs))
	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				src := srcs[i]
				base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
				dst := filepath.Join(dstDir, base+".cif")
				start := time.Now()
				_, err := PNGToCIF(ctx, src, dst, opts)
				results[i] = BatchResult{Src: src, Dst: dst, Err: err, Elapsed: time.Since(start)}
			}
		}()
	}

feed:
	for i := range srcs {
		select {
		case work <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	slog.InfoContext(ctx, "batch conversion finished",
		"files", len(srcs), "failed", failed, "workers", workers)
	return results, nil
}
