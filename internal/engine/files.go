package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome of reflowing one file.
type FileResult struct {
	Path string
	// Source is the original file content.
	Source string
	Result
	// Err is a read or reflow error for this file. It does not stop the
	// other files.
	Err error
}

// Changed reports whether reflowing altered the file.
func (r FileResult) Changed() bool {
	return r.Err == nil && !r.Fallback && r.Text != r.Source
}

// ReflowFiles reflows every file in paths with at most workers running at
// once (GOMAXPROCS when workers < 1). Results come back in the order of
// paths. The returned error is only set when ctx is cancelled.
func (e *Engine) ReflowFiles(ctx context.Context, paths []string, workers int) ([]FileResult, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]FileResult, len(paths))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, path := range paths {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			results[i] = e.reflowFile(path)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("reflowed files", "files", len(paths), "workers", workers)
	return results, nil
}

func (e *Engine) reflowFile(path string) FileResult {
	res := FileResult{Path: path}
	data, err := os.ReadFile(path) //nolint:gosec // paths come from the command line
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return res
	}
	res.Source = string(data)

	fe := *e
	fe.logger = e.logger.With("file", path)
	res.Result, err = fe.Reflow(res.Source)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
	}
	return res
}
