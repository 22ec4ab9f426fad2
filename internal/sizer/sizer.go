// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sizer measures container storage in the background.
//
// Every measurement runs on its own goroutine and reports through a
// one-shot channel with room for exactly one Result, so the producer never
// blocks and the input loop can poll it without waiting.
package sizer

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// progressEvery is how many files are tallied between progress reports.
const progressEvery = 256

// Sink receives running totals while a measurement streams.
type Sink func(partial int64)

// Measurer tallies the size of path.
type Measurer func(ctx context.Context, path string, progress Sink) (int64, error)

type Result struct {
	Name  string
	Bytes int64
	Err   error
}

// Size is the human readable form of r.
func (r Result) Size() string {
	if r.Err != nil {
		return "?"
	}
	return Format(r.Bytes)
}

func Format(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// Worker launches measurements and cancels the ones still running on
// Close.
type Worker struct {
	measure Measurer
	ctx     context.Context
	cancel  context.CancelFunc
	group   *errgroup.Group
	mu      sync.Mutex
	closed  bool
	notify  func(Result)
}

// New returns a Worker using measure, or Walk when measure is nil.
func New(measure Measurer) *Worker {
	if measure == nil {
		measure = Walk
	}
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	return &Worker{measure: measure, ctx: ctx, cancel: cancel, group: g}
}

// OnResult sets a function run on the measuring goroutine after each
// result has been delivered.
func (w *Worker) OnResult(fn func(Result)) {
	w.mu.Lock()
	w.notify = fn
	w.mu.Unlock()
}

// Start measures path in the background. The returned channel yields one
// Result.
func (w *Worker) Start(name, path string, sink Sink) <-chan Result {
	out := make(chan Result, 1)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		out <- Result{Name: name, Err: context.Canceled}
		return out
	}
	w.group.Go(func() error {
		n, err := w.measure(w.ctx, path, sink)
		r := Result{Name: name, Bytes: n, Err: err}
		out <- r
		w.mu.Lock()
		fn := w.notify
		w.mu.Unlock()
		if fn != nil {
			fn(r)
		}
		return nil
	})
	return out
}

// FireAndWait measures path and blocks until the result is in.
func (w *Worker) FireAndWait(ctx context.Context, name, path string) Result {
	return w.wait(ctx, name, w.Start(name, path, nil))
}

// FireAndStream is FireAndWait with sink receiving running totals.
func (w *Worker) FireAndStream(ctx context.Context, name, path string, sink Sink) Result {
	return w.wait(ctx, name, w.Start(name, path, sink))
}

func (w *Worker) wait(ctx context.Context, name string, ch <-chan Result) Result {
	select {
	case r := <-ch:
		return r
	case <-ctx.Done():
		return Result{Name: name, Err: ctx.Err()}
	}
}

// Close cancels running measurements and waits for their goroutines.
func (w *Worker) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.cancel()
	return w.group.Wait()
}

// Poll returns the result if it has arrived.
func Poll(ch <-chan Result) (Result, bool) {
	select {
	case r := <-ch:
		return r, true
	default:
		return Result{}, false
	}
}

// Walk sums the apparent size of every regular file below root, one
// goroutine per top-level entry. A missing or empty root counts as zero.
func Walk(ctx context.Context, root string, progress Sink) (int64, error) {
	if root == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var (
		total int64
		files int64
	)
	tally := func(n int64) {
		t := atomic.AddInt64(&total, n)
		if progress != nil && atomic.AddInt64(&files, 1)%progressEvery == 0 {
			progress(t)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		g.Go(func() error {
			return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					// unreadable parts are skipped, not fatal
					if d != nil && d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if !d.Type().IsRegular() {
					return nil
				}
				info, err := d.Info()
				if err != nil {
					return nil
				}
				tally(info.Size())
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return atomic.LoadInt64(&total), err
	}
	if progress != nil {
		progress(total)
	}
	return total, nil
}
