package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"lamp-core/fasta"
	"lamp-core/seq"
)

// Config controls the worker pool.
type Config struct {
	Threads int // worker goroutines; <1 means GOMAXPROCS
}

// InputError wraps a failure to read or parse an input file.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// ForEachTarget reads every record of files, runs work on cfg.Threads
// workers, and calls visit once per record in input order.
//
// It stops at the first input error (returned as *InputError), the first
// visit error, or cancellation of ctx, whichever comes first.
func ForEachTarget[R any](
	ctx context.Context,
	cfg Config,
	files []string,
	work func(context.Context, seq.Sequence) R,
	visit func(seq.Sequence, R) error,
) error {
	threads := cfg.Threads
	if threads < 1 {
		threads = runtime.GOMAXPROCS(0)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		idx    int
		target seq.Sequence
	}
	type result struct {
		job
		out R
	}
	jobs := make(chan job, threads*2)
	results := make(chan result, threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					r := result{job: j, out: work(ctx, j.target)}
					select {
					case results <- r:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: reorders by input index.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := map[int]result{}
		next := 0
		for r := range results {
			if cerr != nil {
				continue
			}
			pending[r.idx] = r
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := visit(p.target, p.out); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
	var ferr error
	idx := 0
	for _, path := range files {
		err := fasta.ForEachSequence(ctx, path, func(s seq.Sequence) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- job{idx: idx, target: s}:
				idx++
				return nil
			}
		})
		if err != nil {
			if ctx.Err() == nil {
				ferr = &InputError{Path: path, Err: err}
				cancel()
			}
			break
		}
	}
	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	switch {
	case ferr != nil:
		return ferr
	case cerr != nil:
		return cerr
	}
	return ctx.Err()
}
