package writers

import (
	"bufio"
	"io"

	"lamp/internal/pretty"

	"lamp-core/lamp"
)

// Result is the outcome of designing one input record.
type Result struct {
	TargetID string
	Length   int
	Reports  []lamp.Report
	Err      error // set when no primer set could be designed
}

// Options control every writer.
type Options struct {
	Header  bool // TSV header row
	Pretty  pretty.Options
	Tool    string
	Version string
}

// StartDesignWriter spins up a writer goroutine for format. The error
// channel yields once, after in is closed; broken pipes are not errors.
// The input is always drained, so senders never block on a failed writer.
func StartDesignWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 16
	}
	in := make(chan Result, bufSize)
	errCh := make(chan error, 1)

	go func() {
		newSink, err := DesignWriters.Lookup(format)
		if err != nil {
			for range in {
			}
			errCh <- err
			return
		}
		bw := bufio.NewWriterSize(out, 64<<10)
		sink := newSink(bw, opt)
		var first error
		for r := range in {
			if first != nil {
				continue
			}
			first = sink.Write(r)
		}
		if first == nil {
			first = sink.Close()
		}
		if first == nil {
			first = bw.Flush()
		}
		errCh <- quiet(first)
	}()

	return in, errCh
}

// WriteDesign writes all results in one call.
func WriteDesign(out io.Writer, format string, opt Options, results []Result) error {
	in, done := StartDesignWriter(out, format, opt, len(results))
	for _, r := range results {
		in <- r
	}
	close(in)
	return <-done
}
