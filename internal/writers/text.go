package writers

import (
	"fmt"
	"io"

	"lamp/internal/pretty"
)

type textSink struct {
	w   io.Writer
	opt Options
	n   int
}

func (s *textSink) Write(r Result) error {
	if r.Err != nil {
		_, err := fmt.Fprintf(s.w, "# %s (%d bp): no primer set: %v\n\n", r.TargetID, r.Length, r.Err)
		return err
	}
	for _, rep := range r.Reports {
		if s.n > 0 {
			if _, err := io.WriteString(s.w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(s.w, pretty.RenderReport(r.TargetID, rep, s.opt.Pretty)); err != nil {
			return err
		}
		s.n++
	}
	return nil
}

func (s *textSink) Close() error { return nil }

func init() {
	DesignWriters.Register("text", func(w io.Writer, opt Options) Sink { return &textSink{w: w, opt: opt} })
}
