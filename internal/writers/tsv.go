package writers

import (
	"fmt"
	"io"
	"strings"

	"lamp-core/lamp"
)

// TSVHeader is the header row of the tsv format.
const TSVHeader = "target_id\trank\tset_id\tscore\ttm_min\ttm_max\tamplicon\tF3\tB3\tFIP\tBIP\tLF\tLB\twarnings"

type tsvSink struct {
	w      io.Writer
	header bool
}

func (s *tsvSink) Write(r Result) error {
	if s.header {
		if _, err := fmt.Fprintln(s.w, TSVHeader); err != nil {
			return err
		}
		s.header = false
	}
	for _, rep := range r.Reports {
		seqs := map[lamp.Role]string{}
		for _, p := range rep.Primers {
			seqs[p.Role] = p.Sequence
		}
		_, err := fmt.Fprintf(s.w, "%s\t%d\t%s\t%.3f\t%.2f\t%.2f\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.TargetID, rep.Rank, rep.ID, rep.OverallScore, rep.TmMin, rep.TmMax, rep.AmpliconSize,
			seqs[lamp.RoleF3], seqs[lamp.RoleB3], seqs[lamp.RoleFIP], seqs[lamp.RoleBIP],
			orDash(seqs[lamp.RoleLF]), orDash(seqs[lamp.RoleLB]),
			orDash(strings.Join(rep.Warnings, "; ")),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *tsvSink) Close() error { return nil }

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	DesignWriters.Register("tsv", func(w io.Writer, opt Options) Sink { return &tsvSink{w: w, header: opt.Header} })
}
