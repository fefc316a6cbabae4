package lamp

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// PrimerSet is one complete LAMP design.
type PrimerSet struct {
	F3       Candidate  `json:"f3" yaml:"f3"`
	B3       Candidate  `json:"b3" yaml:"b3"`
	FIP      Candidate  `json:"fip" yaml:"fip"`
	BIP      Candidate  `json:"bip" yaml:"bip"`
	LF       *Candidate `json:"lf,omitempty" yaml:"lf,omitempty"`
	LB       *Candidate `json:"lb,omitempty" yaml:"lb,omitempty"`
	Geometry Geometry   `json:"geometry" yaml:"geometry"`
	Score    float64    `json:"score" yaml:"score"`
	Warnings []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Primers returns the set's primers in role order, loop primers last.
func (s PrimerSet) Primers() []Candidate {
	out := []Candidate{s.F3, s.B3, s.FIP, s.BIP}
	if s.LF != nil {
		out = append(out, *s.LF)
	}
	if s.LB != nil {
		out = append(out, *s.LB)
	}
	return out
}

// Key identifies the set by the coordinates of its binding sites.
func (s PrimerSet) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "F3:%d-%d", s.F3.Start, s.F3.End)
	for _, c := range []Candidate{s.FIP, s.BIP} {
		for _, p := range c.Parts {
			fmt.Fprintf(&b, "|%s:%d-%d", p.Name, p.Start, p.End)
		}
	}
	fmt.Fprintf(&b, "|B3:%d-%d", s.B3.Start, s.B3.End)
	return b.String()
}

// TmRange returns the lowest and highest primer Tm.
func (s PrimerSet) TmRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, c := range s.Primers() {
		lo = math.Min(lo, c.Tm)
		hi = math.Max(hi, c.Tm)
	}
	return lo, hi
}

// ScoreSet computes the overall score and the set-level warnings:
//
//	score = mean(primer scores) − (Tm max − Tm min) − |amplicon − midpoint| / scale
//
// where midpoint is the centre of the configured amplicon range. Cross-dimers
// between primers below the dimer threshold are reported as warnings.
func (d *Designer) ScoreSet(set *PrimerSet) {
	cfg := d.cfg
	primers := set.Primers()
	sum := 0.0
	for _, c := range primers {
		sum += c.Score
	}
	lo, hi := set.TmRange()
	spread := hi - lo
	mid := float64(cfg.Spacing.Amplicon.Min+cfg.Spacing.Amplicon.Max) / 2
	amp := set.Geometry.Amplicon
	set.Score = sum/float64(len(primers)) - spread - math.Abs(float64(amp)-mid)/cfg.Scoring.AmpliconScale

	var warns []string
	if spread > cfg.Scoring.TmSpreadWarn {
		warns = append(warns, fmt.Sprintf("Large Tm range: %.1f°C", spread))
	}
	if cfg.Scoring.AmpliconWarn > 0 && amp > cfg.Scoring.AmpliconWarn {
		warns = append(warns, fmt.Sprintf("Large amplicon: %dbp", amp))
	}
	for i := 0; i < len(primers); i++ {
		for j := i + 1; j < len(primers); j++ {
			dm := d.calc.Dimers(primers[i].Seq, primers[j].Seq)
			if len(dm) > 0 && dm[0].DeltaG < cfg.Thresholds.DimerDG {
				warns = append(warns, fmt.Sprintf("Cross-dimer %s/%s: %.2f kcal/mol", primers[i].Role, primers[j].Role, dm[0].DeltaG))
			}
		}
	}
	// keep warnings raised earlier (e.g. missing loop primers)
	set.Warnings = append(set.Warnings, warns...)
}

// attachLoops adds the best loop primers that fit the set's loop regions.
func (d *Designer) attachLoops(set *PrimerSet, lf, lb []Candidate) {
	st, err := setSites(*set)
	if err != nil {
		return
	}
	set.LF = firstFitting(lf, st.f2, st.f1c)
	if set.LF == nil {
		set.Warnings = append(set.Warnings, "No LF candidate fits the F2-F1c loop")
	}
	set.LB = firstFitting(lb, st.b1c, st.b2)
	if set.LB == nil {
		set.Warnings = append(set.Warnings, "No LB candidate fits the B1c-B2 loop")
	}
}

func firstFitting(cs []Candidate, left, right Part) *Candidate {
	for i := range cs {
		if fitsLoop(cs[i], left, right) {
			c := cs[i]
			return &c
		}
	}
	return nil
}

// rankSets orders by overall score, ties by site coordinates.
func rankSets(sets []PrimerSet) {
	sort.SliceStable(sets, func(i, j int) bool {
		if sets[i].Score != sets[j].Score {
			return sets[i].Score > sets[j].Score
		}
		return sets[i].Key() < sets[j].Key()
	})
}
