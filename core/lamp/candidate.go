package lamp

import (
	"sort"
)

// Part is one binding region of a composite primer (FIP or BIP).
// Coordinates are 0-based, inclusive, on the target's plus strand.
type Part struct {
	Name   string  `json:"name" yaml:"name"`
	Start  int     `json:"start" yaml:"start"`
	End    int     `json:"end" yaml:"end"`
	Strand Strand  `json:"strand" yaml:"strand"`
	Seq    string  `json:"sequence" yaml:"sequence"` // as written in the primer, 5'→3'
	Tm     float64 `json:"tm" yaml:"tm"`
	GC     float64 `json:"gc" yaml:"gc"`
}

// Len returns the number of target bases the part covers.
func (p Part) Len() int { return p.End - p.Start + 1 }

// Candidate is a scored primer for one role.
//
// For simple roles Seq covers exactly [Start, End]. For FIP and BIP, Seq is
// the concatenation of Parts (5' part first) and [Start, End] spans both
// binding regions: FIP runs from the F2 start to the F1c end, BIP from the
// B1c start to the B2 end.
type Candidate struct {
	Role         Role     `json:"role" yaml:"role"`
	Seq          string   `json:"sequence" yaml:"sequence"`
	Start        int      `json:"start" yaml:"start"`
	End          int      `json:"end" yaml:"end"`
	Strand       Strand   `json:"strand" yaml:"strand"`
	Tm           float64  `json:"tm" yaml:"tm"`
	GC           float64  `json:"gc" yaml:"gc"`
	DeltaG       float64  `json:"delta_g" yaml:"delta_g"`
	EndStability float64  `json:"end_stability" yaml:"end_stability"`
	HairpinDG    float64  `json:"hairpin_dg" yaml:"hairpin_dg"`
	DimerDG      float64  `json:"dimer_dg" yaml:"dimer_dg"`
	Score        float64  `json:"score" yaml:"score"`
	Parts        []Part   `json:"parts,omitempty" yaml:"parts,omitempty"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Len returns the primer length.
func (c Candidate) Len() int { return len(c.Seq) }

// Part returns the named binding region of a composite candidate.
func (c Candidate) Part(name string) (Part, bool) {
	for _, p := range c.Parts {
		if p.Name == name {
			return p, true
		}
	}
	return Part{}, false
}

// localScore rewards Tm and GC near their optima and penalizes hairpins
// beyond the threshold and 3' ends weaker than the target stability.
func localScore(tm, gc, hairpin, end float64, tmT, gcT Target, cfg ConstraintConfig) float64 {
	s := -(tm-tmT.Opt)*(tm-tmT.Opt)/cfg.Scoring.TmWeight - (gc-gcT.Opt)*(gc-gcT.Opt)/cfg.Scoring.GCWeight
	if d := hairpin - cfg.Thresholds.HairpinDG; d < 0 {
		s += d
	}
	if d := cfg.Thresholds.EndStability - end; d < 0 {
		s += d
	}
	return s
}

// rankCandidates orders by score, then position, so ties are deterministic.
func rankCandidates(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Seq < b.Seq
	})
}

func head(cs []Candidate, n int) []Candidate {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}
