package thermo

import "fmt"

// Report is the full thermodynamic characterization of one oligo.
type Report struct {
	Sequence     string     `json:"sequence" yaml:"sequence"`
	Length       int        `json:"length" yaml:"length"`
	GCContent    float64    `json:"gc_content" yaml:"gc_content"`
	TmC          float64    `json:"tm_celsius" yaml:"tm_celsius"`
	DeltaG37     float64    `json:"delta_g_37" yaml:"delta_g_37"`
	EndStability float64    `json:"end_stability" yaml:"end_stability"`
	Hairpins     []Hairpin  `json:"hairpins" yaml:"hairpins"`
	SelfDimers   []Dimer    `json:"self_dimers" yaml:"self_dimers"`
	Palindromic  bool       `json:"palindromic" yaml:"palindromic"`
	Conditions   Conditions `json:"conditions" yaml:"conditions"`
	Warnings     []string   `json:"warnings" yaml:"warnings"`
}

// Report warning thresholds.
const (
	reportTmLow     = 50.0
	reportTmHigh    = 72.0
	reportEndStrong = -9.0
	reportHairpin   = -3.0
	reportDimer     = -6.0
)

// Report characterizes seq at the calculator's conditions.
func (c *Calculator) Report(seq string) (Report, error) {
	s, err := prepare("report", seq)
	if err != nil {
		return Report{}, err
	}
	p, err := c.Profile(s)
	if err != nil {
		return Report{}, err
	}
	r := Report{
		Sequence:     s,
		Length:       len(s),
		GCContent:    p.GC,
		TmC:          p.Tm,
		DeltaG37:     p.DeltaG,
		EndStability: p.EndStability,
		Hairpins:     findHairpins(s),
		SelfDimers:   findDimers(s, s),
		Palindromic:  p.Palindrome,
		Conditions:   c.cond,
	}
	if r.TmC < reportTmLow {
		r.Warnings = append(r.Warnings, fmt.Sprintf("low Tm %.1f°C", r.TmC))
	}
	if r.TmC > reportTmHigh {
		r.Warnings = append(r.Warnings, fmt.Sprintf("high Tm %.1f°C", r.TmC))
	}
	if r.EndStability < reportEndStrong {
		r.Warnings = append(r.Warnings, fmt.Sprintf("very stable 3' end (%.2f kcal/mol)", r.EndStability))
	}
	if p.HairpinDG < reportHairpin {
		r.Warnings = append(r.Warnings, fmt.Sprintf("stable hairpin (%.2f kcal/mol)", p.HairpinDG))
	}
	if p.DimerDG < reportDimer {
		r.Warnings = append(r.Warnings, fmt.Sprintf("stable self-dimer (%.2f kcal/mol)", p.DimerDG))
	}
	if r.Palindromic {
		r.Warnings = append(r.Warnings, "palindromic sequence")
	}
	return r, nil
}
