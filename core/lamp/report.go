package lamp

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// reportNamespace scopes the deterministic set IDs.
var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:lamp:primer-set"))

// PrimerReport is the per-primer section of a design report.
type PrimerReport struct {
	Role         Role     `json:"role" yaml:"role"`
	Sequence     string   `json:"sequence" yaml:"sequence"`
	Length       int      `json:"length" yaml:"length"`
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

// Report is the structured summary of one primer set.
type Report struct {
	ID              string         `json:"id" yaml:"id"`
	Target          string         `json:"target,omitempty" yaml:"target,omitempty"`
	Rank            int            `json:"rank,omitempty" yaml:"rank,omitempty"`
	OverallScore    float64        `json:"overall_score" yaml:"overall_score"`
	TmMin           float64        `json:"tm_min" yaml:"tm_min"`
	TmMax           float64        `json:"tm_max" yaml:"tm_max"`
	TmUniformity    float64        `json:"tm_uniformity" yaml:"tm_uniformity"`
	AmpliconSize    int            `json:"amplicon_size" yaml:"amplicon_size"`
	Spacing         Geometry       `json:"spacing" yaml:"spacing"`
	Primers         []PrimerReport `json:"primers" yaml:"primers"`
	Warnings        []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Recommendations []string       `json:"recommendations" yaml:"recommendations"`
}

// SetID returns a stable identifier derived from the primer sequences.
func SetID(set PrimerSet) string {
	var b strings.Builder
	for _, c := range set.Primers() {
		b.WriteString(c.Role.String())
		b.WriteByte('=')
		b.WriteString(c.Seq)
		b.WriteByte(';')
	}
	return uuid.NewSHA1(reportNamespace, []byte(b.String())).String()
}

// GenerateReport builds the report of set under cfg. It is a pure function of
// its inputs.
func GenerateReport(set PrimerSet, cfg ConstraintConfig) Report {
	lo, hi := set.TmRange()
	r := Report{
		ID:           SetID(set),
		OverallScore: set.Score,
		TmMin:        lo,
		TmMax:        hi,
		TmUniformity: hi - lo,
		AmpliconSize: set.Geometry.Amplicon,
		Spacing:      set.Geometry,
		Warnings:     append([]string(nil), set.Warnings...),
	}
	for _, c := range set.Primers() {
		r.Primers = append(r.Primers, PrimerReport{
			Role:         c.Role,
			Sequence:     c.Seq,
			Length:       c.Len(),
			Start:        c.Start,
			End:          c.End,
			Strand:       c.Strand,
			Tm:           c.Tm,
			GC:           c.GC,
			DeltaG:       c.DeltaG,
			EndStability: c.EndStability,
			HairpinDG:    c.HairpinDG,
			DimerDG:      c.DimerDG,
			Score:        c.Score,
			Parts:        append([]Part(nil), c.Parts...),
			Warnings:     append([]string(nil), c.Warnings...),
		})
	}
	r.Recommendations = recommend(set, r, cfg)
	return r
}

// Reports builds ranked reports for the sets designed on target.
func Reports(target string, sets []PrimerSet, cfg ConstraintConfig) []Report {
	out := make([]Report, 0, len(sets))
	for i, s := range sets {
		r := GenerateReport(s, cfg)
		r.Target = target
		r.Rank = i + 1
		out = append(out, r)
	}
	return out
}

// hairpinMargin flags hairpins within this many kcal/mol of the limit.
const hairpinMargin = 1.0

func recommend(set PrimerSet, r Report, cfg ConstraintConfig) []string {
	var recs []string
	if r.TmUniformity > cfg.Scoring.TmUniformityOK {
		recs = append(recs, "Consider adjusting primer lengths to improve Tm uniformity")
	}
	if r.OverallScore < cfg.Scoring.LowScore {
		recs = append(recs, "Consider alternative primer sets with better scores")
	}
	for _, c := range set.Primers() {
		if c.HairpinDG < 0 && c.HairpinDG < cfg.Thresholds.HairpinDG+hairpinMargin {
			recs = append(recs, fmt.Sprintf("%s hairpin (%.2f kcal/mol) is close to the limit", c.Role, c.HairpinDG))
		}
		if c.EndStability > cfg.Thresholds.EndStability {
			recs = append(recs, fmt.Sprintf("%s has a weak 3' end (%.2f kcal/mol); consider a GC clamp", c.Role, c.EndStability))
		}
	}
	if set.LF == nil && set.LB == nil {
		recs = append(recs, "Loop primers (LF/LB) can shorten time to positivity")
	}
	if len(recs) == 0 {
		recs = append(recs, "Primer set meets all design criteria")
	}
	return recs
}
