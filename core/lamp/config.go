package lamp

import (
	"fmt"
	"sort"
	"strings"

	"lamp-core/seq"
	"lamp-core/thermo"
)

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `yaml:"min" json:"min" validate:"gte=0"`
	Max int `yaml:"max" json:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies in the range.
func (r IntRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

func (r IntRange) String() string { return fmt.Sprintf("%d-%d", r.Min, r.Max) }

// Target is a scored range with an optimum.
type Target struct {
	Min float64 `yaml:"min" json:"min"`
	Opt float64 `yaml:"opt" json:"opt"`
	Max float64 `yaml:"max" json:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies in [Min, Max].
func (t Target) Contains(v float64) bool { return v >= t.Min && v <= t.Max }

// Lengths holds the permitted length of every primer region.
type Lengths struct {
	F3  IntRange `yaml:"f3" json:"f3"`
	B3  IntRange `yaml:"b3" json:"b3"`
	F2  IntRange `yaml:"f2" json:"f2"`
	F1c IntRange `yaml:"f1c" json:"f1c"`
	B2  IntRange `yaml:"b2" json:"b2"`
	B1c IntRange `yaml:"b1c" json:"b1c"`
	FIP IntRange `yaml:"fip" json:"fip"`
	BIP IntRange `yaml:"bip" json:"bip"`
	LF  IntRange `yaml:"lf" json:"lf"`
	LB  IntRange `yaml:"lb" json:"lb"`
}

// Spacing holds the permitted gaps (bases strictly between two sites).
type Spacing struct {
	F3F2   IntRange `yaml:"f3_f2" json:"f3_f2"`
	F2F1c  IntRange `yaml:"f2_f1c" json:"f2_f1c"`
	F1cB1c IntRange `yaml:"f1c_b1c" json:"f1c_b1c"`
	B1cB2  IntRange `yaml:"b1c_b2" json:"b1c_b2"`
	B2B3   IntRange `yaml:"b2_b3" json:"b2_b3"`
	// Amplicon is the F2–B2 distance: B2 start − F2 end − 1.
	Amplicon IntRange `yaml:"amplicon" json:"amplicon"`
}

// Thresholds are the ΔG37 limits (kcal/mol).
type Thresholds struct {
	// Candidates with a hairpin below this are rejected.
	HairpinDG float64 `yaml:"hairpin_dg" json:"hairpin_dg" validate:"lte=0"`
	// Primer pairs with a duplex below this are reported.
	DimerDG float64 `yaml:"dimer_dg" json:"dimer_dg" validate:"lte=0"`
	// 3' ends weaker (less negative) than this are penalized.
	EndStability float64 `yaml:"end_stability" json:"end_stability" validate:"lte=0"`
}

// Scoring holds the weights of the local and set scores.
type Scoring struct {
	TmWeight       float64 `yaml:"tm_weight" json:"tm_weight" validate:"gt=0"`
	GCWeight       float64 `yaml:"gc_weight" json:"gc_weight" validate:"gt=0"`
	AmpliconScale  float64 `yaml:"amplicon_scale" json:"amplicon_scale" validate:"gt=0"`
	TmSpreadWarn   float64 `yaml:"tm_spread_warn" json:"tm_spread_warn" validate:"gte=0"`
	AmpliconWarn   int     `yaml:"amplicon_warn" json:"amplicon_warn" validate:"gte=0"`
	TmUniformityOK float64 `yaml:"tm_uniformity_ok" json:"tm_uniformity_ok" validate:"gte=0"`
	LowScore       float64 `yaml:"low_score" json:"low_score"`
}

// ConstraintConfig is the full set of design rules. Every field has a
// default (DefaultConfig); any subset may be overridden.
type ConstraintConfig struct {
	Lengths     Lengths              `yaml:"lengths" json:"lengths"`
	Tm          Target               `yaml:"tm" json:"tm"`
	GC          Target               `yaml:"gc" json:"gc"`
	CompositeTm *Target              `yaml:"composite_tm,omitempty" json:"composite_tm,omitempty"`
	CompositeGC *Target              `yaml:"composite_gc,omitempty" json:"composite_gc,omitempty"`
	Spacing     Spacing              `yaml:"spacing" json:"spacing"`
	Thresholds  Thresholds           `yaml:"thresholds" json:"thresholds"`
	Composition seq.CompositionRules `yaml:"composition" json:"composition"`
	Conditions  thermo.Conditions    `yaml:"conditions" json:"conditions"`
	Scoring     Scoring              `yaml:"scoring" json:"scoring"`
}

// DefaultConfig returns the standard RT-LAMP design rules.
func DefaultConfig() ConstraintConfig {
	return ConstraintConfig{
		Lengths: Lengths{
			F3:  IntRange{15, 25},
			B3:  IntRange{15, 25},
			F2:  IntRange{18, 25},
			F1c: IntRange{15, 25},
			B2:  IntRange{18, 25},
			B1c: IntRange{15, 25},
			FIP: IntRange{35, 50},
			BIP: IntRange{35, 50},
			LF:  IntRange{15, 25},
			LB:  IntRange{15, 25},
		},
		Tm: Target{Min: 58, Opt: 61.5, Max: 65},
		GC: Target{Min: 40, Opt: 50, Max: 60},
		Spacing: Spacing{
			F3F2:     IntRange{0, 20},
			F2F1c:    IntRange{20, 45},
			F1cB1c:   IntRange{0, 80},
			B1cB2:    IntRange{20, 45},
			B2B3:     IntRange{0, 20},
			Amplicon: IntRange{120, 200},
		},
		Thresholds:  Thresholds{HairpinDG: -3.0, DimerDG: -5.0, EndStability: -2.0},
		Composition: seq.DefaultCompositionRules(),
		Conditions:  thermo.DefaultConditions(),
		Scoring: Scoring{
			TmWeight:       10,
			GCWeight:       100,
			AmpliconScale:  10,
			TmSpreadWarn:   5,
			AmpliconWarn:   180,
			TmUniformityOK: 3,
			LowScore:       -10,
		},
	}
}

// compositeTm returns the Tm window for FIP/BIP parts.
func (c ConstraintConfig) compositeTm() Target {
	if c.CompositeTm != nil {
		return *c.CompositeTm
	}
	return c.Tm
}

func (c ConstraintConfig) compositeGC() Target {
	if c.CompositeGC != nil {
		return *c.CompositeGC
	}
	return c.GC
}

// Footprint is the shortest target that can hold all six sites. The span
// between F2 and B2 is the larger of the minimum amplicon and the minimum
// F1c/B1c layout.
func (c ConstraintConfig) Footprint() int {
	l, s := c.Lengths, c.Spacing
	inner := max(s.Amplicon.Min, s.F2F1c.Min+l.F1c.Min+s.F1cB1c.Min+l.B1c.Min+s.B1cB2.Min)
	return l.F3.Min + s.F3F2.Min + l.F2.Min + inner + l.B2.Min + s.B2B3.Min + l.B3.Min
}

// Validate checks the cross-field rules of the configuration.
func (c ConstraintConfig) Validate() error {
	var errs []string
	ranges := map[string]IntRange{
		"lengths.f3": c.Lengths.F3, "lengths.b3": c.Lengths.B3,
		"lengths.f2": c.Lengths.F2, "lengths.f1c": c.Lengths.F1c,
		"lengths.b2": c.Lengths.B2, "lengths.b1c": c.Lengths.B1c,
		"lengths.fip": c.Lengths.FIP, "lengths.bip": c.Lengths.BIP,
		"lengths.lf": c.Lengths.LF, "lengths.lb": c.Lengths.LB,
		"spacing.f3_f2": c.Spacing.F3F2, "spacing.f2_f1c": c.Spacing.F2F1c,
		"spacing.f1c_b1c": c.Spacing.F1cB1c, "spacing.b1c_b2": c.Spacing.B1cB2,
		"spacing.b2_b3": c.Spacing.B2B3, "spacing.amplicon": c.Spacing.Amplicon,
	}
	for name, r := range ranges {
		if r.Min < 0 || r.Max < r.Min {
			errs = append(errs, fmt.Sprintf("%s: invalid range %s", name, r))
		}
		if strings.HasPrefix(name, "lengths.") && r.Min < 2 {
			errs = append(errs, fmt.Sprintf("%s: primers need at least 2 bases", name))
		}
	}
	targets := map[string]Target{"tm": c.Tm, "gc": c.GC, "composite_tm": c.compositeTm(), "composite_gc": c.compositeGC()}
	for name, t := range targets {
		if t.Max < t.Min || t.Opt < t.Min || t.Opt > t.Max {
			errs = append(errs, fmt.Sprintf("%s: need min <= opt <= max, got %g/%g/%g", name, t.Min, t.Opt, t.Max))
		}
	}
	if c.Lengths.F2.Min+c.Lengths.F1c.Min > c.Lengths.FIP.Max {
		errs = append(errs, "lengths.fip: shorter than the minimal F1c+F2")
	}
	if c.Lengths.B2.Min+c.Lengths.B1c.Min > c.Lengths.BIP.Max {
		errs = append(errs, "lengths.bip: shorter than the minimal B1c+B2")
	}
	if c.Conditions.PrimerM <= 0 {
		errs = append(errs, "conditions.primer_m: must be > 0")
	}
	if thermo.EffectiveMonovalent(c.Conditions.NaM, c.Conditions.MgM) <= 0 {
		errs = append(errs, "conditions: need Na+ or Mg2+ > 0")
	}
	if c.Scoring.TmWeight <= 0 || c.Scoring.GCWeight <= 0 || c.Scoring.AmpliconScale <= 0 {
		errs = append(errs, "scoring: weights must be > 0")
	}
	if len(errs) == 0 {
		return nil
	}
	sort.Strings(errs)
	return fmt.Errorf("invalid constraint config: %s", strings.Join(errs, "; "))
}

// Preset names.
const (
	PresetViralDetection = "viral-detection"
	PresetGeneExpression = "gene-expression"
)

// PresetNames lists the built-in presets.
func PresetNames() []string { return []string{PresetViralDetection, PresetGeneExpression} }

// Preset returns DefaultConfig with the named preset applied. Names are
// case-insensitive and accept '_' for '-'.
func Preset(name string) (ConstraintConfig, error) {
	cfg := DefaultConfig()
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-") {
	case "", "default":
	case PresetViralDetection:
		cfg.Lengths.F3 = IntRange{18, 20}
		cfg.Lengths.B3 = IntRange{18, 20}
		cfg.Lengths.FIP = IntRange{42, 50}
		cfg.Lengths.BIP = IntRange{42, 50}
		cfg.Tm = Target{Min: 58, Opt: 59, Max: 60}
		cfg.GC = Target{Min: 45, Opt: 50, Max: 55}
		cfg.CompositeTm = &Target{Min: 62, Opt: 63.5, Max: 65}
		cfg.CompositeGC = &Target{Min: 45, Opt: 50, Max: 55}
		cfg.Thresholds = Thresholds{HairpinDG: -1.5, DimerDG: -4.0, EndStability: -3.5}
	case PresetGeneExpression:
		cfg.Lengths.F3 = IntRange{20, 22}
		cfg.Lengths.B3 = IntRange{20, 22}
		cfg.Lengths.FIP = IntRange{45, 55}
		cfg.Lengths.BIP = IntRange{45, 55}
		cfg.Tm = Target{Min: 60, Opt: 61, Max: 62}
		cfg.GC = Target{Min: 40, Opt: 50, Max: 60}
		cfg.CompositeTm = &Target{Min: 63, Opt: 65, Max: 67}
		cfg.CompositeGC = &Target{Min: 40, Opt: 50, Max: 60}
		cfg.Thresholds = Thresholds{HairpinDG: -2.5, DimerDG: -6.0, EndStability: -4.5}
	default:
		return ConstraintConfig{}, fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(PresetNames(), ", "))
	}
	return cfg, nil
}

// SearchBounds caps the combinatorial search. Truncation to the top
// candidates per role is deliberate pruning: the global optimum can be
// missed when it sits outside the retained lists.
type SearchBounds struct {
	// Candidates kept per mandatory role after ranking.
	CandidatesPerRole int `yaml:"candidates_per_role" json:"candidates_per_role" validate:"gte=1"`
	// Candidates kept per loop role.
	LoopCandidates int `yaml:"loop_candidates" json:"loop_candidates" validate:"gte=1"`
	// Candidates per role entering the Cartesian product.
	CombinationDepth int `yaml:"combination_depth" json:"combination_depth" validate:"gte=1"`
	// A region is skipped when a mandatory role has fewer candidates.
	MinCandidates int `yaml:"min_candidates" json:"min_candidates" validate:"gte=1"`
	// Target is tiled into regions of this length.
	RegionLength int `yaml:"region_length" json:"region_length" validate:"gte=0"`
	// Offset between consecutive regions; 0 means half the region length.
	RegionStride int `yaml:"region_stride" json:"region_stride" validate:"gte=0"`
	// F3 starts and B3 ends are placed within this many bases of the region edges.
	EdgeWindow int `yaml:"edge_window" json:"edge_window" validate:"gte=1"`
	// Generate per-role candidate lists concurrently.
	Parallel bool `yaml:"parallel" json:"parallel"`
}

// DefaultSearchBounds returns the standard search limits.
func DefaultSearchBounds() SearchBounds {
	return SearchBounds{
		CandidatesPerRole: 50,
		LoopCandidates:    20,
		CombinationDepth:  20,
		MinCandidates:     5,
		RegionLength:      300,
		RegionStride:      150,
		EdgeWindow:        50,
		Parallel:          true,
	}
}

// Validate checks the search limits.
func (b SearchBounds) Validate() error {
	switch {
	case b.CandidatesPerRole < 1, b.LoopCandidates < 1, b.CombinationDepth < 1:
		return fmt.Errorf("search bounds: candidate limits must be >= 1")
	case b.MinCandidates < 1:
		return fmt.Errorf("search bounds: min_candidates must be >= 1")
	case b.EdgeWindow < 1:
		return fmt.Errorf("search bounds: edge_window must be >= 1")
	case b.RegionLength < 0 || b.RegionStride < 0:
		return fmt.Errorf("search bounds: region sizes must be >= 0")
	}
	return nil
}
