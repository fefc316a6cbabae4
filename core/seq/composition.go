package seq

import "fmt"

// CompositionRules bound the low-complexity features tolerated in a primer.
type CompositionRules struct {
	GCMin          float64 `yaml:"gc_min" json:"gc_min" validate:"gte=0,lte=100"`
	GCMax          float64 `yaml:"gc_max" json:"gc_max" validate:"gte=0,lte=100,gtefield=GCMin"`
	MaxHomopolymer int     `yaml:"max_homopolymer" json:"max_homopolymer" validate:"gte=1"`
	MaxDinucRepeat int     `yaml:"max_dinuc_repeat" json:"max_dinuc_repeat" validate:"gte=1"`
}

// DefaultCompositionRules returns the screen applied to every primer window.
func DefaultCompositionRules() CompositionRules {
	return CompositionRules{GCMin: 30, GCMax: 70, MaxHomopolymer: 4, MaxDinucRepeat: 3}
}

// CompositionError names the composition rule a sequence failed.
type CompositionError struct {
	Rule   string
	Detail string
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composition: %s: %s", e.Rule, e.Detail)
}

// CheckComposition screens s against r. Returns nil when s passes.
func CheckComposition(s string, r CompositionRules) error {
	if !IsACGT(s) {
		return &CompositionError{Rule: "ambiguous_base", Detail: "only A/C/G/T allowed in primers"}
	}
	gc := GCContent(s)
	if gc < r.GCMin || gc > r.GCMax {
		return &CompositionError{Rule: "gc_band", Detail: fmt.Sprintf("GC %.1f%% outside %.0f-%.0f%%", gc, r.GCMin, r.GCMax)}
	}
	if r.MaxHomopolymer > 0 {
		if run := LongestHomopolymer(s); run > r.MaxHomopolymer {
			return &CompositionError{Rule: "homopolymer", Detail: fmt.Sprintf("run of %d > %d", run, r.MaxHomopolymer)}
		}
	}
	if r.MaxDinucRepeat > 0 {
		if rep := LongestDinucRepeat(s); rep > r.MaxDinucRepeat {
			return &CompositionError{Rule: "dinucleotide_repeat", Detail: fmt.Sprintf("%d tandem copies > %d", rep, r.MaxDinucRepeat)}
		}
	}
	return nil
}

// LongestHomopolymer returns the length of the longest single-base run.
func LongestHomopolymer(s string) int {
	if len(s) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run > best {
				best = run
			}
			continue
		}
		run = 1
	}
	return best
}

// LongestDinucRepeat returns the largest number of tandem copies of a
// heterodinucleotide (e.g. ATATAT → 3). Homodinucleotides are homopolymers
// and are not counted here.
func LongestDinucRepeat(s string) int {
	best := 0
	for phase := 0; phase < 2; phase++ {
		copies := 0
		for i := phase; i+1 < len(s); i += 2 {
			if s[i] == s[i+1] {
				copies = 0
				continue
			}
			if copies > 0 && s[i] == s[i-2] && s[i+1] == s[i-1] {
				copies++
			} else {
				copies = 1
			}
			if copies > best {
				best = copies
			}
		}
	}
	return best
}
