package lamp

import (
	"fmt"
)

// Geometry records the measured layout of a valid set. Gaps count the bases
// strictly between two neighboring sites.
type Geometry struct {
	F3F2     int `json:"f3_f2" yaml:"f3_f2"`
	F2F1c    int `json:"f2_f1c" yaml:"f2_f1c"`
	F1cB1c   int `json:"f1c_b1c" yaml:"f1c_b1c"`
	B1cB2    int `json:"b1c_b2" yaml:"b1c_b2"`
	B2B3     int `json:"b2_b3" yaml:"b2_b3"`
	Amplicon int `json:"amplicon" yaml:"amplicon"`
}

// sites holds the six binding regions of a set in target order.
type sites struct {
	f3, f2, f1c, b1c, b2, b3 Part
}

func siteOf(c Candidate, name string) Part {
	return Part{Name: name, Start: c.Start, End: c.End, Strand: c.Strand, Seq: c.Seq}
}

func setSites(set PrimerSet) (sites, error) {
	f2, ok1 := set.FIP.Part("F2")
	f1c, ok2 := set.FIP.Part("F1c")
	if !ok1 || !ok2 {
		return sites{}, &GeometricConstraintError{Rule: "FIP_parts", Expected: "F1c and F2 regions", Actual: len(set.FIP.Parts)}
	}
	b1c, ok1 := set.BIP.Part("B1c")
	b2, ok2 := set.BIP.Part("B2")
	if !ok1 || !ok2 {
		return sites{}, &GeometricConstraintError{Rule: "BIP_parts", Expected: "B1c and B2 regions", Actual: len(set.BIP.Parts)}
	}
	return sites{
		f3: siteOf(set.F3, "F3"), f2: f2, f1c: f1c,
		b1c: b1c, b2: b2, b3: siteOf(set.B3, "B3"),
	}, nil
}

func lengthRule(rule string, r IntRange, n int) error {
	if !r.Contains(n) {
		return &GeometricConstraintError{Rule: rule, Expected: r.String(), Actual: n}
	}
	return nil
}

// orderRule requires left to end before right starts, then the gap between
// them to lie in r. The overlap rule is reported before the spacing rule.
func orderRule(overlap, spacing string, left, right Part, r IntRange) (int, error) {
	if left.End >= right.Start {
		return 0, &GeometricConstraintError{
			Rule:     overlap,
			Expected: fmt.Sprintf("%s end < %s start (%d)", left.Name, right.Name, right.Start),
			Actual:   left.End,
		}
	}
	gap := right.Start - left.End - 1
	if !r.Contains(gap) {
		return gap, &GeometricConstraintError{Rule: spacing, Expected: r.String(), Actual: gap}
	}
	return gap, nil
}

// Validate checks every length, ordering and spacing rule of a primer set
// and returns its measured geometry. The first violated rule is returned as
// a *GeometricConstraintError.
func Validate(set PrimerSet, cfg ConstraintConfig) (Geometry, error) {
	var g Geometry
	st, err := setSites(set)
	if err != nil {
		return g, err
	}
	l, sp := cfg.Lengths, cfg.Spacing
	for _, c := range []struct {
		rule string
		r    IntRange
		n    int
	}{
		{"F3_length", l.F3, set.F3.Len()},
		{"B3_length", l.B3, set.B3.Len()},
		{"F2_length", l.F2, st.f2.Len()},
		{"F1c_length", l.F1c, st.f1c.Len()},
		{"FIP_length", l.FIP, set.FIP.Len()},
		{"B1c_length", l.B1c, st.b1c.Len()},
		{"B2_length", l.B2, st.b2.Len()},
		{"BIP_length", l.BIP, set.BIP.Len()},
	} {
		if err := lengthRule(c.rule, c.r, c.n); err != nil {
			return g, err
		}
	}
	if g.F3F2, err = orderRule("F3_FIP_overlap", "F3_F2_spacing", st.f3, st.f2, sp.F3F2); err != nil {
		return g, err
	}
	if g.F2F1c, err = orderRule("F2_F1c_overlap", "F2_F1c_spacing", st.f2, st.f1c, sp.F2F1c); err != nil {
		return g, err
	}
	if g.F1cB1c, err = orderRule("FIP_BIP_overlap", "F1c_B1c_spacing", st.f1c, st.b1c, sp.F1cB1c); err != nil {
		return g, err
	}
	if g.B1cB2, err = orderRule("B1c_B2_overlap", "B1c_B2_spacing", st.b1c, st.b2, sp.B1cB2); err != nil {
		return g, err
	}
	if g.B2B3, err = orderRule("BIP_B3_overlap", "B2_B3_spacing", st.b2, st.b3, sp.B2B3); err != nil {
		return g, err
	}
	g.Amplicon = st.b2.Start - st.f2.End - 1
	if !sp.Amplicon.Contains(g.Amplicon) {
		return g, &GeometricConstraintError{Rule: "F2_B2_amplicon", Expected: sp.Amplicon.String(), Actual: g.Amplicon}
	}
	if set.LF != nil {
		if err := loopRule("LF", *set.LF, l.LF, st.f2, st.f1c); err != nil {
			return g, err
		}
	}
	if set.LB != nil {
		if err := loopRule("LB", *set.LB, l.LB, st.b1c, st.b2); err != nil {
			return g, err
		}
	}
	return g, nil
}

// loopRule requires a loop primer to lie strictly between left and right.
func loopRule(name string, c Candidate, r IntRange, left, right Part) error {
	if err := lengthRule(name+"_length", r, c.Len()); err != nil {
		return err
	}
	if c.Start <= left.End {
		return &GeometricConstraintError{
			Rule:     name + "_loop_region",
			Expected: fmt.Sprintf("start > %s end (%d)", left.Name, left.End),
			Actual:   c.Start,
		}
	}
	if c.End >= right.Start {
		return &GeometricConstraintError{
			Rule:     name + "_loop_region",
			Expected: fmt.Sprintf("end < %s start (%d)", right.Name, right.Start),
			Actual:   c.End,
		}
	}
	return nil
}

// fitsLoop reports whether c can serve as the loop primer between left and right.
func fitsLoop(c Candidate, left, right Part) bool {
	return c.Start > left.End && c.End < right.Start
}
