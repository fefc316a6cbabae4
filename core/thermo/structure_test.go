package thermo

import (
	"testing"
)

func TestHairpins(t *testing.T) {
	c := newCalc()
	t.Run("stem-loop", func(t *testing.T) {
		hp := c.Hairpins("GCGCAAAAAGCGC")
		if len(hp) == 0 {
			t.Fatalf("expected a hairpin")
		}
		h := hp[0]
		if h.DeltaG >= 0 || h.Stem != 4 || h.Loop != 5 || h.Start != 0 {
			t.Fatalf("unexpected hairpin %+v", h)
		}
		if !near(h.DeltaG, -3.33, 0.01) {
			t.Fatalf("ΔG = %.3f, want ≈ -3.33", h.DeltaG)
		}
		if !h.Anchored3 || h.End() != 12 {
			t.Fatalf("stem should reach the 3' end: %+v", h)
		}
	})
	t.Run("no structure", func(t *testing.T) {
		if hp := c.Hairpins("AAAAAAAAAAAA"); len(hp) != 0 {
			t.Fatalf("poly-A should not fold: %+v", hp)
		}
	})
	t.Run("invalid input", func(t *testing.T) {
		if hp := c.Hairpins("A"); hp != nil {
			t.Fatalf("expected nil for too-short input")
		}
	})
}

func TestDimers(t *testing.T) {
	c := newCalc()
	t.Run("perfect duplex equals nearest-neighbor ΔG", func(t *testing.T) {
		a := "AAAAAGCGCGC"
		d := c.Dimers(a, "GCGCGCTTTTT")
		if len(d) == 0 {
			t.Fatalf("expected a duplex")
		}
		best := d[0]
		want, _ := FreeEnergy37(a)
		if !near(best.DeltaG, want, 1e-9) {
			t.Fatalf("ΔG = %v, want %v", best.DeltaG, want)
		}
		if best.StartA != 0 || best.EndA != len(a)-1 || !best.Anchored3 || best.Length() != len(a) {
			t.Fatalf("unexpected duplex %+v", best)
		}
	})
	t.Run("single mismatch bridges two runs", func(t *testing.T) {
		d := c.Dimers("GCGCAGCGC", "GCGCAGCGC")
		found := false
		for _, x := range d {
			if x.Mismatches == 1 && x.StartA == 0 && x.EndA == 8 && x.Anchored3 {
				found = true
			}
		}
		if !found {
			t.Fatalf("bridged duplex not reported: %+v", d)
		}
	})
	t.Run("sorted most stable first", func(t *testing.T) {
		d := c.Dimers("GCGCAGCGC", "GCGCAGCGC")
		for i := 1; i < len(d); i++ {
			if d[i].DeltaG < d[i-1].DeltaG {
				t.Fatalf("not sorted at %d", i)
			}
		}
	})
	t.Run("weak AT runs ignored", func(t *testing.T) {
		if d := c.Dimers("AAAAAAAA", "AAAAAAAA"); len(d) != 0 {
			t.Fatalf("no complementarity expected: %+v", d)
		}
	})
}

func TestMismatchPenalty(t *testing.T) {
	gt, ok := MismatchPenalty('C', 'G', 'C', 'G', 'T', 'G')
	if !ok {
		t.Fatalf("G·T should be a mismatch")
	}
	cc, _ := MismatchPenalty('C', 'C', 'C', 'G', 'C', 'G')
	if gt >= cc {
		t.Fatalf("G·T (%.2f) should be milder than C·C (%.2f)", gt, cc)
	}
	if _, ok := MismatchPenalty('A', 'G', 'A', 'T', 'C', 'T'); ok {
		t.Fatalf("G·C is a pair, not a mismatch")
	}
}

func TestProfileMemoized(t *testing.T) {
	c := NewCalculator(DefaultConditions(), WithCacheSize(8))
	nc := NewCalculator(DefaultConditions(), WithCacheSize(0))
	const s = "GCGCAAAAAGCGCTTAGC"
	p1, err := c.Profile(s)
	if err != nil {
		t.Fatal(err)
	}
	p2, _ := c.Profile(s)
	p3, _ := nc.Profile(s)
	if p1 != p2 || p1 != p3 {
		t.Fatalf("profiles differ: %+v %+v %+v", p1, p2, p3)
	}
	if p1.HairpinDG >= 0 {
		t.Fatalf("expected hairpin in profile: %+v", p1)
	}
	if _, err := c.Profile("A"); err == nil {
		t.Fatalf("expected error for too-short input")
	}
}

func TestReport(t *testing.T) {
	c := newCalc()
	r, err := c.Report("gcgcaaaaagcgc")
	if err != nil {
		t.Fatal(err)
	}
	if r.Sequence != "GCGCAAAAAGCGC" || r.Length != 13 {
		t.Fatalf("unexpected header fields: %+v", r)
	}
	if len(r.Hairpins) == 0 {
		t.Fatalf("report lost hairpins")
	}
	hasHairpinWarning := false
	for _, w := range r.Warnings {
		if w == "stable hairpin (-3.33 kcal/mol)" {
			hasHairpinWarning = true
		}
	}
	if !hasHairpinWarning {
		t.Fatalf("missing hairpin warning: %v", r.Warnings)
	}
	if _, err := c.Report(""); err == nil {
		t.Fatalf("expected error for empty sequence")
	}
}

func TestParseConc(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"50mM", 0.05, true},
		{"250nM", 2.5e-7, true},
		{"3uM", 3e-6, true},
		{"0.1", 0.1, true},
		{"2 xM", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, err := ParseConc(c.in)
		if (err == nil) != c.ok {
			t.Fatalf("ParseConc(%q) err=%v", c.in, err)
		}
		if c.ok && !near(got, c.want, 1e-15) {
			t.Fatalf("ParseConc(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEffectiveMonovalent(t *testing.T) {
	if EffectiveMonovalent(0.05, 0) != 0.05 {
		t.Fatalf("no Mg should leave Na unchanged")
	}
	if got := EffectiveMonovalent(0.05, 0.0004); !near(got, 0.05+3.8*0.02, 1e-12) {
		t.Fatalf("Na_eq = %v", got)
	}
}
