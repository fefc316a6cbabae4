package thermo

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// --- local helpers (test-only) ---------------------------------------------

func newCalc() *Calculator { return NewCalculator(DefaultConditions()) }

// ladder replaces the first k bases of base with those of rep, k = 0..len.
func ladder(base, rep string) []string {
	out := make([]string, 0, len(base)+1)
	for k := 0; k <= len(base); k++ {
		out = append(out, rep[:k]+base[k:])
	}
	return out
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// --- tests ------------------------------------------------------------------

func TestTm_InputValidation(t *testing.T) {
	c := newCalc()
	t.Run("too short", func(t *testing.T) {
		_, err := c.Tm("A", 0.05, 0.002)
		if !errors.Is(err, ErrTooShort) {
			t.Fatalf("expected ErrTooShort, got: %v", err)
		}
		var te *ThermodynamicError
		if !errors.As(err, &te) || te.Op != "tm" {
			t.Fatalf("expected *ThermodynamicError with op tm, got: %v", err)
		}
	})
	t.Run("invalid base", func(t *testing.T) {
		_, err := c.Tm("ACGTXACGT", 0.05, 0.002)
		if !errors.Is(err, ErrInvalidBase) || !strings.Contains(err.Error(), "at 5") {
			t.Fatalf("expected ErrInvalidBase at 5, got: %v", err)
		}
	})
	t.Run("no salt", func(t *testing.T) {
		if _, err := c.Tm("ACGTACGT", 0, 0); err == nil {
			t.Fatalf("expected error for zero salt")
		}
	})
}

func TestTm_ReferenceValues(t *testing.T) {
	c := newCalc()
	cases := []struct {
		seq  string
		want float64
	}{
		{strings.Repeat("GC", 10), 83.2},
		{strings.Repeat("AT", 10), 31.4},
		{"ATCGATCGATCGATCGAT", 54.44},
	}
	for _, tc := range cases {
		got, err := c.Tm(tc.seq, 0.05, 0.002)
		if err != nil {
			t.Fatalf("Tm(%s): %v", tc.seq, err)
		}
		if !near(got, tc.want, 0.1) {
			t.Errorf("Tm(%s) = %.2f, want ≈ %.2f", tc.seq, got, tc.want)
		}
	}
}

func TestTm_GCRichAboveATRich(t *testing.T) {
	c := newCalc()
	gc, _ := c.Tm(strings.Repeat("G", 10)+strings.Repeat("C", 10), 0.05, 0.002)
	at, _ := c.Tm(strings.Repeat("A", 10)+strings.Repeat("T", 10), 0.05, 0.002)
	if gc <= at {
		t.Fatalf("GC-rich Tm %.2f should exceed AT-rich Tm %.2f", gc, at)
	}
}

func TestTm_NonDecreasingInGC(t *testing.T) {
	c := newCalc()
	steps := ladder(strings.Repeat("ATAT", 5), strings.Repeat("GCGC", 5))
	prev := math.Inf(-1)
	for _, s := range steps {
		tm, err := c.Tm(s, 0.05, 0.002)
		if err != nil {
			t.Fatalf("Tm(%s): %v", s, err)
		}
		if tm < prev {
			t.Fatalf("Tm decreased at %s: %.3f < %.3f", s, tm, prev)
		}
		prev = tm
	}
}

func TestTm_SaltMonotonic(t *testing.T) {
	c := newCalc()
	const s = "ACGTTGCAAGCTTGCAAGCT"
	t.Run("sodium", func(t *testing.T) {
		prev := math.Inf(-1)
		for _, na := range []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0} {
			tm, err := c.Tm(s, na, 0.002)
			if err != nil {
				t.Fatal(err)
			}
			if tm < prev {
				t.Fatalf("Tm decreased with Na=%.3f", na)
			}
			prev = tm
		}
	})
	t.Run("magnesium", func(t *testing.T) {
		prev := math.Inf(-1)
		for _, mg := range []float64{0, 0.0005, 0.002, 0.006, 0.01} {
			tm, err := c.Tm(s, 0.05, mg)
			if err != nil {
				t.Fatal(err)
			}
			if tm < prev {
				t.Fatalf("Tm decreased with Mg=%.4f", mg)
			}
			prev = tm
		}
	})
}

func TestTm_DeterministicAndRNA(t *testing.T) {
	c := newCalc()
	a, err := c.Tm("acguugcaagcuugcaagcu", 0.05, 0.002)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := c.Tm("ACGTTGCAAGCTTGCAAGCT", 0.05, 0.002)
	if a != b {
		t.Fatalf("RNA/lowercase input changed Tm: %v vs %v", a, b)
	}
	for i := 0; i < 5; i++ {
		again, _ := c.Tm("ACGTTGCAAGCTTGCAAGCT", 0.05, 0.002)
		if again != b {
			t.Fatalf("non-deterministic Tm: %v vs %v", again, b)
		}
	}
}

func TestFreeEnergy37(t *testing.T) {
	g, err := FreeEnergy37("ACGTTGCAAGCTTGCAAGCT")
	if err != nil {
		t.Fatal(err)
	}
	if !near(g, -26.90, 0.05) {
		t.Fatalf("ΔG37 = %.3f, want ≈ -26.90", g)
	}
	if _, err := FreeEnergy37(""); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort for empty input, got %v", err)
	}
}

func TestEndStability(t *testing.T) {
	c := newCalc()
	t.Run("tail window", func(t *testing.T) {
		got := c.EndStability("ACGTTGCAAGCTTGCAAGCT", 5)
		want, _ := FreeEnergy37("AAGCT")
		if got != want {
			t.Fatalf("EndStability = %v, want %v", got, want)
		}
		if !near(got, -3.743, 0.01) {
			t.Fatalf("EndStability = %.3f, want ≈ -3.743", got)
		}
	})
	t.Run("fallback never fails", func(t *testing.T) {
		if got := c.EndStability("ACGTXXXXX", 5); got != -2.0 {
			t.Fatalf("fallback = %v, want -2.0", got)
		}
	})
	t.Run("GC tail more stable", func(t *testing.T) {
		if c.EndStability("ATATAGCGCG", 5) >= c.EndStability("GCGCGATATA", 5) {
			t.Fatalf("GC-clamped 3' end should be more stable")
		}
	})
}

func TestLoopPenalty(t *testing.T) {
	if LoopPenalty(5) != 3.3 {
		t.Fatalf("tabulated loop 5 = %v", LoopPenalty(5))
	}
	if got := LoopPenalty(11); !near(got, 4.8, 1e-9) {
		t.Fatalf("interpolated loop 11 = %v, want 4.8", got)
	}
	if LoopPenalty(40) <= LoopPenalty(30) {
		t.Fatalf("loop penalty should keep growing beyond 30")
	}
}
