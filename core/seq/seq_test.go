package seq

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestRevCompSimple(t *testing.T) {
	if got := RevComp("AGTC"); got != "GACT" {
		t.Errorf("RevComp(AGTC) = %s, want GACT", got)
	}
}

func TestRevCompAmbiguous(t *testing.T) {
	in := "RYSWKMBDHVN"
	want := "NBDHVKMWSRY"
	if got := RevComp(in); got != want {
		t.Errorf("RevComp(%s) = %s, want %s", in, got, want)
	}
}

func TestRevCompEmpty(t *testing.T) {
	if out := RevComp(""); out != "" {
		t.Errorf("RevComp(\"\") = %q, want empty", out)
	}
}

func TestRevCompInvolution(t *testing.T) {
	const alphabet = "ACGTRYSWKMBDHVN"
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		b := make([]byte, 1+rng.Intn(60))
		for j := range b {
			b[j] = alphabet[rng.Intn(len(alphabet))]
		}
		s := string(b)
		if got := RevComp(RevComp(s)); got != s {
			t.Fatalf("RevComp(RevComp(%s)) = %s", s, got)
		}
	}
}

func TestNewNormalizes(t *testing.T) {
	s, err := New("n-gene", " acgu\nUUag ")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Bases != "ACGTTTAG" {
		t.Fatalf("Bases = %q, want ACGTTTAG", s.Bases)
	}
	if s.Len() != 8 {
		t.Fatalf("Len = %d", s.Len())
	}
	if s.ReverseComplement() != "CTAAACGT" {
		t.Fatalf("ReverseComplement = %q", s.ReverseComplement())
	}
}

func TestNewRejects(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if _, err := New("", "   "); err == nil || !strings.Contains(err.Error(), "empty") {
			t.Fatalf("expected empty error, got %v", err)
		}
	})
	t.Run("invalid base", func(t *testing.T) {
		_, err := New("x", "ACGTXACGT")
		if err == nil || !strings.Contains(err.Error(), "invalid base 'X' at 5") {
			t.Fatalf("expected invalid base error, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), "x: ") {
			t.Fatalf("expected header prefix, got %v", err)
		}
	})
}

func TestGCContent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"GGCC", 100},
		{"ATAT", 0},
		{"ACGT", 50},
		{"NNGC", 50},
	}
	for _, c := range cases {
		if got := GCContent(c.in); got != c.want {
			t.Errorf("GCContent(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWindow(t *testing.T) {
	s := Sequence{Bases: "ACGTACGT"}
	if w, ok := s.Window(2, 4); !ok || w != "GTA" {
		t.Fatalf("Window(2,4) = %q,%v", w, ok)
	}
	if _, ok := s.Window(5, 8); ok {
		t.Fatalf("Window past end should fail")
	}
	if _, ok := s.Window(3, 2); ok {
		t.Fatalf("inverted window should fail")
	}
}

func TestMatches(t *testing.T) {
	if !Matches('R', 'A') || !Matches('N', 'C') || Matches('R', 'C') {
		t.Fatalf("IUPAC matching wrong")
	}
}

func TestCheckComposition(t *testing.T) {
	r := DefaultCompositionRules()
	cases := []struct {
		name string
		in   string
		rule string
	}{
		{"ok", "ACGTTGCAAGCTTGCA", ""},
		{"ambiguous", "ACGTNACGTACGT", "ambiguous_base"},
		{"gc low", "ATATTTAATATAATTA", "gc_band"},
		{"homopolymer", "ACGGGGGTACGCTAGC", "homopolymer"},
		{"dinucleotide", "GCATATATATCGGCAC", "dinucleotide_repeat"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckComposition(c.in, r)
			if c.rule == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ce *CompositionError
			if !errors.As(err, &ce) || ce.Rule != c.rule {
				t.Fatalf("want rule %s, got %v", c.rule, err)
			}
		})
	}
}

func TestLongestRuns(t *testing.T) {
	if got := LongestHomopolymer("ACCCGTTTTA"); got != 4 {
		t.Fatalf("LongestHomopolymer = %d, want 4", got)
	}
	if got := LongestDinucRepeat("GATATATC"); got != 3 {
		t.Fatalf("LongestDinucRepeat = %d, want 3", got)
	}
	if got := LongestDinucRepeat("AAAA"); got != 0 {
		t.Fatalf("LongestDinucRepeat(AAAA) = %d, want 0", got)
	}
}
