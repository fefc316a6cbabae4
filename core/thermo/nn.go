// core/thermo/nn.go
// Nearest-neighbor thermodynamics for DNA duplexes (SantaLucia unified set).
// Units: ΔH in kcal/mol, ΔS in cal/(K·mol). Tm in °C.
//
// Steps:
//  1) Sum per-stack ΔH/ΔS + initiation keyed by each terminal pair + symmetry.
//  2) Two-state Tm (K): Tm = ΔH*1000 / (ΔS + R ln(CT/x)) − 273.15 (°C),
//     x = 1 for self-complementary strands, 4 otherwise.
//  3) Salt: + 16.6·log10([Na+]eq), [Na+]eq = Na + 3.8·sqrt(Mg) (see conditions.go).
//
// This package has no app/output deps; the design engine imports it cleanly.

package thermo

import (
	"fmt"
	"math"
	"strings"
)

const (
	// Gas constant in cal/(K·mol)
	Rcal = 1.9872
	// T37 is 37 °C in kelvin.
	T37 = 310.15
)

// NNParams holds nearest-neighbor parameters.
type NNParams struct {
	DH float64 // kcal/mol
	DS float64 // cal/(K·mol)
}

// DG returns ΔG (kcal/mol) at temperature tK.
func (p NNParams) DG(tK float64) float64 { return p.DH - tK*p.DS/1000 }

// Watson–Crick stacks (1 M Na+) keyed by the top-strand dinucleotide 5'→3'.
// SantaLucia (1998) unified parameters.
var stackParams = map[string]NNParams{
	"AA": {-7.6, -21.3}, "TT": {-7.6, -21.3},
	"AT": {-7.2, -20.4},
	"TA": {-7.2, -21.3},
	"CA": {-8.5, -22.7}, "TG": {-8.5, -22.7},
	"GT": {-8.4, -22.4}, "AC": {-8.4, -22.4},
	"CT": {-7.8, -21.0}, "AG": {-7.8, -21.0},
	"GA": {-8.2, -22.2}, "TC": {-8.2, -22.2},
	"CG": {-10.6, -27.2},
	"GC": {-9.8, -24.4},
	"GG": {-8.0, -19.9}, "CC": {-8.0, -19.9},
}

// Initiation is applied once per helix end, keyed by the terminal pair.
var (
	initGC   = NNParams{0.1, -2.8}
	initAT   = NNParams{2.3, 4.1}
	symmetry = NNParams{0, -1.4}
)

// stackMean stands in for stacks that involve an ambiguity code.
var stackMean NNParams

func init() {
	for _, p := range stackParams {
		stackMean.DH += p.DH
		stackMean.DS += p.DS
	}
	stackMean.DH /= float64(len(stackParams))
	stackMean.DS /= float64(len(stackParams))
}

// Stack returns the parameters of the 5'-ab-3' stack. Ambiguous
// dinucleotides get the table mean.
func Stack(a, b byte) NNParams {
	if p, ok := stackParams[string([]byte{a, b})]; ok {
		return p
	}
	return stackMean
}

// Initiation returns the helix-end term for terminal base b.
func Initiation(b byte) NNParams {
	switch b {
	case 'G', 'C', 'S':
		return initGC
	case 'A', 'T', 'W':
		return initAT
	default:
		return NNParams{(initGC.DH + initAT.DH) / 2, (initGC.DS + initAT.DS) / 2}
	}
}

// Sums is the duplex total over stacks, initiation and symmetry.
type Sums struct {
	DH         float64 // kcal/mol
	DS         float64 // cal/(K·mol)
	Palindrome bool
}

// DG37 returns ΔG at 37 °C.
func (s Sums) DG37() float64 { return s.DH - T37*s.DS/1000 }

// NNSums computes the nearest-neighbor totals for a normalized sequence.
func NNSums(s string) (Sums, error) {
	if len(s) < 2 {
		return Sums{}, &ThermodynamicError{Op: "nn", Seq: s, Err: ErrTooShort}
	}
	var out Sums
	for i := 0; i+1 < len(s); i++ {
		p := Stack(s[i], s[i+1])
		out.DH += p.DH
		out.DS += p.DS
	}
	for _, b := range []byte{s[0], s[len(s)-1]} {
		p := Initiation(b)
		out.DH += p.DH
		out.DS += p.DS
	}
	if isSelfCompl(s) {
		out.Palindrome = true
		out.DH += symmetry.DH
		out.DS += symmetry.DS
	}
	return out, nil
}

// StackDG37 sums only the stacking ΔG37 of s (no initiation). Used for
// stems of hairpins and dimers.
func StackDG37(s string) float64 {
	g := 0.0
	for i := 0; i+1 < len(s); i++ {
		g += Stack(s[i], s[i+1]).DG(T37)
	}
	return g
}

// MeltingTemp returns the two-state Tm (°C) of s with its perfect complement.
func MeltingTemp(s string, cond Conditions) (float64, error) {
	p, err := prepare("tm", s)
	if err != nil {
		return 0, err
	}
	if cond.PrimerM <= 0 {
		return 0, &ThermodynamicError{Op: "tm", Seq: p, Err: fmt.Errorf("primer concentration must be > 0")}
	}
	naEq := EffectiveMonovalent(cond.NaM, cond.MgM)
	if naEq <= 0 {
		return 0, &ThermodynamicError{Op: "tm", Seq: p, Err: fmt.Errorf("[Na+] equivalent must be > 0")}
	}
	sums, err := NNSums(p)
	if err != nil {
		return 0, err
	}
	x := 4.0
	if sums.Palindrome {
		x = 1
	}
	tmK := (sums.DH * 1000.0) / (sums.DS + Rcal*math.Log(cond.PrimerM/x))
	return tmK - 273.15 + SaltCorrection(naEq), nil
}

// SaltCorrection returns the Tm shift (°C) relative to 1 M Na+.
func SaltCorrection(naEqM float64) float64 { return 16.6 * math.Log10(naEqM) }

// FreeEnergy37 returns ΔG37 (kcal/mol) of s with its perfect complement.
func FreeEnergy37(s string) (float64, error) {
	p, err := prepare("dg37", s)
	if err != nil {
		return 0, err
	}
	sums, err := NNSums(p)
	if err != nil {
		return 0, err
	}
	return sums.DG37(), nil
}

// prepare normalizes s and enforces the minimum length and alphabet.
func prepare(op, s string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(s))
	p = strings.ReplaceAll(p, "U", "T")
	if len(p) < 2 {
		return p, &ThermodynamicError{Op: op, Seq: p, Err: ErrTooShort}
	}
	for i := 0; i < len(p); i++ {
		if complement(p[i]) == 0 {
			return p, &ThermodynamicError{Op: op, Seq: p, Err: fmt.Errorf("%w %q at %d", ErrInvalidBase, p[i], i+1)}
		}
	}
	return p, nil
}

// ---------- helpers ----------

func complement(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'T':
		return 'A'
	case 'R':
		return 'Y'
	case 'Y':
		return 'R'
	case 'S', 'W', 'N':
		return b
	case 'K':
		return 'M'
	case 'M':
		return 'K'
	case 'B':
		return 'V'
	case 'V':
		return 'B'
	case 'D':
		return 'H'
	case 'H':
		return 'D'
	default:
		return 0
	}
}

// wc reports a Watson–Crick pair between concrete bases.
func wc(a, b byte) bool {
	switch a {
	case 'A':
		return b == 'T'
	case 'C':
		return b == 'G'
	case 'G':
		return b == 'C'
	case 'T':
		return b == 'A'
	default:
		return false
	}
}

func isSelfCompl(s string) bool {
	n := len(s)
	for i := 0; i < n; i++ {
		if complement(s[i]) != s[n-1-i] {
			return false
		}
	}
	return true
}
