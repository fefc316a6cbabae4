// core/seq/seq.go
// Nucleotide sequence model shared by the thermodynamics and design packages.
// All sequences are upper-case DNA over the IUPAC alphabet; RNA input is
// accepted and converted (U→T) on construction.
package seq

import (
	"fmt"
	"strings"
	"unicode"
)

// Allowed IUPAC DNA codes and the concrete bases they stand for.
var iupac = map[byte]string{
	'A': "A",
	'C': "C",
	'G': "G",
	'T': "T",
	'R': "AG",
	'Y': "CT",
	'S': "CG",
	'W': "AT",
	'K': "GT",
	'M': "AC",
	'B': "CGT",
	'D': "AGT",
	'H': "ACT",
	'V': "ACG",
	'N': "ACGT",
}

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['R'] = 'Y'
	complement['Y'] = 'R'
	complement['S'] = 'S'
	complement['W'] = 'W'
	complement['K'] = 'M'
	complement['M'] = 'K'
	complement['B'] = 'V'
	complement['V'] = 'B'
	complement['D'] = 'H'
	complement['H'] = 'D'
	complement['N'] = 'N'
}

// Sequence is a validated target or primer sequence.
type Sequence struct {
	Header string
	Bases  string
}

// New normalizes raw and validates it against the IUPAC alphabet.
func New(header, raw string) (Sequence, error) {
	s, err := Validate(raw)
	if err != nil {
		if header != "" {
			return Sequence{}, fmt.Errorf("%s: %w", header, err)
		}
		return Sequence{}, err
	}
	return Sequence{Header: header, Bases: s}, nil
}

// Len returns the number of bases.
func (s Sequence) Len() int { return len(s.Bases) }

// GCContent returns the G+C percentage (0..100).
func (s Sequence) GCContent() float64 { return GCContent(s.Bases) }

// ReverseComplement returns the IUPAC-aware reverse complement.
func (s Sequence) ReverseComplement() string { return RevComp(s.Bases) }

// Window returns the bases in the inclusive range [start, end].
func (s Sequence) Window(start, end int) (string, bool) {
	if start < 0 || end >= len(s.Bases) || start > end {
		return "", false
	}
	return s.Bases[start : end+1], true
}

// Normalize removes whitespace and quotes, upper-cases, and maps U to T.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		r = unicode.ToUpper(r)
		if r == 'U' {
			r = 'T'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Validate returns a normalized sequence or an error naming the first
// character outside the IUPAC alphabet.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", fmt.Errorf("empty sequence")
	}
	for i := 0; i < len(s); i++ {
		if _, ok := iupac[s[i]]; !ok {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T U R Y S W K M B D H V N", s[i], i+1)
		}
	}
	return s, nil
}

// RevComp returns the reverse complement. Unknown characters become N.
func RevComp(s string) string {
	n := len(s)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[s[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// GCContent returns the percentage of G and C. Ambiguity codes count as non-GC.
func GCContent(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	gc := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G', 'C', 'g', 'c':
			gc++
		}
	}
	return 100 * float64(gc) / float64(len(s))
}

// IsACGT reports whether s consists only of unambiguous bases.
func IsACGT(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}

// Matches reports whether IUPAC codes a and b share at least one base.
func Matches(a, b byte) bool {
	sa, okA := iupac[a]
	sb, okB := iupac[b]
	if !okA || !okB {
		return false
	}
	return strings.ContainsAny(sa, sb)
}
