package thermo

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultEndLength is the 3'-terminal window used for end stability.
const DefaultEndLength = 5

// DefaultCacheSize bounds the number of memoized profiles.
const DefaultCacheSize = 1 << 16

// Profile is the per-oligo summary the design engine filters and scores on.
type Profile struct {
	Tm           float64 // °C at the calculator's conditions
	GC           float64 // percent
	DeltaG       float64 // ΔG37 of the full duplex, kcal/mol
	EndStability float64 // ΔG37 of the 3' window, kcal/mol
	HairpinDG    float64 // most stable hairpin, 0 if none
	DimerDG      float64 // most stable self-dimer, 0 if none
	Palindrome   bool
}

// Calculator evaluates oligo thermodynamics at fixed reaction conditions.
// It is safe for concurrent use.
type Calculator struct {
	cond   Conditions
	endLen int
	cache  *lru.Cache[string, Profile]
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithEndLength sets the 3' window used by Profile.
func WithEndLength(n int) Option {
	return func(c *Calculator) {
		if n > 1 {
			c.endLen = n
		}
	}
}

// WithCacheSize bounds the profile memo. Zero or negative disables it.
func WithCacheSize(n int) Option {
	return func(c *Calculator) {
		if n <= 0 {
			c.cache = nil
			return
		}
		c.cache, _ = lru.New[string, Profile](n)
	}
}

// NewCalculator builds a Calculator for cond.
func NewCalculator(cond Conditions, opts ...Option) *Calculator {
	c := &Calculator{cond: cond, endLen: DefaultEndLength}
	c.cache, _ = lru.New[string, Profile](DefaultCacheSize)
	for _, o := range opts {
		o(c)
	}
	return c
}

// Conditions returns the reaction conditions Profile uses.
func (c *Calculator) Conditions() Conditions { return c.cond }

// Tm returns the melting temperature (°C) of seq at the given salt
// concentrations (mol/L) and the calculator's primer concentration.
func (c *Calculator) Tm(seq string, naM, mgM float64) (float64, error) {
	cond := c.cond
	cond.NaM = naM
	cond.MgM = mgM
	return MeltingTemp(seq, cond)
}

// FreeEnergy37 returns ΔG37 (kcal/mol) of seq with its complement.
func (c *Calculator) FreeEnergy37(seq string) (float64, error) {
	return FreeEnergy37(seq)
}

// EndStability returns ΔG37 of the last endLength bases of seq. It never
// fails: when the window cannot be evaluated a GC-proportional estimate is
// returned instead.
func (c *Calculator) EndStability(seq string, endLength int) float64 {
	if endLength <= 1 {
		endLength = DefaultEndLength
	}
	w := seq
	if len(w) > endLength {
		w = w[len(w)-endLength:]
	}
	if g, err := FreeEnergy37(w); err == nil {
		return g
	}
	gc := 0.0
	for i := 0; i < len(w); i++ {
		switch w[i] {
		case 'G', 'C', 'g', 'c':
			gc++
		}
	}
	if len(w) > 0 {
		gc /= float64(len(w))
	}
	return -(1.0 + 2.0*gc) * float64(endLength-1) / 2
}

// Hairpins returns the stable hairpins of seq, most stable first.
// Invalid input yields no structures.
func (c *Calculator) Hairpins(seq string) []Hairpin {
	p, err := prepare("hairpin", seq)
	if err != nil {
		return nil
	}
	return findHairpins(p)
}

// Dimers returns the stable duplexes between a and b, most stable first.
// Use Dimers(s, s) for self-dimers.
func (c *Calculator) Dimers(a, b string) []Dimer {
	pa, err := prepare("dimer", a)
	if err != nil {
		return nil
	}
	pb, err := prepare("dimer", b)
	if err != nil {
		return nil
	}
	return findDimers(pa, pb)
}

// Profile returns the memoized summary of seq at the calculator's conditions.
func (c *Calculator) Profile(seq string) (Profile, error) {
	if c.cache != nil {
		if p, ok := c.cache.Get(seq); ok {
			return p, nil
		}
	}
	s, err := prepare("profile", seq)
	if err != nil {
		return Profile{}, err
	}
	tm, err := MeltingTemp(s, c.cond)
	if err != nil {
		return Profile{}, err
	}
	sums, err := NNSums(s)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{
		Tm:           tm,
		GC:           gcPercent(s),
		DeltaG:       sums.DG37(),
		EndStability: c.EndStability(s, c.endLen),
		Palindrome:   sums.Palindrome,
	}
	if hp := findHairpins(s); len(hp) > 0 {
		p.HairpinDG = hp[0].DeltaG
	}
	if dm := findDimers(s, s); len(dm) > 0 {
		p.DimerDG = dm[0].DeltaG
	}
	if c.cache != nil {
		c.cache.Add(seq, p)
	}
	return p, nil
}

func gcPercent(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == 'G' || s[i] == 'C' {
			n++
		}
	}
	return 100 * float64(n) / float64(len(s))
}
