package lamp

import (
	"fmt"
	"math"

	"lamp-core/seq"
	"lamp-core/thermo"
)

// Region is an inclusive window of the target.
type Region struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of bases in the region.
func (r Region) Len() int { return r.End - r.Start + 1 }

func (r Region) String() string { return fmt.Sprintf("%d-%d", r.Start, r.End) }

// GenerateCandidates enumerates, filters, scores and ranks candidates for
// role within region (nil means the whole target). The result is truncated
// to the configured number of candidates per role.
//
// Placement follows the LAMP layout: F3 starts near the region's left edge,
// B3 ends near its right edge, F2 (FIP) and B2 (BIP) are placed where an
// outer primer can still precede or follow them. For loop roles the region
// is the loop span itself.
func (d *Designer) GenerateCandidates(target string, role Role, region *Region) []Candidate {
	reg := Region{0, len(target) - 1}
	if region != nil {
		reg = clampRegion(*region, len(target))
	}
	if reg.Len() <= 0 {
		return nil
	}
	var out []Candidate
	switch role {
	case RoleF3, RoleB3:
		out = d.outer(target, role, reg)
	case RoleFIP:
		out = d.fip(target, reg)
	case RoleBIP:
		out = d.bip(target, reg)
	case RoleLF, RoleLB:
		out = d.loop(target, role, reg)
		return head(out, d.bounds.LoopCandidates)
	}
	return head(out, d.bounds.CandidatesPerRole)
}

func clampRegion(r Region, n int) Region {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > n-1 {
		r.End = n - 1
	}
	return r
}

// evaluate screens one oligo: composition, thermodynamics, Tm/GC bands and
// the hairpin limit. ok is false for any reject; thermodynamic failures are
// logged and treated as rejects.
func (d *Designer) evaluate(role Role, s string, tmT, gcT Target) (thermo.Profile, bool) {
	if err := seq.CheckComposition(s, d.cfg.Composition); err != nil {
		return thermo.Profile{}, false
	}
	p, err := d.calc.Profile(s)
	if err != nil {
		d.log.Debug("skip window", "role", role.String(), "seq", s, "err", err)
		return thermo.Profile{}, false
	}
	if !tmT.Contains(p.Tm) || !gcT.Contains(p.GC) {
		return p, false
	}
	if p.HairpinDG < d.cfg.Thresholds.HairpinDG {
		return p, false
	}
	return p, true
}

// trial builds the candidate for a simple window, or reports a reject.
func (d *Designer) trial(target string, role Role, start, end int, strand Strand) (Candidate, bool) {
	if start < 0 || end >= len(target) || start > end {
		return Candidate{}, false
	}
	s := target[start : end+1]
	if strand == Minus {
		s = seq.RevComp(s)
	}
	p, ok := d.evaluate(role, s, d.cfg.Tm, d.cfg.GC)
	if !ok {
		return Candidate{}, false
	}
	c := Candidate{
		Role:         role,
		Seq:          s,
		Start:        start,
		End:          end,
		Strand:       strand,
		Tm:           p.Tm,
		GC:           p.GC,
		DeltaG:       p.DeltaG,
		EndStability: p.EndStability,
		HairpinDG:    p.HairpinDG,
		DimerDG:      p.DimerDG,
		Score:        localScore(p.Tm, p.GC, p.HairpinDG, p.EndStability, d.cfg.Tm, d.cfg.GC, d.cfg),
	}
	d.selfDimerWarning(&c)
	return c, true
}

func (d *Designer) selfDimerWarning(c *Candidate) {
	if c.DimerDG < d.cfg.Thresholds.DimerDG {
		c.Warnings = append(c.Warnings, fmt.Sprintf("self-dimer %.2f kcal/mol", c.DimerDG))
	}
}

// outer generates F3 (plus strand, starting in the left edge window) or B3
// (minus strand, ending in the right edge window).
func (d *Designer) outer(target string, role Role, reg Region) []Candidate {
	edge := min(d.bounds.EdgeWindow, reg.Len())
	var out []Candidate
	if role == RoleF3 {
		for n := d.cfg.Lengths.F3.Min; n <= d.cfg.Lengths.F3.Max; n++ {
			for st := reg.Start; st < reg.Start+edge; st++ {
				if c, ok := d.trial(target, role, st, st+n-1, Plus); ok {
					out = append(out, c)
				}
			}
		}
	} else {
		for n := d.cfg.Lengths.B3.Min; n <= d.cfg.Lengths.B3.Max; n++ {
			for e := reg.End - edge + 1; e <= reg.End; e++ {
				if c, ok := d.trial(target, role, e-n+1, e, Minus); ok {
					out = append(out, c)
				}
			}
		}
	}
	rankCandidates(out)
	return out
}

// part evaluates one binding region of a composite primer.
func (d *Designer) part(target, name string, role Role, start, end int, strand Strand) (Part, bool) {
	if start < 0 || end >= len(target) || start > end {
		return Part{}, false
	}
	s := target[start : end+1]
	if strand == Minus {
		s = seq.RevComp(s)
	}
	p, ok := d.evaluate(role, s, d.cfg.compositeTm(), d.cfg.compositeGC())
	if !ok {
		return Part{}, false
	}
	return Part{Name: name, Start: start, End: end, Strand: strand, Seq: s, Tm: p.Tm, GC: p.GC}, true
}

// composite assembles a FIP or BIP from its two parts (5' part first) and
// screens the full primer. Tm is the mean of the parts' Tm.
func (d *Designer) composite(role Role, p5, p3 Part) (Candidate, bool) {
	full := p5.Seq + p3.Seq
	if err := seq.CheckComposition(full, d.cfg.Composition); err != nil {
		return Candidate{}, false
	}
	p, err := d.calc.Profile(full)
	if err != nil {
		d.log.Debug("skip composite", "role", role.String(), "seq", full, "err", err)
		return Candidate{}, false
	}
	if p.HairpinDG < d.cfg.Thresholds.HairpinDG {
		return Candidate{}, false
	}
	tm := (p5.Tm + p3.Tm) / 2
	c := Candidate{
		Role:         role,
		Seq:          full,
		Start:        min(p5.Start, p3.Start),
		End:          max(p5.End, p3.End),
		Strand:       p3.Strand,
		Tm:           tm,
		GC:           p.GC,
		DeltaG:       p.DeltaG,
		EndStability: p.EndStability,
		HairpinDG:    p.HairpinDG,
		DimerDG:      p.DimerDG,
		Score:        localScore(tm, p.GC, p.HairpinDG, p.EndStability, d.cfg.compositeTm(), d.cfg.compositeGC(), d.cfg),
		Parts:        []Part{p5, p3},
	}
	d.selfDimerWarning(&c)
	return c, true
}

// fip generates FIP = revcomp(F1c site) ++ F2 site. For every admissible F2
// window only the best-scoring F1c partner is kept.
func (d *Designer) fip(target string, reg Region) []Candidate {
	l, sp := d.cfg.Lengths, d.cfg.Spacing
	edge := min(d.bounds.EdgeWindow, reg.Len())
	lo := reg.Start + l.F3.Min + sp.F3F2.Min
	hi := reg.Start + edge - 1 + l.F3.Max + sp.F3F2.Max
	var out []Candidate
	for n2 := l.F2.Min; n2 <= l.F2.Max; n2++ {
		for s2 := lo; s2 <= hi; s2++ {
			f2, ok := d.part(target, "F2", RoleFIP, s2, s2+n2-1, Plus)
			if !ok {
				continue
			}
			best, found := Candidate{}, false
			for gap := sp.F2F1c.Min; gap <= sp.F2F1c.Max; gap++ {
				s1 := f2.End + 1 + gap
				for n1 := l.F1c.Min; n1 <= l.F1c.Max; n1++ {
					if !l.FIP.Contains(n1 + n2) {
						continue
					}
					f1c, ok := d.part(target, "F1c", RoleFIP, s1, s1+n1-1, Minus)
					if !ok {
						continue
					}
					c, ok := d.composite(RoleFIP, f1c, f2)
					if ok && (!found || c.Score > best.Score) {
						best, found = c, true
					}
				}
			}
			if found {
				out = append(out, best)
			}
		}
	}
	rankCandidates(out)
	return out
}

// bip generates BIP = revcomp(B1c site) ++ B2 site. B2 is placed where some
// B3 can still follow it. For every admissible B2 window only the
// best-scoring B1c partner is kept.
func (d *Designer) bip(target string, reg Region) []Candidate {
	l, sp := d.cfg.Lengths, d.cfg.Spacing
	edge := min(d.bounds.EdgeWindow, reg.Len())
	hi := reg.End - l.B3.Min - sp.B2B3.Min
	lo := reg.End - edge + 1 - l.B3.Max - sp.B2B3.Max
	var out []Candidate
	for n2 := l.B2.Min; n2 <= l.B2.Max; n2++ {
		for e2 := lo; e2 <= hi; e2++ {
			b2, ok := d.part(target, "B2", RoleBIP, e2-n2+1, e2, Plus)
			if !ok {
				continue
			}
			best, found := Candidate{}, false
			for gap := sp.B1cB2.Min; gap <= sp.B1cB2.Max; gap++ {
				e1 := b2.Start - 1 - gap
				for n1 := l.B1c.Min; n1 <= l.B1c.Max; n1++ {
					if !l.BIP.Contains(n1 + n2) {
						continue
					}
					b1c, ok := d.part(target, "B1c", RoleBIP, e1-n1+1, e1, Minus)
					if !ok {
						continue
					}
					c, ok := d.composite(RoleBIP, b1c, b2)
					if ok && (!found || c.Score > best.Score) {
						best, found = c, true
					}
				}
			}
			if found {
				out = append(out, best)
			}
		}
	}
	rankCandidates(out)
	return out
}

// loop generates LF (minus strand) or LB (plus strand) windows lying
// entirely inside span.
func (d *Designer) loop(target string, role Role, span Region) []Candidate {
	lens, strand := d.cfg.Lengths.LF, Minus
	if role == RoleLB {
		lens, strand = d.cfg.Lengths.LB, Plus
	}
	var out []Candidate
	for n := lens.Min; n <= lens.Max; n++ {
		for st := span.Start; st+n-1 <= span.End; st++ {
			if c, ok := d.trial(target, role, st, st+n-1, strand); ok {
				out = append(out, c)
			}
		}
	}
	rankCandidates(out)
	return out
}

// loopSpan returns the union of the loop gaps of composite candidates:
// F2 end..F1c start for FIP, B1c end..B2 start for BIP.
func loopSpan(cs []Candidate, left, right string) (Region, bool) {
	span := Region{Start: math.MaxInt, End: -1}
	for _, c := range cs {
		l, ok1 := c.Part(left)
		r, ok2 := c.Part(right)
		if !ok1 || !ok2 {
			continue
		}
		lo, hi := l.End+1, r.Start-1
		if hi < lo {
			continue
		}
		span.Start = min(span.Start, lo)
		span.End = max(span.End, hi)
	}
	return span, span.End >= 0
}
