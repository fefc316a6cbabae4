package thermo

import "sort"

// Dimer is an intermolecular duplex between two oligos, a and b, both
// given 5'→3'. Positions are 0-based within each oligo.
type Dimer struct {
	StartA     int     `json:"start_a"` // first paired base of a
	EndA       int     `json:"end_a"`   // last paired base of a
	StartB     int     `json:"start_b"` // paired with a[EndA]
	EndB       int     `json:"end_b"`   // paired with a[StartA]
	Mismatches int     `json:"mismatches"`
	DeltaG     float64 `json:"delta_g"`
	Anchored3  bool    `json:"anchored_3"` // a 3' terminal base of either strand is paired
}

// Length returns the span of the duplex on a.
func (d Dimer) Length() int { return d.EndA - d.StartA + 1 }

type pairRun struct{ lo, hi int } // inclusive indices into a

// findDimers scans every antiparallel register of a against b. In register
// diag, a[i] faces b[diag-i]. Maximal Watson–Crick runs of at least minStem
// pairs are scored as stacking ΔG37 plus two initiation terms; two runs split
// by a single mismatch are also scored as one bridged duplex.
// Inputs must be normalized.
func findDimers(a, b string) []Dimer {
	na, nb := len(a), len(b)
	var out []Dimer
	for diag := 0; diag <= na+nb-2; diag++ {
		lo := diag - (nb - 1)
		if lo < 0 {
			lo = 0
		}
		hi := diag
		if hi > na-1 {
			hi = na - 1
		}
		var runs []pairRun
		for i := lo; i <= hi; {
			if !wc(a[i], b[diag-i]) {
				i++
				continue
			}
			start := i
			for i <= hi && wc(a[i], b[diag-i]) {
				i++
			}
			runs = append(runs, pairRun{start, i - 1})
		}
		for r, run := range runs {
			if run.hi-run.lo+1 >= minStem {
				out = appendDimer(out, a, b, diag, run.lo, run.hi, StackDG37(a[run.lo:run.hi+1]), 0)
			}
			if r+1 >= len(runs) {
				continue
			}
			next := runs[r+1]
			if next.lo != run.hi+2 || run.hi-run.lo+1 < 2 || next.hi-next.lo+1 < 2 {
				continue
			}
			m := run.hi + 1
			j := diag - m
			pen, ok := MismatchPenalty(a[m-1], a[m], a[m+1], b[j+1], b[j], b[j-1])
			if !ok {
				continue
			}
			g := StackDG37(a[run.lo:run.hi+1]) + StackDG37(a[next.lo:next.hi+1]) + pen
			out = appendDimer(out, a, b, diag, run.lo, next.hi, g, 1)
		}
	}
	sort.Slice(out, func(x, y int) bool {
		if out[x].DeltaG != out[y].DeltaG {
			return out[x].DeltaG < out[y].DeltaG
		}
		if out[x].StartA != out[y].StartA {
			return out[x].StartA < out[y].StartA
		}
		return out[x].StartB < out[y].StartB
	})
	return out
}

// appendDimer adds initiation for both helix ends and keeps stable duplexes.
func appendDimer(out []Dimer, a, b string, diag, lo, hi int, stack float64, mm int) []Dimer {
	g := stack + Initiation(a[lo]).DG(T37) + Initiation(a[hi]).DG(T37)
	if g >= 0 {
		return out
	}
	return append(out, Dimer{
		StartA:     lo,
		EndA:       hi,
		StartB:     diag - hi,
		EndB:       diag - lo,
		Mismatches: mm,
		DeltaG:     g,
		Anchored3:  hi == len(a)-1 || diag-lo == len(b)-1,
	})
}
