package thermo

import (
	"math"
	"sort"
)

const (
	minStem = 3
	minLoop = 3
	maxLoop = 30
)

// Hairpin loop ΔG37 penalties (kcal/mol) by loop size. Sizes between
// entries are interpolated; sizes above 30 are extrapolated with the
// Jacobson–Stockmayer 1.75·RT·ln(n/30) term.
var loopPenalty = map[int]float64{
	3: 3.5, 4: 3.5, 5: 3.3, 6: 4.0, 7: 4.2, 8: 4.3, 9: 4.5, 10: 4.6,
	12: 5.0, 14: 5.1, 16: 5.3, 18: 5.5, 20: 5.7, 25: 6.1, 30: 6.3,
}

var loopSizes []int

func init() {
	for n := range loopPenalty {
		loopSizes = append(loopSizes, n)
	}
	sort.Ints(loopSizes)
}

// LoopPenalty returns the hairpin loop initiation ΔG37 for a loop of n bases.
func LoopPenalty(n int) float64 {
	if n < minLoop {
		n = minLoop
	}
	if v, ok := loopPenalty[n]; ok {
		return v
	}
	if n > maxLoop {
		return loopPenalty[maxLoop] + 1.75*Rcal*T37/1000*math.Log(float64(n)/maxLoop)
	}
	for i := 0; i+1 < len(loopSizes); i++ {
		a, b := loopSizes[i], loopSizes[i+1]
		if n > a && n < b {
			return loopPenalty[a] + (loopPenalty[b]-loopPenalty[a])*float64(n-a)/float64(b-a)
		}
	}
	return loopPenalty[maxLoop]
}

// Hairpin is an intramolecular stem-loop.
type Hairpin struct {
	Start     int     `json:"start"` // first base of the 5' stem arm (0-based)
	Stem      int     `json:"stem"`  // base pairs
	Loop      int     `json:"loop"`  // unpaired loop bases
	DeltaG    float64 `json:"delta_g"`
	Anchored3 bool    `json:"anchored_3"` // the 3' terminal base is in the stem
}

// End returns the last base of the 3' stem arm.
func (h Hairpin) End() int { return h.Start + 2*h.Stem + h.Loop - 1 }

// findHairpins enumerates maximal stems of at least minStem pairs closing a
// loop of minLoop..maxLoop bases, keeping those with ΔG37 < 0.
// s must be normalized.
func findHairpins(s string) []Hairpin {
	n := len(s)
	var out []Hairpin
	for i := 0; i < n; i++ {
		for j := n - 1; j > i; j-- {
			// only stems that cannot be extended outward
			if i > 0 && j < n-1 && wc(s[i-1], s[j+1]) {
				continue
			}
			k := 0
			for i+k < j-k && wc(s[i+k], s[j-k]) && (j-k)-(i+k)-1 >= minLoop {
				k++
			}
			if k < minStem {
				continue
			}
			loop := (j - k + 1) - (i + k)
			if loop < minLoop || loop > maxLoop {
				continue
			}
			g := StackDG37(s[i:i+k]) + LoopPenalty(loop)
			if g < 0 {
				out = append(out, Hairpin{Start: i, Stem: k, Loop: loop, DeltaG: g, Anchored3: j == n-1})
			}
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].DeltaG != out[b].DeltaG {
			return out[a].DeltaG < out[b].DeltaG
		}
		if out[a].Start != out[b].Start {
			return out[a].Start < out[b].Start
		}
		return out[a].Stem > out[b].Stem
	})
	return out
}
