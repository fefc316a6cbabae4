// core/thermo/mismatch.go
package thermo

// Internal single mismatches that bridge two complementary runs of a dimer.
//
// The penalty is a ΔΔG (kcal/mol) added to the stacking energy of the two
// runs; the stacks spanning the mismatch itself are not counted.
// Ordering follows the usual chemistry: G·T wobble < transitions (A·G/C·T)
// < transversions, with C·C the harshest like-with-like mispair.
// Neighbor composition adjusts the baseline slightly.

// Pair-only ΔΔG (kcal/mol) baseline penalties, top base vs opposing base.
var pairDeltaG = map[[2]byte]float64{
	// Wobbles (milder)
	{'G', 'T'}: 0.60, {'T', 'G'}: 0.60,
	// Transitions (moderate)
	{'A', 'G'}: 0.85, {'G', 'A'}: 0.85,
	{'C', 'T'}: 0.85, {'T', 'C'}: 0.85,
	// Harsher pairs
	{'A', 'C'}: 1.10, {'C', 'A'}: 1.10,
	{'A', 'A'}: 1.40, {'C', 'C'}: 1.40, {'G', 'G'}: 1.40, {'T', 'T'}: 1.40,
}

// MismatchPenalty returns ΔΔG (kcal/mol) for the mismatch top/opp with
// neighbors top5/top3 on the top strand and opp5/opp3 on the opposing strand.
// ok is false when top and opp actually pair or are not concrete bases.
func MismatchPenalty(top5, top, top3, opp5, opp, opp3 byte) (float64, bool) {
	if !isACGT(top) || !isACGT(opp) || wc(top, opp) {
		return 0, false
	}
	base, ok := pairDeltaG[[2]byte{top, opp}]
	if !ok {
		base = 1.0
	}

	gc := countGC(top5) + countGC(top3) + countGC(opp5) + countGC(opp3)
	at := countAT(top5) + countAT(top3) + countAT(opp5) + countAT(opp3)

	switch [2]byte{top, opp} {
	case [2]byte{'G', 'T'}, [2]byte{'T', 'G'}:
		// G·T wobble is milder in AT-rich flanks.
		if at >= 3 {
			base -= 0.45
		} else if at == 2 {
			base -= 0.20
		}
	case [2]byte{'G', 'A'}, [2]byte{'A', 'G'}:
		if isPurine(top5)+isPurine(top3) > 0 && isPurine(opp5)+isPurine(opp3) > 0 {
			base -= 0.20
		}
	case [2]byte{'G', 'G'}:
		base -= 0.45
	case [2]byte{'A', 'A'}, [2]byte{'T', 'T'}:
		base -= 0.25
	case [2]byte{'C', 'C'}:
		base += 0.25
	}
	if gc >= at+2 {
		base -= 0.05
	}
	if base < 0.05 {
		base = 0.05
	}
	return base, true
}

func isACGT(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }

func countGC(b byte) int {
	if b == 'G' || b == 'C' {
		return 1
	}
	return 0
}

func countAT(b byte) int {
	if b == 'A' || b == 'T' {
		return 1
	}
	return 0
}

func isPurine(b byte) int {
	if b == 'A' || b == 'G' {
		return 1
	}
	return 0
}
