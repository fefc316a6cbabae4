// core/thermo/conditions.go
package thermo

import (
	"fmt"
	"math"
	"strings"
)

// Conditions are the reaction knobs every Tm depends on.
type Conditions struct {
	// Monovalent cations, mol/L.
	NaM float64 `yaml:"na_m" json:"na_m" validate:"gte=0"`

	// Magnesium, mol/L.
	MgM float64 `yaml:"mg_m" json:"mg_m" validate:"gte=0"`

	// Total primer concentration, mol/L.
	PrimerM float64 `yaml:"primer_m" json:"primer_m" validate:"gt=0"`
}

// DefaultConditions returns 50 mM Na+, 2 mM Mg2+ and 250 nM primer.
func DefaultConditions() Conditions {
	return Conditions{NaM: 0.05, MgM: 0.002, PrimerM: 2.5e-7}
}

// ParseConc parses "50mM", "250nM", "3uM" → mol/L.
func ParseConc(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	unit := ""
	val := 0.0
	n, err := fmt.Sscanf(s, "%f%s", &val, &unit)
	if err != nil && n != 1 {
		return 0, fmt.Errorf("invalid conc %q: %w", s, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("negative conc %q", s)
	}
	switch unit {
	case "m", "":
		return val, nil
	case "mm":
		return val * 1e-3, nil
	case "um", "μm":
		return val * 1e-6, nil
	case "nm":
		return val * 1e-9, nil
	default:
		return 0, fmt.Errorf("unknown unit %q in %q", unit, s)
	}
}

// EffectiveMonovalent folds Mg2+ into a single Na+-equivalent
// (Owczarzy-lite): Na_eq = Na + 3.8·sqrt(Mg).
func EffectiveMonovalent(naM, mgM float64) float64 {
	if mgM > 0 {
		return naM + 3.8*math.Sqrt(mgM)
	}
	return naM
}
