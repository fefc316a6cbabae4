package api

// ThermoV1 is the thermodynamic report of a single oligo.
type ThermoV1 struct {
	Schema       int         `json:"schema" yaml:"schema"`
	Sequence     string      `json:"sequence" yaml:"sequence"`
	Length       int         `json:"length" yaml:"length"`
	GC           float64     `json:"gc" yaml:"gc"`
	Tm           float64     `json:"tm" yaml:"tm"`
	DeltaG37     float64     `json:"delta_g37" yaml:"delta_g37"`
	EndStability float64     `json:"end_stability" yaml:"end_stability"`
	Palindromic  bool        `json:"palindromic" yaml:"palindromic"`
	NaM          float64     `json:"na_m" yaml:"na_m"`
	MgM          float64     `json:"mg_m" yaml:"mg_m"`
	PrimerM      float64     `json:"primer_m" yaml:"primer_m"`
	Hairpins     []HairpinV1 `json:"hairpins,omitempty" yaml:"hairpins,omitempty"`
	Dimers       []DuplexV1  `json:"self_dimers,omitempty" yaml:"self_dimers,omitempty"`
	Warnings     []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HairpinV1 is one stem-loop. Start is 0-based.
type HairpinV1 struct {
	Start     int     `json:"start" yaml:"start"`
	Stem      int     `json:"stem" yaml:"stem"`
	Loop      int     `json:"loop" yaml:"loop"`
	DeltaG    float64 `json:"delta_g" yaml:"delta_g"`
	Anchored3 bool    `json:"anchored_3" yaml:"anchored_3"`
}

// DuplexV1 is one intermolecular duplex between oligos A and B.
type DuplexV1 struct {
	A          string  `json:"a,omitempty" yaml:"a,omitempty"`
	B          string  `json:"b,omitempty" yaml:"b,omitempty"`
	StartA     int     `json:"start_a" yaml:"start_a"`
	EndA       int     `json:"end_a" yaml:"end_a"`
	StartB     int     `json:"start_b" yaml:"start_b"`
	EndB       int     `json:"end_b" yaml:"end_b"`
	Mismatches int     `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
	DeltaG     float64 `json:"delta_g" yaml:"delta_g"`
	Anchored3  bool    `json:"anchored_3" yaml:"anchored_3"`
}
