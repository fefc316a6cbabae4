// Package api holds the stable wire schema of the JSON, JSONL and YAML outputs.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
package api

// SchemaVersion is bumped on any incompatible change below.
const SchemaVersion = 1

// DesignV1 is the document written by the json and yaml formats.
type DesignV1 struct {
	Schema  int        `json:"schema" yaml:"schema"`
	Tool    string     `json:"tool" yaml:"tool"`
	Version string     `json:"version" yaml:"version"`
	Targets []TargetV1 `json:"targets" yaml:"targets"`
}

// TargetV1 groups the ranked sets of one input record.
type TargetV1 struct {
	TargetID string  `json:"target_id" yaml:"target_id"`
	Length   int     `json:"length" yaml:"length"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
	Sets     []SetV1 `json:"sets" yaml:"sets"`
}

// SetV1 is one ranked primer set; the jsonl format writes one per line.
type SetV1 struct {
	SetID           string     `json:"set_id" yaml:"set_id"`
	TargetID        string     `json:"target_id" yaml:"target_id"`
	Rank            int        `json:"rank" yaml:"rank"`
	Score           float64    `json:"score" yaml:"score"`
	TmMin           float64    `json:"tm_min" yaml:"tm_min"`
	TmMax           float64    `json:"tm_max" yaml:"tm_max"`
	TmUniformity    float64    `json:"tm_uniformity" yaml:"tm_uniformity"`
	AmpliconSize    int        `json:"amplicon_size" yaml:"amplicon_size"`
	Spacing         SpacingV1  `json:"spacing" yaml:"spacing"`
	Primers         []PrimerV1 `json:"primers" yaml:"primers"`
	Warnings        []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

// SpacingV1 lists the gaps between neighboring binding sites.
type SpacingV1 struct {
	F3F2   int `json:"f3_f2" yaml:"f3_f2"`
	F2F1c  int `json:"f2_f1c" yaml:"f2_f1c"`
	F1cB1c int `json:"f1c_b1c" yaml:"f1c_b1c"`
	B1cB2  int `json:"b1c_b2" yaml:"b1c_b2"`
	B2B3   int `json:"b2_b3" yaml:"b2_b3"`
}

// PrimerV1 is one oligo of a set. Start/End are 0-based inclusive target
// coordinates; Strand is "+" or "-".
type PrimerV1 struct {
	Role         string     `json:"role" yaml:"role"`
	Sequence     string     `json:"sequence" yaml:"sequence"`
	Length       int        `json:"length" yaml:"length"`
	Start        int        `json:"start" yaml:"start"`
	End          int        `json:"end" yaml:"end"`
	Strand       string     `json:"strand" yaml:"strand"`
	Tm           float64    `json:"tm" yaml:"tm"`
	GC           float64    `json:"gc" yaml:"gc"`
	DeltaG       float64    `json:"delta_g" yaml:"delta_g"`
	EndStability float64    `json:"end_stability" yaml:"end_stability"`
	HairpinDG    float64    `json:"hairpin_dg" yaml:"hairpin_dg"`
	DimerDG      float64    `json:"dimer_dg" yaml:"dimer_dg"`
	Score        float64    `json:"score" yaml:"score"`
	Regions      []RegionV1 `json:"regions,omitempty" yaml:"regions,omitempty"`
	Warnings     []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// RegionV1 is a binding region of a composite primer (FIP or BIP).
type RegionV1 struct {
	Name     string  `json:"name" yaml:"name"`
	Sequence string  `json:"sequence" yaml:"sequence"`
	Start    int     `json:"start" yaml:"start"`
	End      int     `json:"end" yaml:"end"`
	Strand   string  `json:"strand" yaml:"strand"`
	Tm       float64 `json:"tm" yaml:"tm"`
	GC       float64 `json:"gc" yaml:"gc"`
}
