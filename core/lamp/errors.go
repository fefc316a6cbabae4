package lamp

import "fmt"

// GeometricConstraintError reports the first layout rule a primer set broke.
type GeometricConstraintError struct {
	Rule     string // e.g. "F3_FIP_overlap", "F2_B2_amplicon"
	Expected string // the permitted range or relation
	Actual   int
}

func (e *GeometricConstraintError) Error() string {
	return fmt.Sprintf("geometry %s: expected %s, got %d", e.Rule, e.Expected, e.Actual)
}

// InsufficientCandidatesError reports a search stage that produced too few
// candidates to continue.
type InsufficientCandidatesError struct {
	Stage    string // a role name, "target" or "primer_sets"
	Found    int
	Required int
}

func (e *InsufficientCandidatesError) Error() string {
	return fmt.Sprintf("insufficient candidates at %s: found %d, need %d", e.Stage, e.Found, e.Required)
}
