package thermo

import (
	"errors"
	"fmt"
)

var (
	// ErrTooShort is returned for sequences shorter than one stack.
	ErrTooShort = errors.New("sequence too short (need at least 2 bases)")
	// ErrInvalidBase is returned for characters outside the IUPAC alphabet.
	ErrInvalidBase = errors.New("invalid base")
)

// ThermodynamicError reports a thermodynamic computation that could not be
// carried out. Candidate generation treats it as a rejected window.
type ThermodynamicError struct {
	Op  string
	Seq string
	Err error
}

func (e *ThermodynamicError) Error() string {
	s := e.Seq
	if len(s) > 24 {
		s = s[:21] + "..."
	}
	return fmt.Sprintf("thermo %s %q: %v", e.Op, s, e.Err)
}

func (e *ThermodynamicError) Unwrap() error { return e.Err }
