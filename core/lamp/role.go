package lamp

import (
	"fmt"
	"strings"
)

// Role identifies a primer's function in a LAMP set.
type Role int

const (
	RoleF3 Role = iota
	RoleB3
	RoleFIP
	RoleBIP
	RoleLF
	RoleLB
)

var roleNames = [...]string{"F3", "B3", "FIP", "BIP", "LF", "LB"}

// MandatoryRoles are the four primers every set carries, in combination order.
var MandatoryRoles = []Role{RoleF3, RoleB3, RoleFIP, RoleBIP}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// IsLoop reports whether r is an optional loop primer.
func (r Role) IsLoop() bool { return r == RoleLF || r == RoleLB }

// IsComposite reports whether r is built from two binding regions.
func (r Role) IsComposite() bool { return r == RoleFIP || r == RoleBIP }

// ParseRole parses a role name (case-insensitive).
func ParseRole(s string) (Role, error) {
	for i, n := range roleNames {
		if strings.EqualFold(s, n) {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown primer role %q", s)
}

// MarshalText encodes the role name.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Strand is the target strand a primer's sequence is read from.
type Strand byte

const (
	Plus  Strand = '+'
	Minus Strand = '-'
)

func (s Strand) String() string { return string(rune(s)) }

// MarshalText encodes the strand as "+" or "-".
func (s Strand) MarshalText() ([]byte, error) { return []byte{byte(s)}, nil }

// UnmarshalText decodes "+" or "-".
func (s *Strand) UnmarshalText(b []byte) error {
	if len(b) != 1 || (b[0] != '+' && b[0] != '-') {
		return fmt.Errorf("invalid strand %q", b)
	}
	*s = Strand(b[0])
	return nil
}
