// Package rules evaluates named boolean controls attached to user records.
package rules

import "techstore/internal/directory"

// Decision is the three-way outcome of a control lookup. Unspecified means
// no policy is configured for the control, which is distinct from an
// explicit denial; the caller picks the default.
type Decision int

const (
	Unspecified Decision = iota
	Denied
	Allowed
)

func (d Decision) String() string {
	switch d {
	case Denied:
		return "denied"
	case Allowed:
		return "allowed"
	}
	return "unspecified"
}

// Evaluate looks up controlName on the user. A missing user, missing
// controls map, or absent entry is Unspecified. An explicit null is
// Denied. Anything else is coerced by truthiness: false, 0 and the empty
// string deny, all other values allow. Control values come from seeded
// JSON, so the loose typing is kept rather than rejected.
func Evaluate(u *directory.User, controlName string) Decision {
	if u == nil || u.Controls == nil {
		return Unspecified
	}
	v, ok := u.Controls[controlName]
	if !ok {
		return Unspecified
	}
	if v == nil {
		return Denied
	}
	switch t := v.(type) {
	case bool:
		if !t {
			return Denied
		}
	case float64:
		if t == 0 {
			return Denied
		}
	case int:
		if t == 0 {
			return Denied
		}
	case string:
		if t == "" {
			return Denied
		}
	}
	return Allowed
}
