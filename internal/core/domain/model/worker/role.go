package worker

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role selects the kind of work a worker does. Role-specific behavior is
// chosen by switching on the tag.
type Role int

const (
	UnknownRole Role = iota
	Assembler
	Courier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "Unknown",
		Assembler:   "Assembler",
		Courier:     "Courier",
	}
}

func (r Role) Validate() error {
	if r != Assembler && r != Courier {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// ParseRole accepts "assembler" or "courier" in any case used by String.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Assembler", "assembler":
		return Assembler, nil
	case "Courier", "courier":
		return Courier, nil
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

// Availability of a worker at one store at one instant.
type Availability int

const (
	NotAvailable Availability = iota
	Busy
	Free
)

func (a Availability) String() string {
	switch a {
	case NotAvailable:
		return "NotAvailable"
	case Busy:
		return "Busy"
	case Free:
		return "Free"
	}
	return "Unknown"
}
