package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the stage an order has reached in the fulfillment workflow.
//
//	New ──> ReadyToAssemble ──> Assembling ──> Assembled ──> Delivering ──> Complete
//
// The zero value is Unknown and fails Validate.
type Status int

const (
	Unknown Status = iota

	// New orders wait for their stock shortfall to be procured.
	New

	// ReadyToAssemble orders have stock available and wait for an assembler.
	ReadyToAssemble

	// Assembling orders are held by an assembler until its timer elapses.
	Assembling

	// Assembled orders wait for their estimated completion and a courier.
	Assembled

	// Delivering orders are held by a courier until its timer elapses.
	Delivering

	// Complete is terminal.
	Complete
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		New:             "New",
		ReadyToAssemble: "ReadyToAssemble",
		Assembling:      "Assembling",
		Assembled:       "Assembled",
		Delivering:      "Delivering",
		Complete:        "Complete",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:             "New",
		ReadyToAssemble: "ReadyToAssemble",
		Assembling:      "Assembling",
		Assembled:       "Assembled",
		Delivering:      "Delivering",
		Complete:        "Complete",
	}
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition exists.
func (s Status) IsTerminal() bool {
	return s == Complete
}

// MarkReady moves New to ReadyToAssemble.
func (s Status) MarkReady() (Status, error) {
	return s.step(New, ReadyToAssemble)
}

// StartAssembly moves ReadyToAssemble to Assembling.
func (s Status) StartAssembly() (Status, error) {
	return s.step(ReadyToAssemble, Assembling)
}

// FinishAssembly moves Assembling to Assembled.
func (s Status) FinishAssembly() (Status, error) {
	return s.step(Assembling, Assembled)
}

// StartDelivery moves Assembled to Delivering.
func (s Status) StartDelivery() (Status, error) {
	return s.step(Assembled, Delivering)
}

// Complete moves Delivering to Complete.
func (s Status) Complete() (Status, error) {
	return s.step(Delivering, Complete)
}

// ValidateCanHaveAssembler checks that an assembler is bound exactly from
// Assembling onwards.
func (s Status) ValidateCanHaveAssembler(assembler bool) error {
	want := s >= Assembling
	if assembler == want {
		return nil
	}
	if assembler {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an assembler", s),
		)
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to have no assembler", s),
	)
}

// ValidateCanHaveCourier checks that a courier is bound exactly from
// Delivering onwards.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	want := s >= Delivering
	if courier == want {
		return nil
	}
	if courier {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to have no courier", s),
	)
}

func (s Status) step(from, to Status) (Status, error) {
	if s != from {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to move to %s", s, to),
		)
	}
	return to, nil
}
