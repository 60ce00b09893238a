// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands to detect zero values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard when
// the caller did not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records that the enclosing struct was produced by its
// constructor. The zero value is "not constructed".
//
// Example:
//
//	type Shift struct {
//	    storeID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewShift(storeID kernel.UUID) Shift {
//	    return Shift{storeID: storeID, guard: guard.NewConstructorGuard()}
//	}
//
//	func (s Shift) Validate() error {
//	    return s.guard.Validate(ErrShiftIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
