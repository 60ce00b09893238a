package kernel

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Coordinate is one axis of a position in the delivery plane. Stores and
// customers may sit anywhere on the integer grid, negative values included.
type Coordinate int

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is an immutable point on the integer grid.
//
// Example:
//
//	store := kernel.NewLocation(-10, -10)
//	customer := kernel.NewLocation(10, -10)
//	d, _ := store.Distance(customer) // 20
type Location struct {
	x     Coordinate
	y     Coordinate
	guard guard.ConstructorGuard
}

// NewLocation creates a Location at (x, y).
func NewLocation(x Coordinate, y Coordinate) Location {
	return Location{
		x:     x,
		y:     y,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate fails for the zero value.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// X returns the X coordinate.
func (l Location) X() Coordinate {
	return l.x
}

// Y returns the Y coordinate.
func (l Location) Y() Coordinate {
	return l.y
}

// String implements fmt.Stringer as "Location(x,y)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%d,%d)", l.x, l.y)
}

// IsEqual compares coordinates of two constructed locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// Distance returns the Euclidean distance between two constructed locations.
// Courier travel time is proportional to it.
func (l Location) Distance(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dx := float64(l.x - other.x)
	dy := float64(l.y - other.y)
	return math.Hypot(dx, dy), nil
}
