package order

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrItemsAreRequired      = errs.NewValueIsRequiredError("items")
)

// Order is a customer request for items from one store, delivered to a
// destination. The store's workflow is the only writer; an assigned worker
// is recorded by ID.
//
// Invariants:
//   - items are fixed at creation and every quantity is positive
//   - an assembler is bound from Assembling onwards, a courier from Delivering onwards
//   - estimated completion never decreases
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	destination kernel.Location
	createdAt   time.Time

	status Status

	// item name -> requested quantity
	items map[string]int

	assemblerID *kernel.UUID
	courierID   *kernel.UUID

	// createdAt plus every committed assembly and delivery duration
	estimatedCompletion time.Time

	isConstructed bool
}

// NewOrder creates an order in status New. The items map is copied.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, kernel.NewLocation(3, 4),
//	    map[string]int{"pen": 5}, clock.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	destination kernel.Location,
	items map[string]int,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:              New,
		createdAt:           createdAt,
		estimatedCompletion: createdAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setDestination(destination),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) Destination() kernel.Location {
	return o.destination
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the requested quantities by item name.
func (o *Order) Items() map[string]int {
	return maps.Clone(o.items)
}

// TotalUnits is the sum of every requested quantity.
func (o *Order) TotalUnits() int {
	total := 0
	for _, qty := range o.items {
		total += qty
	}
	return total
}

// Assembler returns the bound assembler's ID, or nil before assembly.
func (o *Order) Assembler() *kernel.UUID {
	return o.assemblerID
}

// Courier returns the bound courier's ID, or nil before delivery.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

func (o *Order) EstimatedCompletion() time.Time {
	return o.estimatedCompletion
}

// IsDue reports whether the estimated completion has been reached at now.
func (o *Order) IsDue(now time.Time) bool {
	return !now.Before(o.estimatedCompletion)
}

// MarkReady records that the stock for every line is on hand.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartAssembly binds an assembler and commits the assembly duration to the
// estimated completion.
func (o *Order) StartAssembly(assemblerID kernel.UUID, duration time.Duration) error {
	if err := errors.Join(assemblerID.Validate(), validateDuration(duration)); err != nil {
		return err
	}

	newStatus, err := o.status.StartAssembly()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assemblerID = &assemblerID
	o.estimatedCompletion = o.estimatedCompletion.Add(duration)
	return nil
}

func (o *Order) FinishAssembly() error {
	newStatus, err := o.status.FinishAssembly()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartDelivery binds a courier and commits the delivery duration to the
// estimated completion.
func (o *Order) StartDelivery(courierID kernel.UUID, duration time.Duration) error {
	if err := errors.Join(courierID.Validate(), validateDuration(duration)); err != nil {
		return err
	}

	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.estimatedCompletion = o.estimatedCompletion.Add(duration)
	return nil
}

func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("customer: %w", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

func (o *Order) setItems(items map[string]int) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	var err error
	for name, qty := range items {
		if name == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError("item name"))
		}
		if qty <= 0 {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid", fmt.Errorf("%s: %d is not greater than 0", name, qty)))
		}
	}
	if err != nil {
		return err
	}

	o.items = maps.Clone(items)
	return nil
}

func validateDuration(d time.Duration) error {
	if d < 0 {
		return errs.NewValueIsOutOfRangeError("duration", d, time.Duration(0), "unbounded")
	}
	return nil
}
