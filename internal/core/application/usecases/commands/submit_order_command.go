package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrItemsAreRequired  = errors.New("at least one item is required")
	ErrQuantityIsInvalid = errors.New("item quantity must be greater than 0")
)

// SubmitOrderCommand asks a store to accept a customer's order for delivery
// to (x, y).
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(storeID, customerID, 3, 4, map[string]int{"pen": 2})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	orderID, outcome, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	storeID    kernel.UUID
	customerID kernel.UUID
	x, y       kernel.Coordinate
	items      map[string]int

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(
	storeID, customerID kernel.UUID,
	x, y kernel.Coordinate,
	items map[string]int,
) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		x:     x,
		y:     y,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStoreID(storeID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c SubmitOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c SubmitOrderCommand) Destination() (kernel.Coordinate, kernel.Coordinate) {
	return c.x, c.y
}

// Items returns a copy of the requested quantities by item name.
func (c SubmitOrderCommand) Items() map[string]int {
	items := make(map[string]int, len(c.items))
	for name, qty := range c.items {
		items[name] = qty
	}
	return items
}

func (c *SubmitOrderCommand) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.storeID = id
	return nil
}

func (c *SubmitOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *SubmitOrderCommand) setItems(items map[string]int) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	c.items = make(map[string]int, len(items))
	for name, qty := range items {
		if qty <= 0 {
			return ErrQuantityIsInvalid
		}
		c.items[name] = qty
	}
	return nil
}
