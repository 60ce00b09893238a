package store

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderView is a point-in-time copy of an order, safe to hand out of the
// store's lock.
type OrderView struct {
	ID                  kernel.UUID
	StoreID             kernel.UUID
	CustomerID          kernel.UUID
	Destination         kernel.Location
	Status              order.Status
	Items               map[string]int
	AssemblerID         *kernel.UUID
	CourierID           *kernel.UUID
	CreatedAt           time.Time
	EstimatedCompletion time.Time
}

func newOrderView(storeID kernel.UUID, o *order.Order) OrderView {
	return OrderView{
		ID:                  o.ID(),
		StoreID:             storeID,
		CustomerID:          o.CustomerID(),
		Destination:         o.Destination(),
		Status:              o.Status(),
		Items:               o.Items(),
		AssemblerID:         copyID(o.Assembler()),
		CourierID:           copyID(o.Courier()),
		CreatedAt:           o.CreatedAt(),
		EstimatedCompletion: o.EstimatedCompletion(),
	}
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
