package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Transition records one status change of an order.
type Transition struct {
	OrderID  kernel.UUID
	StoreID  kernel.UUID
	From     Status
	To       Status
	At       time.Time
	WorkerID *kernel.UUID
}
