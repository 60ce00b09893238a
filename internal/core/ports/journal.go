package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/worker"
)

// TransitionRepository appends to the order transition journal.
type TransitionRepository interface {
	Add(ctx context.Context, transition order.Transition) error
}

// OrderRepository keeps the latest known state of each order.
type OrderRepository interface {
	// Save inserts or replaces the order's row.
	Save(ctx context.Context, view store.OrderView) error

	Get(ctx context.Context, id kernel.UUID) (store.OrderView, error)
}

// WorkerRepository keeps the latest known state of each worker.
type WorkerRepository interface {
	Save(ctx context.Context, w *worker.Worker) error
}
