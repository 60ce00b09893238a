package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
)

// StoreRepository holds the live Store aggregates of the process.
type StoreRepository interface {
	// Add registers a store. Adding a store whose ID is taken fails.
	Add(ctx context.Context, s *store.Store) error

	// Get returns the store or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)

	// GetAll returns every store in registration order.
	GetAll(ctx context.Context) ([]*store.Store, error)
}
