// Package memory holds the live aggregates of the running process.
package memory

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.StoreRepository = (*StoreRepository)(nil)

type StoreRepository struct {
	mu     sync.RWMutex
	byID   map[kernel.UUID]*store.Store
	stores []*store.Store
}

func NewStoreRepository() *StoreRepository {
	return &StoreRepository{byID: make(map[kernel.UUID]*store.Store)}
}

func (r *StoreRepository) Add(_ context.Context, s *store.Store) error {
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID()]; ok {
		return errs.NewValueIsInvalidError("store id is already registered")
	}
	r.byID[s.ID()] = s
	r.stores = append(r.stores, s)
	return nil
}

func (r *StoreRepository) Get(_ context.Context, id kernel.UUID) (*store.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("store", id.String())
	}
	return s, nil
}

func (r *StoreRepository) GetAll(_ context.Context) ([]*store.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*store.Store(nil), r.stores...), nil
}
