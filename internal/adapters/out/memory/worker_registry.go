package memory

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.WorkerRegistry = (*WorkerRegistry)(nil)

type WorkerRegistry struct {
	mu      sync.RWMutex
	byID    map[kernel.UUID]*worker.Worker
	workers []*worker.Worker
}

func NewWorkerRegistry() *WorkerRegistry {
	return &WorkerRegistry{byID: make(map[kernel.UUID]*worker.Worker)}
}

func (r *WorkerRegistry) Add(_ context.Context, w *worker.Worker) error {
	if err := w.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[w.ID()]; ok {
		return errs.NewValueIsInvalidError("worker id is already registered")
	}
	r.byID[w.ID()] = w
	r.workers = append(r.workers, w)
	return nil
}

func (r *WorkerRegistry) Get(_ context.Context, id kernel.UUID) (*worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("worker", id.String())
	}
	return w, nil
}

func (r *WorkerRegistry) GetAll(_ context.Context) ([]*worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*worker.Worker(nil), r.workers...), nil
}
