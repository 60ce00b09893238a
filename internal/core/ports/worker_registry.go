package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
)

// WorkerRegistry holds every worker of the network, whichever stores it has
// shifts at.
type WorkerRegistry interface {
	Add(ctx context.Context, w *worker.Worker) error

	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	GetAll(ctx context.Context) ([]*worker.Worker, error)
}
