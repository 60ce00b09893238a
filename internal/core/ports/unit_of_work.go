package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups journal writes into one transaction. Repositories
// obtained after Begin write inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	TransitionRepository() TransitionRepository

	OrderRepository() OrderRepository

	WorkerRepository() WorkerRepository
}
