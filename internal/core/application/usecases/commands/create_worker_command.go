package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateWorkerCommandIsNotConstructed = errors.New(
		"CreateWorkerCommand must be created via NewCreateWorkerCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
)

// CreateWorkerCommand hires an assembler or a courier. The worker has no
// shift anywhere until a StartShiftCommand gives it one.
type CreateWorkerCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	name     string
	role     worker.Role

	guard guard.ConstructorGuard
}

func NewCreateWorkerCommand(workerID kernel.UUID, name string, role worker.Role) (CreateWorkerCommand, error) {
	cmd := CreateWorkerCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setWorkerID(workerID),
		cmd.setName(name),
		cmd.setRole(role),
	); err != nil {
		return CreateWorkerCommand{}, err
	}

	return cmd, nil
}

func (c CreateWorkerCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkerCommandIsNotConstructed)
}

func (c CreateWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c CreateWorkerCommand) Name() string {
	return c.name
}

func (c CreateWorkerCommand) Role() worker.Role {
	return c.role
}

func (c *CreateWorkerCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.workerID = id
	return nil
}

func (c *CreateWorkerCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateWorkerCommand) setRole(role worker.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}

type CreateWorkerCommandHandler struct {
	workers    ports.WorkerRegistry
	uowFactory ports.UnitOfWorkFactory
}

func NewCreateWorkerCommandHandler(
	workers ports.WorkerRegistry,
	uowFactory ports.UnitOfWorkFactory,
) CreateWorkerCommandHandler {
	return CreateWorkerCommandHandler{
		workers:    workers,
		uowFactory: uowFactory,
	}
}

// Handle persists the worker first and registers it in the live registry
// only once the row is stored.
func (h CreateWorkerCommandHandler) Handle(ctx context.Context, command CreateWorkerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	w, err := worker.NewWorker(command.WorkerID(), command.Name(), command.Role())
	if err != nil {
		return err
	}

	if err = h.uowFactory.Create().WorkerRepository().Save(ctx, w); err != nil {
		return err
	}

	return h.workers.Add(ctx, w)
}
