package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrStartShiftCommandIsNotConstructed = errors.New(
	"StartShiftCommand must be created via NewStartShiftCommand constructor",
)

// StartShiftCommand puts a registered worker on shift at a store for a
// duration starting now. A worker may hold shifts at several stores.
type StartShiftCommand struct { //nolint:recvcheck //using for validation
	storeID  kernel.UUID
	workerID kernel.UUID
	duration time.Duration

	guard guard.ConstructorGuard
}

func NewStartShiftCommand(storeID, workerID kernel.UUID, duration time.Duration) (StartShiftCommand, error) {
	cmd := StartShiftCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setStoreID(storeID),
		cmd.setWorkerID(workerID),
		cmd.setDuration(duration),
	); err != nil {
		return StartShiftCommand{}, err
	}

	return cmd, nil
}

func (c StartShiftCommand) Validate() error {
	return c.guard.Validate(ErrStartShiftCommandIsNotConstructed)
}

func (c StartShiftCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c StartShiftCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c StartShiftCommand) Duration() time.Duration {
	return c.duration
}

func (c *StartShiftCommand) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.storeID = id
	return nil
}

func (c *StartShiftCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.workerID = id
	return nil
}

func (c *StartShiftCommand) setDuration(d time.Duration) error {
	if d <= 0 {
		return errs.NewValueIsOutOfRangeError("duration", d, time.Nanosecond, "unbounded")
	}
	c.duration = d
	return nil
}

type StartShiftCommandHandler struct {
	stores  ports.StoreRepository
	workers ports.WorkerRegistry
}

func NewStartShiftCommandHandler(stores ports.StoreRepository, workers ports.WorkerRegistry) StartShiftCommandHandler {
	return StartShiftCommandHandler{
		stores:  stores,
		workers: workers,
	}
}

func (h StartShiftCommandHandler) Handle(ctx context.Context, command StartShiftCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, err := h.stores.Get(ctx, command.StoreID())
	if err != nil {
		return err
	}

	w, err := h.workers.Get(ctx, command.WorkerID())
	if err != nil {
		return err
	}

	return s.AddWorker(w, command.Duration())
}
