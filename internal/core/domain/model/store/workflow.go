package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// SubmitOrder creates an order in status New and advances it once. The
// order ID is returned whether or not that first advance made progress; an
// error with a zero ID means no order was created.
func (s *Store) SubmitOrder(
	ctx context.Context,
	customerID kernel.UUID,
	x, y kernel.Coordinate,
	items map[string]int,
) (kernel.UUID, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range items {
		if _, known := s.catalog[name]; !known {
			return kernel.UUID{}, Outcome{}, errs.NewObjectNotFoundError("item", name)
		}
	}

	o, err := order.NewOrder(kernel.NewUUID(), customerID, kernel.NewLocation(x, y), items, s.clock.Now())
	if err != nil {
		return kernel.UUID{}, Outcome{}, err
	}
	s.orders[o.ID()] = o
	s.orderIDs = append(s.orderIDs, o.ID())

	outcome, err := s.advance(ctx, o)
	return o.ID(), outcome, err
}

// AdvanceOrder drives the order as far as its guards allow. Wait conditions
// are reported through the Outcome, not as errors. An error is returned for
// infrastructure failures and, wrapping ErrInvariantViolation, alongside a
// ReasonInvariantViolation outcome.
func (s *Store) AdvanceOrder(ctx context.Context, orderID kernel.UUID) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return Outcome{OrderID: orderID, Reason: ReasonNotFound}, nil
	}
	return s.advance(ctx, o)
}

// stage runs one transition. It returns ReasonUnknown when the order moved
// on, or the reason it stayed put.
type stage func(ctx context.Context, o *order.Order, now time.Time) (Reason, *kernel.UUID, error)

func (s *Store) advance(ctx context.Context, o *order.Order) (Outcome, error) {
	outcome := Outcome{OrderID: o.ID()}

	for {
		now := s.clock.Now()
		from := o.Status()

		if from.IsTerminal() {
			outcome.Status = from
			outcome.Reason = ReasonCompleted
			return outcome, nil
		}

		var run stage
		switch from {
		case order.New:
			run = s.procure
		case order.ReadyToAssemble:
			run = s.startAssembly
		case order.Assembling:
			run = s.finishAssembly
		case order.Assembled:
			run = s.startDelivery
		case order.Delivering:
			run = s.finishDelivery
		default:
			outcome.Status = from
			outcome.Reason = ReasonInvariantViolation
			return outcome, fmt.Errorf("%w: order %s has status %s", ErrInvariantViolation, o.ID(), from)
		}

		reason, workerID, err := run(ctx, o, now)
		outcome.Status = o.Status()
		if err != nil {
			if errors.Is(err, ErrInvariantViolation) {
				outcome.Reason = ReasonInvariantViolation
			}
			return outcome, err
		}
		if reason != ReasonUnknown {
			outcome.Reason = reason
			return outcome, nil
		}

		outcome.Transitions = append(outcome.Transitions, order.Transition{
			OrderID:  o.ID(),
			StoreID:  s.id,
			From:     from,
			To:       o.Status(),
			At:       now,
			WorkerID: workerID,
		})
	}
}

// procure: New -> ReadyToAssemble once the store ledger covers every line.
func (s *Store) procure(ctx context.Context, o *order.Order, _ time.Time) (Reason, *kernel.UUID, error) {
	ok, err := s.replenish(ctx, o)
	if err != nil || !ok {
		return ReasonInsufficientStock, nil, err
	}
	return ReasonUnknown, nil, o.MarkReady()
}

// startAssembly: ReadyToAssemble -> Assembling. Stock is reserved before the
// assembler is claimed and returned if the claim is lost.
func (s *Store) startAssembly(ctx context.Context, o *order.Order, now time.Time) (Reason, *kernel.UUID, error) {
	assemblers := s.pool.Assemblers()
	if !anyFree(assemblers, s.id, now) {
		return ReasonNoAssemblerFree, nil, nil
	}

	request, err := s.request(o)
	if err != nil {
		return ReasonUnknown, nil, err
	}

	reserved, err := inventory.ReserveAll(ctx, s.ledger, request)
	if err != nil {
		return ReasonUnknown, nil, err
	}
	if !reserved {
		// Another order consumed the stock procured for this one.
		replenished, err := s.replenish(ctx, o)
		if err != nil || !replenished {
			return ReasonInsufficientStock, nil, err
		}
		reserved, err = inventory.ReserveAll(ctx, s.ledger, request)
		if err != nil || !reserved {
			return ReasonInsufficientStock, nil, err
		}
	}

	w, err := s.dispatcher.Dispatch(s.id, s.location, worker.Assembler, o, assemblers, now)
	if err != nil {
		if relErr := inventory.Release(ctx, s.ledger, request); relErr != nil {
			return ReasonUnknown, nil, errors.Join(err, relErr)
		}
		if errors.Is(err, services.ErrWorkerNotFound) {
			return ReasonNoAssemblerFree, nil, nil
		}
		return ReasonUnknown, nil, err
	}

	id := w.ID()
	return ReasonUnknown, &id, nil
}

// finishAssembly: Assembling -> Assembled once the assembler's timer elapsed.
func (s *Store) finishAssembly(_ context.Context, o *order.Order, now time.Time) (Reason, *kernel.UUID, error) {
	w, err := s.boundWorker(o.Assembler(), o)
	if err != nil {
		return ReasonUnknown, nil, err
	}
	if !w.IsWorkDone(now) {
		return ReasonAssemblyInProgress, nil, nil
	}

	if err := s.release(w, o, now); err != nil {
		return ReasonUnknown, nil, err
	}

	id := w.ID()
	return ReasonUnknown, &id, o.FinishAssembly()
}

// startDelivery: Assembled -> Delivering once the estimated completion is
// reached and a courier is free.
func (s *Store) startDelivery(_ context.Context, o *order.Order, now time.Time) (Reason, *kernel.UUID, error) {
	if !o.IsDue(now) {
		return ReasonNotYetReadyForDelivery, nil, nil
	}

	w, err := s.dispatcher.Dispatch(s.id, s.location, worker.Courier, o, s.pool.Couriers(), now)
	if errors.Is(err, services.ErrWorkerNotFound) {
		return ReasonNoCourierFree, nil, nil
	}
	if err != nil {
		return ReasonUnknown, nil, err
	}

	id := w.ID()
	return ReasonUnknown, &id, nil
}

// finishDelivery: Delivering -> Complete once the courier's timer elapsed and
// it still holds this order.
func (s *Store) finishDelivery(_ context.Context, o *order.Order, now time.Time) (Reason, *kernel.UUID, error) {
	w, err := s.boundWorker(o.Courier(), o)
	if err != nil {
		return ReasonUnknown, nil, err
	}
	if !w.IsWorkDone(now) {
		return ReasonInTransit, nil, nil
	}

	if err := s.release(w, o, now); err != nil {
		return ReasonUnknown, nil, err
	}

	id := w.ID()
	return ReasonUnknown, &id, o.Complete()
}

// replenish makes sure the ledger covers every line of o, buying the
// shortfall from the first supplier that has all of it.
func (s *Store) replenish(ctx context.Context, o *order.Order) (bool, error) {
	request, err := s.request(o)
	if err != nil {
		return false, err
	}

	shortfall, err := s.matcher.Shortfall(ctx, s.ledger, request)
	if err != nil {
		return false, err
	}

	_, err = s.matcher.Procure(ctx, s.ledger, s.suppliers, shortfall)
	switch {
	case errors.Is(err, services.ErrNoSupplierFound), errors.Is(err, services.ErrPartialFulfillment):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// request translates the order's items into store keys.
func (s *Store) request(o *order.Order) (inventory.Request, error) {
	items := o.Items()
	request := make(inventory.Request, len(items))
	for name, qty := range items {
		it, known := s.catalog[name]
		if !known {
			return nil, errs.NewObjectNotFoundError("item", name)
		}
		request[it.StoreKey()] = qty
	}
	return request, nil
}

func (s *Store) boundWorker(id *kernel.UUID, o *order.Order) (*worker.Worker, error) {
	if id == nil {
		return nil, fmt.Errorf("%w: order %s in %s has no worker", ErrInvariantViolation, o.ID(), o.Status())
	}
	w, ok := s.pool.Find(*id)
	if !ok {
		return nil, fmt.Errorf("%w: worker %s of order %s is not on the roster", ErrInvariantViolation, id, o.ID())
	}
	if !w.Holds(o.ID()) {
		return nil, fmt.Errorf("%w: worker %s does not hold order %s", ErrInvariantViolation, w.ID(), o.ID())
	}
	return w, nil
}

func (s *Store) release(w *worker.Worker, o *order.Order, now time.Time) error {
	_, err := w.Release(o.ID(), now, s.dispatcher.Timings().PayoutRate)
	if errors.Is(err, worker.ErrOrderIsNotHeld) {
		return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	return err
}

func anyFree(workers []*worker.Worker, storeID kernel.UUID, now time.Time) bool {
	for _, w := range workers {
		if w.Availability(storeID, now) == worker.Free {
			return true
		}
	}
	return false
}
