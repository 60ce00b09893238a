package commands

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"
)

// Journal records what an advance did: the transitions, the order's new
// state and every worker it touched, in one unit of work. Transitions are
// published only after the commit succeeded.
//
// Transitions of a failed commit stay in memory and are written ahead of the
// order's next transitions, so the journaled history has no gaps.
type Journal struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger

	mu sync.Mutex
	// order id -> transitions not yet committed; a key with no transitions
	// marks an order row still to be written
	pending map[kernel.UUID][]order.Transition
}

func NewJournal(uowFactory ports.UnitOfWorkFactory, publisher ports.EventPublisher, logger *slog.Logger) *Journal {
	return &Journal{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "journal"),
		pending:    make(map[kernel.UUID][]order.Transition),
	}
}

// RecordSubmission writes a freshly submitted order even when its first
// advance did not move it.
func (j *Journal) RecordSubmission(ctx context.Context, s *store.Store, outcome store.Outcome) error {
	return j.record(ctx, s, outcome, true)
}

// Record is a no-op for an outcome without transitions, unless earlier
// writes of the same order are still pending.
func (j *Journal) Record(ctx context.Context, s *store.Store, outcome store.Outcome) error {
	return j.record(ctx, s, outcome, false)
}

// Pending lists the transitions of orderID that failed to commit.
func (j *Journal) Pending(orderID kernel.UUID) []order.Transition {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.pending[orderID])
}

func (j *Journal) record(ctx context.Context, s *store.Store, outcome store.Outcome, always bool) error {
	carried, hasCarried := j.take(outcome.OrderID)
	if !always && !hasCarried && !outcome.Progressed() {
		return nil
	}

	walk := append(carried, outcome.Transitions...)
	if err := j.commit(ctx, s, outcome.OrderID, walk); err != nil {
		j.keep(outcome.OrderID, walk)
		j.logger.ErrorContext(ctx, "failed to journal order, keeping transitions for retry",
			"orderId", outcome.OrderID.String(),
			"transitions", describe(walk),
			"error", err,
		)
		return err
	}

	var publishErrs []error
	for _, t := range walk {
		j.logger.InfoContext(ctx, "order transition",
			"orderId", t.OrderID.String(),
			"storeId", t.StoreID.String(),
			"from", t.From.String(),
			"to", t.To.String(),
		)
		if err := j.publisher.PublishTransition(ctx, t); err != nil {
			publishErrs = append(publishErrs, err)
		}
	}
	if len(publishErrs) > 0 {
		j.logger.WarnContext(ctx, "failed to publish transitions",
			"orderId", outcome.OrderID.String(), "error", errors.Join(publishErrs...))
	}

	return nil
}

func (j *Journal) commit(ctx context.Context, s *store.Store, orderID kernel.UUID, walk []order.Transition) error {
	view, err := s.GetOrder(orderID)
	if err != nil {
		return err
	}

	uow := j.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transitions := uow.TransitionRepository()
	seen := make(map[kernel.UUID]struct{})
	var workerIDs []kernel.UUID
	for _, t := range walk {
		if err = transitions.Add(ctx, t); err != nil {
			return err
		}
		if t.WorkerID == nil {
			continue
		}
		if _, dup := seen[*t.WorkerID]; !dup {
			seen[*t.WorkerID] = struct{}{}
			workerIDs = append(workerIDs, *t.WorkerID)
		}
	}

	if err = uow.OrderRepository().Save(ctx, view); err != nil {
		return err
	}

	workers := uow.WorkerRepository()
	for _, id := range workerIDs {
		w, ok := s.Worker(id)
		if !ok {
			continue
		}
		if err = workers.Save(ctx, w); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (j *Journal) take(orderID kernel.UUID) ([]order.Transition, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	carried, ok := j.pending[orderID]
	delete(j.pending, orderID)
	return carried, ok
}

// keep puts walk back ahead of anything another record parked meanwhile.
func (j *Journal) keep(orderID kernel.UUID, walk []order.Transition) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pending[orderID] = append(slices.Clone(walk), j.pending[orderID]...)
}

func describe(walk []order.Transition) []string {
	out := make([]string, 0, len(walk))
	for _, t := range walk {
		out = append(out, t.From.String()+"->"+t.To.String())
	}
	return out
}

// logOutcome reports why an advance stopped, at a level matching its kind.
func logOutcome(ctx context.Context, logger *slog.Logger, outcome store.Outcome, err error) {
	attrs := []any{
		"orderId", outcome.OrderID.String(),
		"status", outcome.Status.String(),
		"reason", outcome.Reason.String(),
	}

	switch {
	case outcome.Kind() == store.KindInvariantViolation:
		logger.ErrorContext(ctx, "order advance hit an invariant violation", append(attrs, "error", err)...)
	case err != nil:
		logger.ErrorContext(ctx, "order advance failed", append(attrs, "error", err)...)
	case outcome.Kind() == store.KindNotFound:
		logger.WarnContext(ctx, "order not found", attrs...)
	case outcome.Kind() == store.KindCompleted:
		logger.DebugContext(ctx, "order already complete", attrs...)
	default:
		logger.DebugContext(ctx, "order waiting", attrs...)
	}
}
