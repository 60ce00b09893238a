package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvancePendingOrdersCommandIsNotConstructed = errors.New(
	"AdvancePendingOrdersCommand must be created via NewAdvancePendingOrdersCommand constructor",
)

// AdvancePendingOrdersCommand re-drives every unfinished order of every
// store. It is what the scheduler fires on each tick.
type AdvancePendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewAdvancePendingOrdersCommand() AdvancePendingOrdersCommand {
	return AdvancePendingOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c AdvancePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAdvancePendingOrdersCommandIsNotConstructed)
}

type AdvancePendingOrdersCommandHandler struct {
	stores  ports.StoreRepository
	journal *Journal
	logger  *slog.Logger
}

func NewAdvancePendingOrdersCommandHandler(
	stores ports.StoreRepository,
	journal *Journal,
	logger *slog.Logger,
) AdvancePendingOrdersCommandHandler {
	return AdvancePendingOrdersCommandHandler{
		stores:  stores,
		journal: journal,
		logger:  logger.With("component", "advance_pending_orders_handler"),
	}
}

// Handle returns how many orders moved. A failing order does not stop the
// sweep; every failure is joined into the returned error.
func (h AdvancePendingOrdersCommandHandler) Handle(ctx context.Context, command AdvancePendingOrdersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	stores, err := h.stores.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	var (
		progressed int
		failures   []error
	)
	for _, s := range stores {
		for _, orderID := range s.PendingOrderIDs() {
			if err = ctx.Err(); err != nil {
				return progressed, errors.Join(append(failures, err)...)
			}

			outcome, advErr := advance(ctx, s, orderID, h.journal, h.logger)
			if outcome.Progressed() {
				progressed++
			}
			if advErr != nil {
				failures = append(failures, advErr)
			}
		}
	}

	return progressed, errors.Join(failures...)
}

func advance(
	ctx context.Context,
	s *store.Store,
	orderID kernel.UUID,
	journal *Journal,
	logger *slog.Logger,
) (store.Outcome, error) {
	outcome, err := s.AdvanceOrder(ctx, orderID)
	logOutcome(ctx, logger, outcome, err)

	if journalErr := journal.Record(ctx, s, outcome); journalErr != nil {
		return outcome, errors.Join(err, journalErr)
	}

	return outcome, err
}
