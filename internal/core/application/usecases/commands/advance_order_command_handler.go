package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"
)

type AdvanceOrderCommandHandler struct {
	stores  ports.StoreRepository
	journal *Journal
	logger  *slog.Logger
}

func NewAdvanceOrderCommandHandler(
	stores ports.StoreRepository,
	journal *Journal,
	logger *slog.Logger,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		stores:  stores,
		journal: journal,
		logger:  logger.With("component", "advance_order_handler"),
	}
}

// Handle advances the order and journals any transitions. Waits come back
// in the outcome with a nil error; an invariant violation comes back as both
// the outcome's reason and a wrapped store.ErrInvariantViolation.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, command AdvanceOrderCommand) (store.Outcome, error) {
	if err := command.Validate(); err != nil {
		return store.Outcome{}, err
	}

	s, err := h.stores.Get(ctx, command.StoreID())
	if err != nil {
		return store.Outcome{}, err
	}

	return advance(ctx, s, command.OrderID(), h.journal, h.logger)
}
