package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"
)

// SubmitOrderCommandHandler creates the order in its store, runs its first
// advance and journals whatever progress that advance made.
type SubmitOrderCommandHandler struct {
	stores  ports.StoreRepository
	journal *Journal
	logger  *slog.Logger
}

func NewSubmitOrderCommandHandler(
	stores ports.StoreRepository,
	journal *Journal,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		stores:  stores,
		journal: journal,
		logger:  logger.With("component", "submit_order_handler"),
	}
}

// Handle returns the new order's ID together with the outcome of its first
// advance. A zero ID with an error means no order was created; a non-zero ID
// with an error means the order exists and will be retried by the sweep.
func (h SubmitOrderCommandHandler) Handle(
	ctx context.Context, command SubmitOrderCommand,
) (kernel.UUID, store.Outcome, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, store.Outcome{}, err
	}

	s, err := h.stores.Get(ctx, command.StoreID())
	if err != nil {
		return kernel.UUID{}, store.Outcome{}, err
	}

	x, y := command.Destination()
	orderID, outcome, err := s.SubmitOrder(ctx, command.CustomerID(), x, y, command.Items())
	if orderID == (kernel.UUID{}) {
		return kernel.UUID{}, store.Outcome{}, err
	}
	h.logger.InfoContext(ctx, "order submitted", "orderId", orderID.String(), "storeId", s.ID().String())
	logOutcome(ctx, h.logger, outcome, err)

	if journalErr := h.journal.RecordSubmission(ctx, s, outcome); journalErr != nil {
		return orderID, outcome, journalErr
	}

	return orderID, outcome, err
}
