package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher announces order transitions to other services once they
// are journaled.
type EventPublisher interface {
	PublishTransition(ctx context.Context, transition order.Transition) error
}
