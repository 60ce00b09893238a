package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists the journaled transitions of one order, oldest
// first.
//
// Example:
//
//	query, _ := NewGetOrderHistoryQuery(orderID)
//	history, err := NewGetOrderHistoryQueryHandler(db).Handle(ctx, query)
//	for _, step := range history {
//	    fmt.Printf("%s: %s -> %s\n", step.At, step.From, step.To)
//	}
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

type GetOrderHistoryQueryResponse struct {
	StoreID  kernel.UUID
	From     order.Status
	To       order.Status
	WorkerID *kernel.UUID
	At       time.Time
}

type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns an empty slice for an order with no journaled transitions.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			store_id,
			from_status,
			to_status,
			worker_id,
			at
		FROM order_transitions
		WHERE order_id = ?
		ORDER BY id
	`, query.orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			step     GetOrderHistoryQueryResponse
			storeID  uuid.UUID
			workerID uuid.NullUUID
			from, to int
		)

		if err = rows.Scan(&storeID, &from, &to, &workerID, &step.At); err != nil {
			return nil, err
		}

		if step.StoreID, err = kernel.UUIDFromBytes(storeID[:]); err != nil {
			return nil, err
		}
		if workerID.Valid {
			id, idErr := kernel.UUIDFromBytes(workerID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			step.WorkerID = &id
		}
		step.From = order.Status(from)
		step.To = order.Status(to)

		history = append(history, step)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
