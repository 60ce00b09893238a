package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads an order's current state straight from its store,
// so it sees progress that has not been journaled yet.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	storeID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(storeID, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(storeID.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		storeID: storeID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type GetOrderQueryHandler struct {
	stores ports.StoreRepository
}

func NewGetOrderQueryHandler(stores ports.StoreRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{stores: stores}
}

// Handle returns errs.ObjectNotFoundError for an unknown store or order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (store.OrderView, error) {
	if err := query.Validate(); err != nil {
		return store.OrderView{}, err
	}

	s, err := h.stores.Get(ctx, query.storeID)
	if err != nil {
		return store.OrderView{}, err
	}

	return s.GetOrder(query.orderID)
}
