package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetAllWorkersQueryIsNotConstructed = errors.New(
	"GetAllWorkersQuery must be created via NewGetAllWorkersQuery constructor",
)

// GetAllWorkersQuery lists every persisted worker with its earnings, sorted
// by name.
type GetAllWorkersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllWorkersQuery() GetAllWorkersQuery {
	return GetAllWorkersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllWorkersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllWorkersQueryIsNotConstructed)
}

type GetAllWorkersQueryResponse struct {
	ID       kernel.UUID
	Name     string
	Role     worker.Role
	Earnings decimal.Decimal
	Busy     bool
}

type GetAllWorkersQueryHandler struct {
	db *gorm.DB
}

func NewGetAllWorkersQueryHandler(db *gorm.DB) GetAllWorkersQueryHandler {
	return GetAllWorkersQueryHandler{db: db}
}

// Handle reports Busy for workers whose persisted row still holds an order.
func (h GetAllWorkersQueryHandler) Handle(
	ctx context.Context,
	query GetAllWorkersQuery,
) ([]GetAllWorkersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	workers := make([]GetAllWorkersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			role,
			earnings,
			held_order IS NOT NULL
		FROM workers
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			w    GetAllWorkersQueryResponse
			id   uuid.UUID
			role int
		)

		if err = rows.Scan(&id, &w.Name, &role, &w.Earnings, &w.Busy); err != nil {
			return nil, err
		}

		if w.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		w.Role = worker.Role(role)

		workers = append(workers, w)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}
