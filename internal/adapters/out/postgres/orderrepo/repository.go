package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Save(ctx context.Context, view store.OrderView) error {
	if err := view.ID.Validate(); err != nil {
		return err
	}
	if err := view.Status.Validate(); err != nil {
		return err
	}

	dto := fromDomain(view)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (store.OrderView, error) {
	if err := id.Validate(); err != nil {
		return store.OrderView{}, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.OrderView{}, errs.NewObjectNotFoundError("order", id.String())
		}
		return store.OrderView{}, err
	}

	return toDomain(dto)
}
