package transitionrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormTransitionRepository struct {
	db *gorm.DB
}

func NewGormTransitionRepository(db *gorm.DB) *GormTransitionRepository {
	return &GormTransitionRepository{db: db}
}

func (r *GormTransitionRepository) Add(ctx context.Context, transition order.Transition) error {
	if err := errors.Join(
		transition.OrderID.Validate(),
		transition.StoreID.Validate(),
		transition.From.Validate(),
		transition.To.Validate(),
	); err != nil {
		return err
	}
	if transition.To <= transition.From {
		return errs.NewValueIsInvalidErrorWithCause("transition",
			fmt.Errorf("%s -> %s does not move forward", transition.From, transition.To))
	}

	dto := fromDomain(transition)
	return r.db.WithContext(ctx).Create(&dto).Error
}
