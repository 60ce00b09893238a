package workerrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/worker"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormWorkerRepository struct {
	db *gorm.DB
}

func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

// Save inserts or replaces the worker's row.
func (r *GormWorkerRepository) Save(ctx context.Context, w *worker.Worker) error {
	if err := w.Validate(); err != nil {
		return err
	}

	dto := fromDomain(w)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
