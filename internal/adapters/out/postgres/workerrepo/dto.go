// Package workerrepo persists the latest known state of every worker.
package workerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WorkerDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Role      int             `gorm:"type:smallint;not null"`
	Earnings  decimal.Decimal `gorm:"type:numeric(20,3);not null"`
	BusyUntil time.Time
	HeldOrder *uuid.UUID `gorm:"type:uuid"`
}

func (WorkerDTO) TableName() string {
	return "workers"
}

func fromDomain(w *worker.Worker) WorkerDTO {
	var held *uuid.UUID
	if id, ok := w.HeldOrder(); ok {
		raw := id.Bytes()
		held = &raw
	}

	return WorkerDTO{
		ID:        w.ID().Bytes(),
		Name:      w.Name(),
		Role:      int(w.Role()),
		Earnings:  w.Earnings(),
		BusyUntil: w.BusyUntil().UTC(),
		HeldOrder: held,
	}
}
