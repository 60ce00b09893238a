// Package transitionrepo appends order transitions to the journal table.
package transitionrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type TransitionDTO struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	StoreID    uuid.UUID  `gorm:"type:uuid;not null"`
	FromStatus int        `gorm:"type:smallint;not null"`
	ToStatus   int        `gorm:"type:smallint;not null"`
	WorkerID   *uuid.UUID `gorm:"type:uuid"`
	At         time.Time  `gorm:"not null;index"`
}

func (TransitionDTO) TableName() string {
	return "order_transitions"
}

func fromDomain(t order.Transition) TransitionDTO {
	var workerID *uuid.UUID
	if t.WorkerID != nil {
		raw := t.WorkerID.Bytes()
		workerID = &raw
	}

	return TransitionDTO{
		OrderID:    t.OrderID.Bytes(),
		StoreID:    t.StoreID.Bytes(),
		FromStatus: int(t.From),
		ToStatus:   int(t.To),
		WorkerID:   workerID,
		At:         t.At.UTC(),
	}
}
