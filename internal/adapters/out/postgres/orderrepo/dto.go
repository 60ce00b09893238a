// Package orderrepo persists the latest known state of every order.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"

	"github.com/google/uuid"
)

// OrderDTO is one row per order, replaced on every journaled transition.
type OrderDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	StoreID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	CustomerID          uuid.UUID      `gorm:"type:uuid;not null"`
	AssemblerID         *uuid.UUID     `gorm:"type:uuid;index"`
	CourierID           *uuid.UUID     `gorm:"type:uuid;index"`
	Destination         LocationDTO    `gorm:"embedded;embeddedPrefix:destination_"`
	Items               map[string]int `gorm:"type:jsonb;serializer:json;not null"`
	Status              int            `gorm:"type:smallint;not null;index"`
	CreatedAt           time.Time      `gorm:"not null"`
	EstimatedCompletion time.Time      `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type LocationDTO struct {
	X kernel.Coordinate `gorm:"type:bigint"`
	Y kernel.Coordinate `gorm:"type:bigint"`
}

func fromDomain(view store.OrderView) OrderDTO {
	return OrderDTO{
		ID:          view.ID.Bytes(),
		StoreID:     view.StoreID.Bytes(),
		CustomerID:  view.CustomerID.Bytes(),
		AssemblerID: optionalID(view.AssemblerID),
		CourierID:   optionalID(view.CourierID),
		Destination: LocationDTO{
			X: view.Destination.X(),
			Y: view.Destination.Y(),
		},
		Items:               view.Items,
		Status:              int(view.Status),
		CreatedAt:           view.CreatedAt.UTC(),
		EstimatedCompletion: view.EstimatedCompletion.UTC(),
	}
}

func toDomain(dto OrderDTO) (store.OrderView, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return store.OrderView{}, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return store.OrderView{}, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return store.OrderView{}, err
	}
	assemblerID, err := restoreID(dto.AssemblerID)
	if err != nil {
		return store.OrderView{}, err
	}
	courierID, err := restoreID(dto.CourierID)
	if err != nil {
		return store.OrderView{}, err
	}

	status := order.Status(dto.Status)
	if err = status.Validate(); err != nil {
		return store.OrderView{}, err
	}

	return store.OrderView{
		ID:                  id,
		StoreID:             storeID,
		CustomerID:          customerID,
		Destination:         kernel.NewLocation(dto.Destination.X, dto.Destination.Y),
		Status:              status,
		Items:               dto.Items,
		AssemblerID:         assemblerID,
		CourierID:           courierID,
		CreatedAt:           dto.CreatedAt,
		EstimatedCompletion: dto.EstimatedCompletion,
	}, nil
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
