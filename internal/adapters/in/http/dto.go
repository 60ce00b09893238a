package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Location struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

type NewOrder struct {
	CustomerID string         `json:"customerId"`
	X          int64          `json:"x"`
	Y          int64          `json:"y"`
	Items      map[string]int `json:"items"`
}

type NewWorker struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type NewShift struct {
	WorkerID string `json:"workerId"`
	// Duration in time.ParseDuration syntax, e.g. "8h".
	Duration string `json:"duration"`
}

type Outcome struct {
	OrderID    string `json:"orderId"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`
	Kind       string `json:"kind"`
	Progressed bool   `json:"progressed"`
	Error      string `json:"error,omitempty"`
}

type Order struct {
	ID                  string         `json:"id"`
	StoreID             string         `json:"storeId"`
	CustomerID          string         `json:"customerId,omitempty"`
	Destination         Location       `json:"destination"`
	Status              string         `json:"status"`
	Items               map[string]int `json:"items,omitempty"`
	AssemblerID         *string        `json:"assemblerId,omitempty"`
	CourierID           *string        `json:"courierId,omitempty"`
	CreatedAt           *time.Time     `json:"createdAt,omitempty"`
	EstimatedCompletion time.Time      `json:"estimatedCompletion"`
}

type Transition struct {
	StoreID  string    `json:"storeId"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	WorkerID *string   `json:"workerId,omitempty"`
	At       time.Time `json:"at"`
}

type Worker struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Earnings string `json:"earnings"`
	Busy     bool   `json:"busy"`
}

func toOutcome(o store.Outcome) Outcome {
	return Outcome{
		OrderID:    o.OrderID.String(),
		Status:     o.Status.String(),
		Reason:     o.Reason.String(),
		Kind:       o.Kind().String(),
		Progressed: o.Progressed(),
	}
}

func toOrder(view store.OrderView) Order {
	createdAt := view.CreatedAt
	return Order{
		ID:                  view.ID.String(),
		StoreID:             view.StoreID.String(),
		CustomerID:          view.CustomerID.String(),
		Destination:         toLocation(view.Destination),
		Status:              view.Status.String(),
		Items:               view.Items,
		AssemblerID:         optionalID(view.AssemblerID),
		CourierID:           optionalID(view.CourierID),
		CreatedAt:           &createdAt,
		EstimatedCompletion: view.EstimatedCompletion,
	}
}

func toUncompletedOrder(o queries.GetUncompletedOrdersQueryResponse) Order {
	return Order{
		ID:                  o.ID.String(),
		StoreID:             o.StoreID.String(),
		Destination:         toLocation(o.Destination),
		Status:              o.Status.String(),
		EstimatedCompletion: o.EstimatedCompletion,
	}
}

func toTransition(step queries.GetOrderHistoryQueryResponse) Transition {
	return Transition{
		StoreID:  step.StoreID.String(),
		From:     step.From.String(),
		To:       step.To.String(),
		WorkerID: optionalID(step.WorkerID),
		At:       step.At,
	}
}

func toWorker(w queries.GetAllWorkersQueryResponse) Worker {
	return Worker{
		ID:       w.ID.String(),
		Name:     w.Name,
		Role:     w.Role.String(),
		Earnings: w.Earnings.StringFixed(2),
		Busy:     w.Busy,
	}
}

func toLocation(l kernel.Location) Location {
	return Location{X: int64(l.X()), Y: int64(l.Y())}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
