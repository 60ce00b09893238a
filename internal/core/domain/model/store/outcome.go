package store

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrInvariantViolation marks a coordination bug, such as a courier asked to
// release an order it does not hold. The workflow stays usable afterwards.
var ErrInvariantViolation = errors.New("invariant violation")

// Reason names why an advance stopped where it did.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonCompleted
	ReasonNotFound
	ReasonInsufficientStock
	ReasonNoAssemblerFree
	ReasonAssemblyInProgress
	ReasonNotYetReadyForDelivery
	ReasonNoCourierFree
	ReasonInTransit
	ReasonInvariantViolation
)

func getReasonStrings() map[Reason]string {
	return map[Reason]string{
		ReasonUnknown:                "unknown",
		ReasonCompleted:              "completed",
		ReasonNotFound:               "order not found",
		ReasonInsufficientStock:      "insufficient stock, retry later",
		ReasonNoAssemblerFree:        "no assembler free",
		ReasonAssemblyInProgress:     "assembly in progress",
		ReasonNotYetReadyForDelivery: "not yet ready for delivery",
		ReasonNoCourierFree:          "no courier free",
		ReasonInTransit:              "in transit",
		ReasonInvariantViolation:     "invariant violation",
	}
}

func (r Reason) String() string {
	if str, ok := getReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Kind groups reasons by how a caller should react to them.
type Kind int

const (
	KindUnknown Kind = iota
	// KindCompleted: the order is done; further advances are no-ops.
	KindCompleted
	// KindNotFound: the order is unknown to this store; never retry.
	KindNotFound
	// KindResourceUnavailable: stock or a worker is missing; retry later, the
	// wait is open-ended.
	KindResourceUnavailable
	// KindNotYetDue: a timer has not elapsed; retry later, the wait is bounded.
	KindNotYetDue
	// KindInvariantViolation: a bug upstream; log loudly.
	KindInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case KindCompleted:
		return "Completed"
	case KindNotFound:
		return "NotFound"
	case KindResourceUnavailable:
		return "ResourceUnavailable"
	case KindNotYetDue:
		return "NotYetDue"
	case KindInvariantViolation:
		return "InvariantViolation"
	case KindUnknown:
	}
	return "Unknown"
}

func (r Reason) Kind() Kind {
	switch r {
	case ReasonCompleted:
		return KindCompleted
	case ReasonNotFound:
		return KindNotFound
	case ReasonInsufficientStock, ReasonNoAssemblerFree, ReasonNoCourierFree:
		return KindResourceUnavailable
	case ReasonAssemblyInProgress, ReasonNotYetReadyForDelivery, ReasonInTransit:
		return KindNotYetDue
	case ReasonInvariantViolation:
		return KindInvariantViolation
	case ReasonUnknown:
	}
	return KindUnknown
}

// Outcome is the result of one AdvanceOrder call: the status the order was
// left in, why the walk stopped there, and every transition taken on the way.
type Outcome struct {
	OrderID     kernel.UUID
	Status      order.Status
	Reason      Reason
	Transitions []order.Transition
}

// Progressed reports whether at least one transition was taken.
func (o Outcome) Progressed() bool {
	return len(o.Transitions) > 0
}

func (o Outcome) Kind() Kind {
	return o.Reason.Kind()
}
