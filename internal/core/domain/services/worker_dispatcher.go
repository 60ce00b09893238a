package services

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrWorkerNotFound is returned when no candidate of the requested role is
// free at the store.
var ErrWorkerNotFound = errors.New("worker not found")

// Timings are the constants of every work duration and of worker pay.
type Timings struct {
	// AssemblyPerUnit is spent on each requested unit.
	AssemblyPerUnit time.Duration
	// DispatchDelay is spent leaving the store.
	DispatchDelay time.Duration
	// DeliveryPerDistance is spent per unit of Euclidean distance.
	DeliveryPerDistance time.Duration
	// HandoffDelay is spent passing the order to the customer.
	HandoffDelay time.Duration
	// PayoutRate is paid per second of work.
	PayoutRate decimal.Decimal
}

func DefaultTimings() Timings {
	return Timings{
		AssemblyPerUnit:     45 * time.Second,
		DispatchDelay:       60 * time.Second,
		DeliveryPerDistance: 30 * time.Second,
		HandoffDelay:        60 * time.Second,
		PayoutRate:          decimal.NewFromInt(300),
	}
}

func (t Timings) Validate() error {
	var err error
	for name, d := range map[string]time.Duration{
		"assembly time per unit":     t.AssemblyPerUnit,
		"dispatch delay":             t.DispatchDelay,
		"delivery time per distance": t.DeliveryPerDistance,
		"handoff delay":              t.HandoffDelay,
	} {
		if d < 0 {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError(name, d, time.Duration(0), "unbounded"))
		}
	}
	if t.PayoutRate.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("payout rate", fmt.Errorf("%s is negative", t.PayoutRate)))
	}
	return err
}

// WorkerDispatcher assigns orders to workers. Candidates are scanned in the
// order given and the first free one wins; there is no load balancing.
type WorkerDispatcher struct {
	timings Timings
}

func NewWorkerDispatcher(timings Timings) WorkerDispatcher {
	return WorkerDispatcher{timings: timings}
}

func (d WorkerDispatcher) Timings() Timings {
	return d.timings
}

// WorkDuration is how long a worker of role is busy with o.
//
//	Assembler: units × AssemblyPerUnit
//	Courier:   DispatchDelay + distance × DeliveryPerDistance + HandoffDelay
func (d WorkerDispatcher) WorkDuration(role worker.Role, o *order.Order, storeLocation kernel.Location) (time.Duration, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}

	switch role {
	case worker.Assembler:
		return time.Duration(o.TotalUnits()) * d.timings.AssemblyPerUnit, nil
	case worker.Courier:
		distance, err := storeLocation.Distance(o.Destination())
		if err != nil {
			return 0, err
		}
		road := time.Duration(distance * float64(d.timings.DeliveryPerDistance))
		return d.timings.DispatchDelay + road + d.timings.HandoffDelay, nil
	case worker.UnknownRole:
	}
	return 0, role.Validate()
}

// Dispatch claims the first free candidate of role at storeID and binds o to
// it: an assembler starts assembly, a courier starts delivery. A candidate
// that is claimed by someone else between the check and the claim is
// skipped. The order must be in the status the role picks up from.
func (d WorkerDispatcher) Dispatch(
	storeID kernel.UUID,
	storeLocation kernel.Location,
	role worker.Role,
	o *order.Order,
	candidates []*worker.Worker,
	now time.Time,
) (*worker.Worker, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := validatePickup(role, o.Status()); err != nil {
		return nil, err
	}

	duration, err := d.WorkDuration(role, o, storeLocation)
	if err != nil {
		return nil, err
	}

	for _, w := range candidates {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if w.Role() != role || w.Availability(storeID, now) != worker.Free {
			continue
		}

		taken, err := w.TryTake(storeID, o.ID(), now, duration)
		if err != nil {
			return nil, err
		}
		if !taken {
			continue
		}

		if err := bind(role, o, w.ID(), duration); err != nil {
			return nil, err
		}
		return w, nil
	}

	return nil, ErrWorkerNotFound
}

func validatePickup(role worker.Role, status order.Status) error {
	switch role {
	case worker.Assembler:
		_, err := status.StartAssembly()
		return err
	case worker.Courier:
		_, err := status.StartDelivery()
		return err
	case worker.UnknownRole:
	}
	return role.Validate()
}

func bind(role worker.Role, o *order.Order, workerID kernel.UUID, duration time.Duration) error {
	if role == worker.Assembler {
		return o.StartAssembly(workerID, duration)
	}
	return o.StartDelivery(workerID, duration)
}
