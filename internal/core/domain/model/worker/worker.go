package worker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrWorkerIsNotConstructed  = errors.New("Worker must be created via NewWorker constructor")
	ErrOrderIsNotHeld          = errors.New("worker does not hold the order")
	ErrWorkIsInProgress        = errors.New("worker has not finished the order")
	ErrShiftDurationIsNegative = errs.NewValueIsInvalidError("shift duration")
)

type Worker struct {
	mu sync.Mutex

	id   kernel.UUID
	name string
	role Role

	// store ID -> shift expiry
	shifts map[kernel.UUID]time.Time

	busyUntil time.Time
	startedAt time.Time
	heldOrder *kernel.UUID

	earnings decimal.Decimal

	guard guard.ConstructorGuard
}

func NewWorker(id kernel.UUID, name string, role Role) (*Worker, error) {
	w := &Worker{
		shifts:   make(map[kernel.UUID]time.Time),
		earnings: decimal.Zero,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setRole(role),
	); err != nil {
		return nil, err
	}

	return w, nil
}

func NewAssembler(id kernel.UUID, name string) (*Worker, error) {
	return NewWorker(id, name, Assembler)
}

func NewCourier(id kernel.UUID, name string) (*Worker, error) {
	return NewWorker(id, name, Courier)
}

func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

func (w *Worker) IsEqual(other *Worker) bool {
	if other == nil {
		return false
	}
	return w.id.IsEqual(other.id)
}

func (w *Worker) ID() kernel.UUID {
	return w.id
}

func (w *Worker) Name() string {
	return w.name
}

func (w *Worker) Role() Role {
	return w.role
}

func (w *Worker) Earnings() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.earnings
}

func (w *Worker) BusyUntil() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busyUntil
}

// HeldOrder returns the ID of the order the worker is bound to, if any.
func (w *Worker) HeldOrder() (kernel.UUID, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.heldOrder == nil {
		return kernel.UUID{}, false
	}
	return *w.heldOrder, true
}

// Holds reports whether the worker is bound to orderID.
func (w *Worker) Holds(orderID kernel.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.heldOrder != nil && w.heldOrder.IsEqual(orderID)
}

// GetShift makes the worker eligible at storeID until now+duration. A new
// shift at the same store replaces the old expiry.
func (w *Worker) GetShift(storeID kernel.UUID, now time.Time, duration time.Duration) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	if duration < 0 {
		return ErrShiftDurationIsNegative
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.shifts[storeID] = now.Add(duration)
	return nil
}

// ShiftExpiry returns the shift end at storeID.
func (w *Worker) ShiftExpiry(storeID kernel.UUID) (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	expiry, ok := w.shifts[storeID]
	return expiry, ok
}

// Availability derives the worker's state at storeID from now. A worker
// without an unexpired shift at the store is NotAvailable even when idle.
// A worker still holding an order is Busy after its timer elapses, until the
// order is released.
func (w *Worker) Availability(storeID kernel.UUID, now time.Time) Availability {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.availability(storeID, now)
}

// IsWorkDone reports whether now is strictly past the busy-until timestamp.
func (w *Worker) IsWorkDone(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.After(w.busyUntil)
}

// TryTake binds orderID for duration if the worker is Free at storeID. It
// returns false, changing nothing, when another caller claimed the worker
// first or the worker is otherwise not Free.
func (w *Worker) TryTake(storeID, orderID kernel.UUID, now time.Time, duration time.Duration) (bool, error) {
	if err := errors.Join(storeID.Validate(), orderID.Validate()); err != nil {
		return false, err
	}
	if duration < 0 {
		return false, errs.NewValueIsOutOfRangeError("duration", duration, time.Duration(0), "unbounded")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.availability(storeID, now) != Free {
		return false, nil
	}

	w.heldOrder = &orderID
	w.startedAt = now
	w.busyUntil = now.Add(duration)
	return true, nil
}

// Release unbinds orderID once the work has finished and credits
// rate × work duration, in seconds, to the worker's earnings. The credited
// amount is returned.
func (w *Worker) Release(orderID kernel.UUID, now time.Time, rate decimal.Decimal) (decimal.Decimal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.heldOrder == nil || !w.heldOrder.IsEqual(orderID) {
		return decimal.Zero, fmt.Errorf("%w: %s is not held by %s", ErrOrderIsNotHeld, orderID, w.id)
	}
	if !now.After(w.busyUntil) {
		return decimal.Zero, ErrWorkIsInProgress
	}

	payout := rate.Mul(Seconds(w.busyUntil.Sub(w.startedAt)))
	w.earnings = w.earnings.Add(payout)
	w.heldOrder = nil
	return payout, nil
}

// Seconds converts d to a decimal number of seconds with millisecond precision.
func Seconds(d time.Duration) decimal.Decimal {
	return decimal.New(d.Milliseconds(), -3)
}

func (w *Worker) availability(storeID kernel.UUID, now time.Time) Availability {
	expiry, ok := w.shifts[storeID]
	if !ok || now.After(expiry) {
		return NotAvailable
	}
	// Free only once now is strictly past busy-until.
	if w.heldOrder != nil || !now.After(w.busyUntil) {
		return Busy
	}
	return Free
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}

func (w *Worker) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	w.role = role
	return nil
}
