package inventory

import (
	"context"
	"maps"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Request maps an item key to a quantity. Keys belong to whichever location
// the request is addressed to (store keys or supplier keys).
type Request map[kernel.UUID]int

// Clone returns an independent copy of the request.
func (r Request) Clone() Request {
	return maps.Clone(r)
}

// Ledger is a map from item key to non-negative quantity.
type Ledger interface {
	// Get returns the quantity on hand; an unknown key reads as 0.
	Get(ctx context.Context, key kernel.UUID) (int, error)
	// Add credits delta units to key. delta must not be negative.
	Add(ctx context.Context, key kernel.UUID, delta int) error
	// TryReserve atomically removes amount units iff at least amount are on hand.
	TryReserve(ctx context.Context, key kernel.UUID, amount int) (bool, error)
	// Snapshot returns a copy of every key with its quantity.
	Snapshot(ctx context.Context) (map[kernel.UUID]int, error)
}

var _ Ledger = (*InMemoryLedger)(nil)

// InMemoryLedger is a Ledger guarded by a mutex.
type InMemoryLedger struct {
	mu         sync.Mutex
	quantities map[kernel.UUID]int
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{quantities: make(map[kernel.UUID]int)}
}

func (l *InMemoryLedger) Get(_ context.Context, key kernel.UUID) (int, error) {
	if err := key.Validate(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quantities[key], nil
}

func (l *InMemoryLedger) Add(_ context.Context, key kernel.UUID, delta int) error {
	if err := ValidateDelta(key, delta); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.quantities[key] += delta
	return nil
}

func (l *InMemoryLedger) TryReserve(_ context.Context, key kernel.UUID, amount int) (bool, error) {
	if err := ValidateDelta(key, amount); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.quantities[key] < amount {
		return false, nil
	}
	l.quantities[key] -= amount
	return true, nil
}

func (l *InMemoryLedger) Snapshot(_ context.Context) (map[kernel.UUID]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.quantities), nil
}

// ValidateDelta checks a key and a quantity change before it reaches a ledger.
func ValidateDelta(key kernel.UUID, delta int) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if delta < 0 {
		return errs.NewValueIsOutOfRangeError("delta", delta, 0, "unbounded")
	}
	return nil
}

// ReserveAll reserves every line of request or none of them. Lines already
// taken are credited back when a later line cannot be reserved; ok reports
// whether the whole request was reserved.
func ReserveAll(ctx context.Context, ledger Ledger, request Request) (bool, error) {
	reserved := make(Request, len(request))
	for key, amount := range request {
		ok, err := ledger.TryReserve(ctx, key, amount)
		if err != nil || !ok {
			if rbErr := creditBack(ctx, ledger, reserved); rbErr != nil && err == nil {
				err = rbErr
			}
			return false, err
		}
		reserved[key] = amount
	}
	return true, nil
}

// Release credits a previously reserved request back to the ledger.
func Release(ctx context.Context, ledger Ledger, request Request) error {
	return creditBack(ctx, ledger, request)
}

func creditBack(ctx context.Context, ledger Ledger, reserved Request) error {
	for key, amount := range reserved {
		if err := ledger.Add(ctx, key, amount); err != nil {
			return err
		}
	}
	return nil
}
