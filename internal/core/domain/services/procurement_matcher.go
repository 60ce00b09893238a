package services

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/supplier"
)

var (
	// ErrNoSupplierFound is returned when no registered supplier can cover the
	// whole shortfall on its own.
	ErrNoSupplierFound = errors.New("no supplier can cover the shortfall")
	// ErrPartialFulfillment is returned when a supplier sent less than asked.
	// Whatever was sent has been credited to the store.
	ErrPartialFulfillment = errors.New("supplier sent less than requested")
)

// ProcurementMatcher fills a store's shortfall from a single supplier.
// Shortfalls are never split across suppliers, even when their combined
// stock would suffice.
type ProcurementMatcher struct{}

func NewProcurementMatcher() ProcurementMatcher {
	return ProcurementMatcher{}
}

// Shortfall returns max(0, wanted - stock) for every line of wanted, keyed by
// store key. Lines already covered are left out.
func (ProcurementMatcher) Shortfall(
	ctx context.Context,
	ledger inventory.Ledger,
	wanted inventory.Request,
) (inventory.Request, error) {
	shortfall := make(inventory.Request)
	for key, amount := range wanted {
		if amount <= 0 {
			continue
		}
		stock, err := ledger.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if deficit := amount - stock; deficit > 0 {
			shortfall[key] = deficit
		}
	}
	return shortfall, nil
}

// Procure asks suppliers in order and takes the first one that can fill the
// entire shortfall. The amounts it sends are credited to ledger. An empty
// shortfall succeeds without contacting anyone and returns a nil supplier.
func (ProcurementMatcher) Procure(
	ctx context.Context,
	ledger inventory.Ledger,
	suppliers []*supplier.Supplier,
	shortfall inventory.Request,
) (*supplier.Supplier, error) {
	if len(shortfall) == 0 {
		return nil, nil
	}

	for _, s := range suppliers {
		if err := s.Validate(); err != nil {
			return nil, err
		}

		sent, ok, err := s.TryFulfill(ctx, shortfall)
		if err != nil {
			return nil, fmt.Errorf("supplier %s: %w", s.ID(), err)
		}
		if !ok {
			continue
		}

		var partial error
		for key, requested := range shortfall {
			if err := ledger.Add(ctx, key, sent[key]); err != nil {
				return s, err
			}
			if sent[key] < requested {
				partial = fmt.Errorf("%w: supplier %s sent %d of %d", ErrPartialFulfillment, s.ID(), sent[key], requested)
			}
		}
		return s, partial
	}

	return nil, ErrNoSupplierFound
}
