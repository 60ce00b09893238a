// Package supplier models an external stock source that fills store requests
// from its own ledger.
package supplier

import (
	"context"
	"errors"
	"sync"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSupplierIsNotConstructed = errors.New("Supplier must be created via NewSupplier constructor")
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrLedgerIsRequired         = errs.NewValueIsRequiredError("ledger")
)

// Supplier answers procurement requests addressed in store keys. Requests
// are translated to supplier keys before touching the supplier ledger.
//
// A supplier may serve several stores, so every operation holds mu; the
// check performed by TryFulfill and the sends that follow it cannot
// interleave with another store's request.
type Supplier struct {
	mu sync.Mutex

	id     kernel.UUID
	name   string
	ledger inventory.Ledger

	// store key -> supplier key
	keys map[kernel.UUID]kernel.UUID
	// supplier key -> item
	catalog map[kernel.UUID]item.Item

	guard guard.ConstructorGuard
}

func NewSupplier(id kernel.UUID, name string, ledger inventory.Ledger) (*Supplier, error) {
	s := &Supplier{
		keys:    make(map[kernel.UUID]kernel.UUID),
		catalog: make(map[kernel.UUID]item.Item),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setLedger(ledger),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Supplier) Validate() error {
	if s == nil {
		return ErrSupplierIsNotConstructed
	}
	return s.guard.Validate(ErrSupplierIsNotConstructed)
}

func (s *Supplier) ID() kernel.UUID {
	return s.id
}

func (s *Supplier) Name() string {
	return s.name
}

// AddItem stocks amount units of it. The first call for an item registers
// its key translation; later calls restock.
func (s *Supplier) AddItem(ctx context.Context, it item.Item, amount int) error {
	if err := it.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.Add(ctx, it.SupplierKey(), amount); err != nil {
		return err
	}
	if _, known := s.catalog[it.SupplierKey()]; !known {
		s.keys[it.StoreKey()] = it.SupplierKey()
		s.catalog[it.SupplierKey()] = it
	}
	return nil
}

// CanFulfill reports whether every line of request is available in full.
// A line for an item the supplier does not carry makes the whole request
// unfulfillable.
func (s *Supplier) CanFulfill(ctx context.Context, request inventory.Request) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canFulfill(ctx, request)
}

// Fulfill sends min(requested, available) of each line and returns the
// amounts sent, keyed by store key.
func (s *Supplier) Fulfill(ctx context.Context, request inventory.Request) (inventory.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fulfill(ctx, request)
}

// TryFulfill runs CanFulfill and Fulfill as one step. ok is false, with
// nothing sent, when the request cannot be filled in full.
func (s *Supplier) TryFulfill(ctx context.Context, request inventory.Request) (inventory.Request, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.canFulfill(ctx, request)
	if err != nil || !ok {
		return nil, false, err
	}

	sent, err := s.fulfill(ctx, request)
	if err != nil {
		return nil, false, err
	}
	return sent, true, nil
}

// Stock lists quantities by item name.
func (s *Supplier) Stock(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	stock := make(map[string]int, len(s.catalog))
	for key, it := range s.catalog {
		stock[it.Name()] = snapshot[key]
	}
	return stock, nil
}

func (s *Supplier) canFulfill(ctx context.Context, request inventory.Request) (bool, error) {
	for storeKey, amount := range request {
		supplierKey, known := s.keys[storeKey]
		if !known {
			return false, nil
		}

		available, err := s.ledger.Get(ctx, supplierKey)
		if err != nil {
			return false, err
		}
		if amount > available {
			return false, nil
		}
	}
	return true, nil
}

func (s *Supplier) fulfill(ctx context.Context, request inventory.Request) (inventory.Request, error) {
	sent := make(inventory.Request, len(request))
	for storeKey, amount := range request {
		supplierKey, known := s.keys[storeKey]
		if !known || amount <= 0 {
			sent[storeKey] = 0
			continue
		}

		available, err := s.ledger.Get(ctx, supplierKey)
		if err != nil {
			return nil, err
		}

		send := min(amount, available)
		ok, err := s.ledger.TryReserve(ctx, supplierKey, send)
		if err != nil {
			return nil, err
		}
		if !ok {
			send = 0
		}
		sent[storeKey] = send
	}
	return sent, nil
}

func (s *Supplier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Supplier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Supplier) setLedger(ledger inventory.Ledger) error {
	if ledger == nil {
		return ErrLedgerIsRequired
	}
	s.ledger = ledger
	return nil
}
