package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
	ErrLedgerIsRequired      = errs.NewValueIsRequiredError("ledger")
	ErrClockIsRequired       = errs.NewValueIsRequiredError("clock")
)

// Store owns its orders; an order never moves to another store. Advances
// and configuration of one store are serialized by mu. Workers and suppliers
// may be shared with other stores and carry their own locks.
type Store struct {
	mu sync.Mutex

	id       kernel.UUID
	name     string
	location kernel.Location

	ledger    inventory.Ledger
	suppliers []*supplier.Supplier
	// item name -> item
	catalog map[string]item.Item
	pool    *worker.Pool

	orders map[kernel.UUID]*order.Order
	// submission order
	orderIDs []kernel.UUID

	clock      kernel.Clock
	matcher    services.ProcurementMatcher
	dispatcher services.WorkerDispatcher

	guard guard.ConstructorGuard
}

func NewStore(
	id kernel.UUID,
	name string,
	location kernel.Location,
	ledger inventory.Ledger,
	clock kernel.Clock,
	timings services.Timings,
) (*Store, error) {
	s := &Store{
		catalog:    make(map[string]item.Item),
		pool:       worker.NewPool(),
		orders:     make(map[kernel.UUID]*order.Order),
		matcher:    services.NewProcurementMatcher(),
		dispatcher: services.NewWorkerDispatcher(timings),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setLocation(location),
		s.setLedger(ledger),
		s.setClock(clock),
		timings.Validate(),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}
	return s.guard.Validate(ErrStoreIsNotConstructed)
}

func (s *Store) ID() kernel.UUID {
	return s.id
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) Location() kernel.Location {
	return s.location
}

// RegisterSupplier appends sup to the suppliers procurement asks, in
// registration order. Registering the same supplier again is a no-op.
func (s *Store) RegisterSupplier(sup *supplier.Supplier) error {
	if err := sup.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, known := range s.suppliers {
		if known.ID().IsEqual(sup.ID()) {
			return nil
		}
	}
	s.suppliers = append(s.suppliers, sup)
	return nil
}

// RegisterItem adds it to the catalog under its name. The first
// registration of a name wins; later ones are ignored.
func (s *Store) RegisterItem(it item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, known := s.catalog[it.Name()]; !known {
		s.catalog[it.Name()] = it
	}
	return nil
}

// AddWorker gives w a shift of duration at this store, starting now, and
// registers it in its role's sub-pool.
func (s *Store) AddWorker(w *worker.Worker, duration time.Duration) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := w.GetShift(s.id, s.clock.Now(), duration); err != nil {
		return err
	}

	_, err := s.pool.Add(w)
	return err
}

// Workers lists the roster of role in registration order.
func (s *Store) Workers(role worker.Role) []*worker.Worker {
	return s.pool.Members(role)
}

// Worker finds a roster member by ID.
func (s *Store) Worker(id kernel.UUID) (*worker.Worker, bool) {
	return s.pool.Find(id)
}

// Stock lists the store's quantities by item name for every catalog item.
func (s *Store) Stock(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock := make(map[string]int, len(s.catalog))
	for name, it := range s.catalog {
		qty, err := s.ledger.Get(ctx, it.StoreKey())
		if err != nil {
			return nil, err
		}
		stock[name] = qty
	}
	return stock, nil
}

// Restock credits amount units of the named item to the store ledger.
func (s *Store) Restock(ctx context.Context, itemName string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, known := s.catalog[itemName]
	if !known {
		return errs.NewObjectNotFoundError("item", itemName)
	}
	return s.ledger.Add(ctx, it.StoreKey(), amount)
}

// PendingOrderIDs lists orders that are not Complete, oldest first.
func (s *Store) PendingOrderIDs() []kernel.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]kernel.UUID, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		if !s.orders[id].Status().IsTerminal() {
			pending = append(pending, id)
		}
	}
	return pending
}

// OrderIDs lists every order of the store, oldest first.
func (s *Store) OrderIDs() []kernel.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.orderIDs)
}

// GetOrder returns a copy of the order's current state.
func (s *Store) GetOrder(orderID kernel.UUID) (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return OrderView{}, errs.NewObjectNotFoundError("orderId", orderID)
	}
	return newOrderView(s.id, o), nil
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Store) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}

func (s *Store) setLedger(ledger inventory.Ledger) error {
	if ledger == nil {
		return ErrLedgerIsRequired
	}
	s.ledger = ledger
	return nil
}

func (s *Store) setClock(clock kernel.Clock) error {
	if clock == nil {
		return ErrClockIsRequired
	}
	s.clock = clock
	return nil
}
