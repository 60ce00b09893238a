package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransitionRepository struct{ mock.Mock }

func (m *MockTransitionRepository) Add(ctx context.Context, t order.Transition) error {
	return m.Called(ctx, t).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Save(ctx context.Context, view store.OrderView) error {
	return m.Called(ctx, view).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (store.OrderView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.OrderView), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Save(ctx context.Context, w *worker.Worker) error {
	return m.Called(ctx, w).Error(0)
}

type MockUoW struct {
	mock.Mock
	transitions *MockTransitionRepository
	orders      *MockOrderRepository
	workers     *MockWorkerRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		transitions: new(MockTransitionRepository),
		orders:      new(MockOrderRepository),
		workers:     new(MockWorkerRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) TransitionRepository() ports.TransitionRepository {
	return m.transitions
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.orders
}

func (m *MockUoW) WorkerRepository() ports.WorkerRepository {
	return m.workers
}

func (m *MockUoW) AssertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.transitions.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.workers.AssertExpectations(t)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	return m.Called().Get(0).(ports.UnitOfWork)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Add(ctx context.Context, s *store.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetAll(ctx context.Context) ([]*store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Store), args.Error(1)
}

type MockWorkerRegistry struct{ mock.Mock }

func (m *MockWorkerRegistry) Add(ctx context.Context, w *worker.Worker) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWorkerRegistry) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRegistry) GetAll(ctx context.Context) ([]*worker.Worker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*worker.Worker), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishTransition(ctx context.Context, t order.Transition) error {
	return m.Called(ctx, t).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// network is one store with a supplier holding 10 pens and pencils.
type network struct {
	clock *kernel.FakeClock
	store *store.Store
}

func newNetwork(t *testing.T) *network {
	t.Helper()
	clock := kernel.NewFakeClock(start)
	s, err := store.NewStore(kernel.NewUUID(), "central", kernel.NewLocation(0, 0),
		inventory.NewInMemoryLedger(), clock, services.DefaultTimings())
	require.NoError(t, err)

	sup, err := supplier.NewSupplier(kernel.NewUUID(), "wholesale", inventory.NewInMemoryLedger())
	require.NoError(t, err)
	for _, name := range []string{"pen", "pencil"} {
		it, err := item.NewItem(kernel.NewUUID(), name, decimal.NewFromInt(10), kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, s.RegisterItem(it))
		require.NoError(t, sup.AddItem(t.Context(), it, 10))
	}
	require.NoError(t, s.RegisterSupplier(sup))

	return &network{clock: clock, store: s}
}

func (n *network) hire(t *testing.T, role worker.Role) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), role.String(), role)
	require.NoError(t, err)
	require.NoError(t, n.store.AddWorker(w, 8*time.Hour))
	return w
}

// expectJournal primes uow for one commit of n transitions touching the
// given number of workers.
func expectJournal(ctx context.Context, factory *MockUoWFactory, uow *MockUoW, transitions, workers int) {
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	if transitions > 0 {
		uow.transitions.On("Add", ctx, mock.AnythingOfType("order.Transition")).Return(nil).Times(transitions)
	}
	uow.orders.On("Save", ctx, mock.AnythingOfType("store.OrderView")).Return(nil).Once()
	if workers > 0 {
		uow.workers.On("Save", ctx, mock.AnythingOfType("*worker.Worker")).Return(nil).Times(workers)
	}
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
}
