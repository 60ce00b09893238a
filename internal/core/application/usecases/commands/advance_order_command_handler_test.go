package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceOrderCommand(t *testing.T) {
	t.Run("should require both ids", func(t *testing.T) {
		_, err := commands.NewAdvanceOrderCommand(kernel.UUID{}, kernel.UUID{})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject a zero value command", func(t *testing.T) {
		require.ErrorIs(t, commands.AdvanceOrderCommand{}.Validate(), commands.ErrAdvanceOrderCommandIsNotConstructed)
	})
}

func TestAdvanceOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should not journal a wait", func(t *testing.T) {
		ctx := t.Context()
		n := newNetwork(t)
		n.hire(t, worker.Assembler)
		orderID, _, err := n.store.SubmitOrder(ctx, kernel.NewUUID(), 0, 0, map[string]int{"pen": 1})
		require.NoError(t, err)

		stores := new(MockStoreRepository)
		stores.On("Get", ctx, n.store.ID()).Return(n.store, nil).Once()
		factory := new(MockUoWFactory)
		cmd, err := commands.NewAdvanceOrderCommand(n.store.ID(), orderID)
		require.NoError(t, err)

		handler := commands.NewAdvanceOrderCommandHandler(stores, commands.NewJournal(factory, new(MockEventPublisher), discardLogger()), discardLogger())
		outcome, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, store.ReasonAssemblyInProgress, outcome.Reason)
		assert.False(t, outcome.Progressed())
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("should journal the cascade once timers elapse", func(t *testing.T) {
		ctx := t.Context()
		n := newNetwork(t)
		n.hire(t, worker.Assembler)
		n.hire(t, worker.Courier)
		orderID, _, err := n.store.SubmitOrder(ctx, kernel.NewUUID(), 0, 0, map[string]int{"pen": 1})
		require.NoError(t, err)
		n.clock.Advance(time.Minute)

		stores := new(MockStoreRepository)
		stores.On("Get", ctx, n.store.ID()).Return(n.store, nil).Once()
		factory := new(MockUoWFactory)
		uow := newMockUoW()
		expectJournal(ctx, factory, uow, 2, 2)
		publisher := new(MockEventPublisher)
		publisher.On("PublishTransition", ctx, mock.Anything).Return(nil).Twice()
		cmd, err := commands.NewAdvanceOrderCommand(n.store.ID(), orderID)
		require.NoError(t, err)

		handler := commands.NewAdvanceOrderCommandHandler(stores, commands.NewJournal(factory, publisher, discardLogger()), discardLogger())
		outcome, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Delivering, outcome.Status)
		assert.Equal(t, store.ReasonInTransit, outcome.Reason)
		uow.AssertAll(t)
		publisher.AssertExpectations(t)
	})

	t.Run("should report unknown orders without error", func(t *testing.T) {
		ctx := t.Context()
		n := newNetwork(t)
		stores := new(MockStoreRepository)
		stores.On("Get", ctx, n.store.ID()).Return(n.store, nil).Once()
		cmd, err := commands.NewAdvanceOrderCommand(n.store.ID(), kernel.NewUUID())
		require.NoError(t, err)

		handler := commands.NewAdvanceOrderCommandHandler(stores, commands.NewJournal(new(MockUoWFactory), new(MockEventPublisher), discardLogger()), discardLogger())
		outcome, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, store.KindNotFound, outcome.Kind())
	})
}

func TestAdvancePendingOrdersCommandHandler_Handle(t *testing.T) {
	t.Run("should sweep every store and count movers", func(t *testing.T) {
		ctx := t.Context()
		first, second := newNetwork(t), newNetwork(t)
		first.hire(t, worker.Assembler)

		waiting, _, err := first.store.SubmitOrder(ctx, kernel.NewUUID(), 0, 0, map[string]int{"pen": 1})
		require.NoError(t, err)
		_, _, err = second.store.SubmitOrder(ctx, kernel.NewUUID(), 0, 0, map[string]int{"pen": 1})
		require.NoError(t, err)

		first.clock.Advance(time.Minute)
		second.hire(t, worker.Assembler)

		stores := new(MockStoreRepository)
		stores.On("GetAll", ctx).Return([]*store.Store{first.store, second.store}, nil).Once()
		factory := new(MockUoWFactory)
		firstUoW, secondUoW := newMockUoW(), newMockUoW()
		expectJournal(ctx, factory, firstUoW, 1, 1)
		expectJournal(ctx, factory, secondUoW, 1, 1)
		publisher := new(MockEventPublisher)
		publisher.On("PublishTransition", ctx, mock.Anything).Return(nil).Twice()

		handler := commands.NewAdvancePendingOrdersCommandHandler(stores, commands.NewJournal(factory, publisher, discardLogger()), discardLogger())
		progressed, err := handler.Handle(ctx, commands.NewAdvancePendingOrdersCommand())

		require.NoError(t, err)
		assert.Equal(t, 2, progressed)
		view, err := first.store.GetOrder(waiting)
		require.NoError(t, err)
		assert.Equal(t, order.Assembled, view.Status, "no courier is on shift at the first store")
		publisher.AssertExpectations(t)
	})

	t.Run("should reject a zero value command", func(t *testing.T) {
		handler := commands.NewAdvancePendingOrdersCommandHandler(new(MockStoreRepository), nil, discardLogger())

		_, err := handler.Handle(t.Context(), commands.AdvancePendingOrdersCommand{})

		require.ErrorIs(t, err, commands.ErrAdvancePendingOrdersCommandIsNotConstructed)
	})
}
