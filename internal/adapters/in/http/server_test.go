package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubmitOrder struct{ mock.Mock }

func (m *MockSubmitOrder) Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (kernel.UUID, store.Outcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Get(1).(store.Outcome), args.Error(2)
}

type MockAdvanceOrder struct{ mock.Mock }

func (m *MockAdvanceOrder) Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) (store.Outcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(store.Outcome), args.Error(1)
}

type MockCreateWorker struct{ mock.Mock }

func (m *MockCreateWorker) Handle(ctx context.Context, cmd commands.CreateWorkerCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockStartShift struct{ mock.Mock }

func (m *MockStartShift) Handle(ctx context.Context, cmd commands.StartShiftCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetOrder struct{ mock.Mock }

func (m *MockGetOrder) Handle(ctx context.Context, q queries.GetOrderQuery) (store.OrderView, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(store.OrderView), args.Error(1)
}

type MockGetOrderHistory struct{ mock.Mock }

func (m *MockGetOrderHistory) Handle(
	ctx context.Context, q queries.GetOrderHistoryQuery,
) ([]queries.GetOrderHistoryQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.GetOrderHistoryQueryResponse), args.Error(1)
}

type MockGetUncompletedOrders struct{ mock.Mock }

func (m *MockGetUncompletedOrders) Handle(
	ctx context.Context, q queries.GetUncompletedOrdersQuery,
) ([]queries.GetUncompletedOrdersQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.GetUncompletedOrdersQueryResponse), args.Error(1)
}

type MockGetAllWorkers struct{ mock.Mock }

func (m *MockGetAllWorkers) Handle(
	ctx context.Context, q queries.GetAllWorkersQuery,
) ([]queries.GetAllWorkersQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.GetAllWorkersQueryResponse), args.Error(1)
}

type fixture struct {
	echo         *echo.Echo
	submit       *MockSubmitOrder
	advance      *MockAdvanceOrder
	createWorker *MockCreateWorker
	startShift   *MockStartShift
	getOrder     *MockGetOrder
	history      *MockGetOrderHistory
	uncompleted  *MockGetUncompletedOrders
	workers      *MockGetAllWorkers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		echo:         echo.New(),
		submit:       new(MockSubmitOrder),
		advance:      new(MockAdvanceOrder),
		createWorker: new(MockCreateWorker),
		startShift:   new(MockStartShift),
		getOrder:     new(MockGetOrder),
		history:      new(MockGetOrderHistory),
		uncompleted:  new(MockGetUncompletedOrders),
		workers:      new(MockGetAllWorkers),
	}
	err := httpadapter.NewServer(httpadapter.Handlers{
		SubmitOrder:          f.submit,
		AdvanceOrder:         f.advance,
		CreateWorker:         f.createWorker,
		StartShift:           f.startShift,
		GetOrder:             f.getOrder,
		GetOrderHistory:      f.history,
		GetUncompletedOrders: f.uncompleted,
		GetAllWorkers:        f.workers,
	}).Register(f.echo)
	require.NoError(t, err)
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestServer_Health(t *testing.T) {
	rec := newFixture(t).do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_SubmitOrder(t *testing.T) {
	storeID, customerID, orderID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	body := `{"customerId":"` + customerID.String() + `","x":-3,"y":4,"items":{"pen":2}}`
	path := "/api/v1/stores/" + storeID.String() + "/orders"

	t.Run("should answer with the first advance", func(t *testing.T) {
		f := newFixture(t)
		outcome := store.Outcome{
			OrderID:     orderID,
			Status:      order.ReadyToAssemble,
			Reason:      store.ReasonNoAssemblerFree,
			Transitions: []order.Transition{{OrderID: orderID, From: order.New, To: order.ReadyToAssemble}},
		}
		f.submit.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitOrderCommand) bool {
			x, y := cmd.Destination()
			return cmd.StoreID() == storeID && cmd.CustomerID() == customerID && x == -3 && y == 4 &&
				cmd.Items()["pen"] == 2
		})).Return(orderID, outcome, nil).Once()

		rec := f.do(http.MethodPost, path, body)

		require.Equal(t, http.StatusCreated, rec.Code)
		got := decode[httpadapter.Outcome](t, rec)
		assert.Equal(t, orderID.String(), got.OrderID)
		assert.Equal(t, "ReadyToAssemble", got.Status)
		assert.Equal(t, "no assembler free", got.Reason)
		assert.Equal(t, "ResourceUnavailable", got.Kind)
		assert.True(t, got.Progressed)
		f.submit.AssertExpectations(t)
	})

	t.Run("should keep the order id when journaling fails", func(t *testing.T) {
		f := newFixture(t)
		outcome := store.Outcome{OrderID: orderID, Status: order.New, Reason: store.ReasonInsufficientStock}
		f.submit.On("Handle", mock.Anything, mock.Anything).
			Return(orderID, outcome, errors.New("journal: connection refused")).Once()

		rec := f.do(http.MethodPost, path, body)

		require.Equal(t, http.StatusCreated, rec.Code)
		got := decode[httpadapter.Outcome](t, rec)
		assert.Equal(t, orderID.String(), got.OrderID)
		assert.Equal(t, "New", got.Status)
		assert.Equal(t, "insufficient stock, retry later", got.Reason)
		assert.Equal(t, "journal: connection refused", got.Error)
	})

	t.Run("should omit the error field when the first advance was journaled", func(t *testing.T) {
		f := newFixture(t)
		f.submit.On("Handle", mock.Anything, mock.Anything).
			Return(orderID, store.Outcome{OrderID: orderID, Status: order.New, Reason: store.ReasonInsufficientStock}, nil).Once()

		rec := f.do(http.MethodPost, path, body)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), `"error"`)
	})

	t.Run("should map an unknown item to 404", func(t *testing.T) {
		f := newFixture(t)
		f.submit.On("Handle", mock.Anything, mock.Anything).
			Return(kernel.UUID{}, store.Outcome{}, errs.NewObjectNotFoundError("item", "stapler")).Once()

		rec := f.do(http.MethodPost, path, body)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject malformed input before reaching the use case", func(t *testing.T) {
		f := newFixture(t)

		for _, tc := range []struct{ path, body string }{
			{"/api/v1/stores/not-a-uuid/orders", body},
			{path, `{"customerId":"nope","items":{"pen":1}}`},
			{path, `{"customerId":"` + customerID.String() + `","items":{}}`},
			{path, `{`},
			{path, `{"items":{"pen":1}}`},
			{path, `{"customerId":"` + customerID.String() + `","items":{"pen":0}}`},
			{"/api/v1/stores/00000000-0000-0000-0000-000000000000/orders", body},
		} {
			rec := f.do(http.MethodPost, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, tc.body)
		}
		f.submit.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_AdvanceOrder(t *testing.T) {
	storeID, orderID := kernel.NewUUID(), kernel.NewUUID()
	path := "/api/v1/stores/" + storeID.String() + "/orders/" + orderID.String() + "/advance"

	testCases := []struct {
		name     string
		outcome  store.Outcome
		err      error
		expected int
	}{
		{"wait is ok", store.Outcome{OrderID: orderID, Status: order.Assembling, Reason: store.ReasonAssemblyInProgress}, nil, http.StatusOK},
		{"unknown order", store.Outcome{OrderID: orderID, Reason: store.ReasonNotFound}, nil, http.StatusNotFound},
		{"invariant violation", store.Outcome{OrderID: orderID, Reason: store.ReasonInvariantViolation}, store.ErrInvariantViolation, http.StatusInternalServerError},
		{"infrastructure failure", store.Outcome{}, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run("should answer "+tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.advance.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AdvanceOrderCommand) bool {
				return cmd.StoreID() == storeID && cmd.OrderID() == orderID
			})).Return(tc.outcome, tc.err).Once()

			rec := f.do(http.MethodPost, path, "")

			assert.Equal(t, tc.expected, rec.Code)
			f.advance.AssertExpectations(t)
		})
	}
}

func TestServer_GetOrder(t *testing.T) {
	f := newFixture(t)
	storeID, orderID, courier := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	f.getOrder.On("Handle", mock.Anything, mock.Anything).Return(store.OrderView{
		ID:          orderID,
		StoreID:     storeID,
		CustomerID:  kernel.NewUUID(),
		Destination: kernel.NewLocation(7, -2),
		Status:      order.Delivering,
		Items:       map[string]int{"pen": 1},
		CourierID:   &courier,
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/stores/"+storeID.String()+"/orders/"+orderID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[httpadapter.Order](t, rec)
	assert.Equal(t, "Delivering", got.Status)
	assert.Equal(t, httpadapter.Location{X: 7, Y: -2}, got.Destination)
	assert.Nil(t, got.AssemblerID)
	require.NotNil(t, got.CourierID)
	assert.Equal(t, courier.String(), *got.CourierID)
}

func TestServer_GetOrderHistory(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.history.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetOrderHistoryQueryResponse{
		{StoreID: kernel.NewUUID(), From: order.New, To: order.ReadyToAssemble, At: at},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/history", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]httpadapter.Transition](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].From)
	assert.Equal(t, "ReadyToAssemble", got[0].To)
	assert.True(t, at.Equal(got[0].At))
}

func TestServer_GetUncompletedOrders(t *testing.T) {
	f := newFixture(t)
	f.uncompleted.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.GetUncompletedOrdersQueryResponse{{ID: kernel.NewUUID(), Status: order.Assembled}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/uncompleted", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]httpadapter.Order](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "Assembled", got[0].Status)
}

func TestServer_Workers(t *testing.T) {
	t.Run("should list workers with earnings", func(t *testing.T) {
		f := newFixture(t)
		f.workers.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetAllWorkersQueryResponse{
			{ID: kernel.NewUUID(), Name: "amy", Role: worker.Assembler, Earnings: decimal.NewFromInt(13500)},
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/workers", "")

		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[[]httpadapter.Worker](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, "Assembler", got[0].Role)
		assert.Equal(t, "13500.00", got[0].Earnings)
	})

	t.Run("should create a worker", func(t *testing.T) {
		f := newFixture(t)
		f.createWorker.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateWorkerCommand) bool {
			return cmd.Name() == "bob" && cmd.Role() == worker.Courier
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/workers", `{"name":"bob","role":"courier"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		got := decode[map[string]string](t, rec)
		_, err := kernel.UUIDFromString(got["id"])
		require.NoError(t, err)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/workers", `{"name":"bob","role":"driver"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid request body")
		f.createWorker.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should start a shift", func(t *testing.T) {
		f := newFixture(t)
		storeID, workerID := kernel.NewUUID(), kernel.NewUUID()
		f.startShift.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.StartShiftCommand) bool {
			return cmd.StoreID() == storeID && cmd.WorkerID() == workerID && cmd.Duration() == 8*time.Hour
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/stores/"+storeID.String()+"/shifts",
			`{"workerId":"`+workerID.String()+`","duration":"8h"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.startShift.AssertExpectations(t)
	})
}

func TestServer_PathParameters(t *testing.T) {
	t.Run("should reject a malformed order id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/stores/"+kernel.NewUUID().String()+"/orders/42", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "orderId")
		f.getOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should leave undescribed paths to the router", func(t *testing.T) {
		rec := newFixture(t).do(http.MethodGet, "/api/v2/workers", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetSwagger(t *testing.T) {
	swagger, err := httpadapter.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/health",
		"/api/v1/stores/{storeId}/orders",
		"/api/v1/stores/{storeId}/orders/{orderId}",
		"/api/v1/stores/{storeId}/orders/{orderId}/advance",
		"/api/v1/stores/{storeId}/shifts",
		"/api/v1/orders/uncompleted",
		"/api/v1/orders/{orderId}/history",
		"/api/v1/workers",
	} {
		assert.NotNil(t, swagger.Paths.Value(path), path)
	}
}
