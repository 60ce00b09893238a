// Package http exposes the fulfillment use cases over a JSON API.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	SubmitOrderHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (kernel.UUID, store.Outcome, error)
	}
	AdvanceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) (store.Outcome, error)
	}
	CreateWorkerHandler interface {
		Handle(ctx context.Context, cmd commands.CreateWorkerCommand) error
	}
	StartShiftHandler interface {
		Handle(ctx context.Context, cmd commands.StartShiftCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (store.OrderView, error)
	}
	GetOrderHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.GetOrderHistoryQueryResponse, error)
	}
	GetUncompletedOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetUncompletedOrdersQuery) ([]queries.GetUncompletedOrdersQueryResponse, error)
	}
	GetAllWorkersHandler interface {
		Handle(ctx context.Context, query queries.GetAllWorkersQuery) ([]queries.GetAllWorkersQueryResponse, error)
	}
)

// Handlers bundles every use case the API serves.
type Handlers struct {
	SubmitOrder          SubmitOrderHandler
	AdvanceOrder         AdvanceOrderHandler
	CreateWorker         CreateWorkerHandler
	StartShift           StartShiftHandler
	GetOrder             GetOrderHandler
	GetOrderHistory      GetOrderHistoryHandler
	GetUncompletedOrders GetUncompletedOrdersHandler
	GetAllWorkers        GetAllWorkersHandler
}

var _ ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// Register validates requests against the embedded API description and
// mounts every operation on e.
func (s *Server) Register(e *echo.Echo) error {
	swagger, err := GetSwagger()
	if err != nil {
		return err
	}
	validator, err := RequestValidator(swagger)
	if err != nil {
		return err
	}

	e.Use(validator)
	RegisterHandlers(e, s)
	return nil
}

func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SubmitOrder handles POST /api/v1/stores/:storeId/orders.
// A created order is always answered with its ID, even when its first advance
// could not be journaled; the error is reported alongside the outcome.
func (s *Server) SubmitOrder(ctx echo.Context, storeId openapi_types.UUID) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customerId: "+err.Error())
	}

	cmd, err := commands.NewSubmitOrderCommand(domainID(storeId), customerID,
		kernel.Coordinate(body.X), kernel.Coordinate(body.Y), body.Items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	orderID, outcome, err := s.h.SubmitOrder.Handle(ctx.Request().Context(), cmd)
	if orderID == (kernel.UUID{}) {
		return failure(ctx, err, "Failed to submit order")
	}

	response := toOutcome(outcome)
	response.OrderID = orderID.String()
	if err != nil {
		response.Error = err.Error()
	}
	return ctx.JSON(http.StatusCreated, response)
}

// AdvanceOrder handles POST /api/v1/stores/:storeId/orders/:orderId/advance.
// Wait conditions are a 200 with the reason in the body.
func (s *Server) AdvanceOrder(ctx echo.Context, storeId openapi_types.UUID, orderId openapi_types.UUID) error {
	cmd, err := commands.NewAdvanceOrderCommand(domainID(storeId), domainID(orderId))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	outcome, err := s.h.AdvanceOrder.Handle(ctx.Request().Context(), cmd)
	switch {
	case outcome.Kind() == store.KindInvariantViolation:
		return ctx.JSON(http.StatusInternalServerError, toOutcome(outcome))
	case err != nil:
		return failure(ctx, err, "Failed to advance order")
	case outcome.Kind() == store.KindNotFound:
		return ctx.JSON(http.StatusNotFound, toOutcome(outcome))
	}

	return ctx.JSON(http.StatusOK, toOutcome(outcome))
}

// GetOrder handles GET /api/v1/stores/:storeId/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context, storeId openapi_types.UUID, orderId openapi_types.UUID) error {
	query, err := queries.NewGetOrderQuery(domainID(storeId), domainID(orderId))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrder(view))
}

// GetOrderHistory handles GET /api/v1/orders/:orderId/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error {
	query, err := queries.NewGetOrderHistoryQuery(domainID(orderId))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	history, err := s.h.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err, "Failed to retrieve order history")
	}

	response := make([]Transition, len(history))
	for i, step := range history {
		response[i] = toTransition(step)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUncompletedOrders handles GET /api/v1/orders/uncompleted.
func (s *Server) GetUncompletedOrders(ctx echo.Context) error {
	orders, err := s.h.GetUncompletedOrders.Handle(ctx.Request().Context(), queries.NewGetUncompletedOrdersQuery())
	if err != nil {
		return failure(ctx, err, "Failed to retrieve orders")
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = toUncompletedOrder(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWorkers handles GET /api/v1/workers.
func (s *Server) GetWorkers(ctx echo.Context) error {
	workers, err := s.h.GetAllWorkers.Handle(ctx.Request().Context(), queries.NewGetAllWorkersQuery())
	if err != nil {
		return failure(ctx, err, "Failed to retrieve workers")
	}

	response := make([]Worker, len(workers))
	for i, w := range workers {
		response[i] = toWorker(w)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateWorker handles POST /api/v1/workers and answers with the new ID.
func (s *Server) CreateWorker(ctx echo.Context) error {
	var body NewWorker
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	role, err := worker.ParseRole(body.Role)
	if err != nil {
		return badRequest(ctx, "Invalid role: "+err.Error())
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateWorkerCommand(id, body.Name, role)
	if err != nil {
		return badRequest(ctx, "Invalid worker data: "+err.Error())
	}

	if err = s.h.CreateWorker.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err, "Failed to create worker")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": id.String()})
}

// StartShift handles POST /api/v1/stores/:storeId/shifts.
func (s *Server) StartShift(ctx echo.Context, storeId openapi_types.UUID) error {
	var body NewShift
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	workerID, err := kernel.UUIDFromString(body.WorkerID)
	if err != nil {
		return badRequest(ctx, "Invalid workerId: "+err.Error())
	}
	duration, err := time.ParseDuration(body.Duration)
	if err != nil {
		return badRequest(ctx, "Invalid duration: "+err.Error())
	}

	cmd, err := commands.NewStartShiftCommand(domainID(storeId), workerID, duration)
	if err != nil {
		return badRequest(ctx, "Invalid shift data: "+err.Error())
	}

	if err = s.h.StartShift.Handle(ctx.Request().Context(), cmd); err != nil {
		return failure(ctx, err, "Failed to start shift")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// domainID maps the nil UUID to the zero kernel.UUID, which every command
// and query rejects as required.
func domainID(id openapi_types.UUID) kernel.UUID {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}
	}
	return parsed
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// failure maps use case errors to a status code.
func failure(ctx echo.Context, err error, message string) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	if code != http.StatusInternalServerError {
		message += ": " + err.Error()
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}
