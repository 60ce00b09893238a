package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists every operation of openapi.yml with its path
// parameters already bound.
type ServerInterface interface {
	// (GET /health)
	Health(ctx echo.Context) error
	// (POST /api/v1/stores/{storeId}/orders)
	SubmitOrder(ctx echo.Context, storeId openapi_types.UUID) error
	// (GET /api/v1/stores/{storeId}/orders/{orderId})
	GetOrder(ctx echo.Context, storeId openapi_types.UUID, orderId openapi_types.UUID) error
	// (POST /api/v1/stores/{storeId}/orders/{orderId}/advance)
	AdvanceOrder(ctx echo.Context, storeId openapi_types.UUID, orderId openapi_types.UUID) error
	// (POST /api/v1/stores/{storeId}/shifts)
	StartShift(ctx echo.Context, storeId openapi_types.UUID) error
	// (GET /api/v1/orders/uncompleted)
	GetUncompletedOrders(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId}/history)
	GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/workers)
	GetWorkers(ctx echo.Context) error
	// (POST /api/v1/workers)
	CreateWorker(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) Health(ctx echo.Context) error {
	return w.Handler.Health(ctx)
}

func (w *ServerInterfaceWrapper) SubmitOrder(ctx echo.Context) error {
	var storeId openapi_types.UUID
	if err := bindPathUUID(ctx, "storeId", &storeId); err != nil {
		return err
	}
	return w.Handler.SubmitOrder(ctx, storeId)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var storeId, orderId openapi_types.UUID
	if err := bindPathUUID(ctx, "storeId", &storeId); err != nil {
		return err
	}
	if err := bindPathUUID(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, storeId, orderId)
}

func (w *ServerInterfaceWrapper) AdvanceOrder(ctx echo.Context) error {
	var storeId, orderId openapi_types.UUID
	if err := bindPathUUID(ctx, "storeId", &storeId); err != nil {
		return err
	}
	if err := bindPathUUID(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.AdvanceOrder(ctx, storeId, orderId)
}

func (w *ServerInterfaceWrapper) StartShift(ctx echo.Context) error {
	var storeId openapi_types.UUID
	if err := bindPathUUID(ctx, "storeId", &storeId); err != nil {
		return err
	}
	return w.Handler.StartShift(ctx, storeId)
}

func (w *ServerInterfaceWrapper) GetUncompletedOrders(ctx echo.Context) error {
	return w.Handler.GetUncompletedOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPathUUID(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrderHistory(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetWorkers(ctx echo.Context) error {
	return w.Handler.GetWorkers(ctx)
}

func (w *ServerInterfaceWrapper) CreateWorker(ctx echo.Context) error {
	return w.Handler.CreateWorker(ctx)
}

// bindPathUUID binds a simple-style path parameter; failures become a 400.
func bindPathUUID(ctx echo.Context, name string, dest *openapi_types.UUID) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: fmt.Sprintf("Invalid format for parameter %s: %s", name, err)})
	}
	return nil
}

// EchoRouter is the part of echo.Echo and echo.Group routes are mounted on.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation of si on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/health", w.Health)
	router.POST("/api/v1/stores/:storeId/orders", w.SubmitOrder)
	router.GET("/api/v1/stores/:storeId/orders/:orderId", w.GetOrder)
	router.POST("/api/v1/stores/:storeId/orders/:orderId/advance", w.AdvanceOrder)
	router.POST("/api/v1/stores/:storeId/shifts", w.StartShift)
	router.GET("/api/v1/orders/uncompleted", w.GetUncompletedOrders)
	router.GET("/api/v1/orders/:orderId/history", w.GetOrderHistory)
	router.GET("/api/v1/workers", w.GetWorkers)
	router.POST("/api/v1/workers", w.CreateWorker)
}
