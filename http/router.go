package http

import (
	"net/http"

	"github.com/anahihull/sd-api-ordenes/metrics"

	libHttp "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func newEcho(serviceName, messageKey string, httpMetrics *metrics.HTTP, gatherer prometheus.Gatherer) *echo.Echo {
	e := libHttp.NewEcho()
	e.HTTPErrorHandler = newErrorHandler(messageKey)

	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware(serviceName))
	e.Use(httpMetrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))

	return e
}

func NewOrdersRouter(
	orderRepo OrderRepository,
	eventBus EventBus,
	httpMetrics *metrics.HTTP,
	gatherer prometheus.Gatherer,
) *echo.Echo {
	e := newEcho("orders", "message", httpMetrics, gatherer)

	handler := OrdersHandler{
		orderRepo: orderRepo,
		eventBus:  eventBus,
	}

	e.GET("/", handler.GetRoot)
	e.GET("/api/orders", handler.GetOrders)
	e.GET("/api/orders/:id", handler.GetOrder)
	e.POST("/api/orders", handler.PostOrder)
	e.PUT("/api/orders/:id", handler.PutOrder)
	e.DELETE("/api/orders/:id", handler.DeleteOrder)

	return e
}

func NewStudentsRouter(
	studentRepo StudentRepository,
	eventBus EventBus,
	httpMetrics *metrics.HTTP,
	gatherer prometheus.Gatherer,
) *echo.Echo {
	e := newEcho("students", "error", httpMetrics, gatherer)

	handler := StudentsHandler{
		studentRepo: studentRepo,
		eventBus:    eventBus,
	}

	e.GET("/students", handler.GetStudents)
	e.GET("/students/:id", handler.GetStudent)
	e.DELETE("/students/:id", handler.DeleteStudent)

	return e
}
