package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anahihull/sd-api-ordenes/db"
	"github.com/anahihull/sd-api-ordenes/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

type postOrderRequest struct {
	OwnerID     *string `json:"ownerId"`
	ProductName *string `json:"productName"`
	Quantity    *int    `json:"quantity"`
}

type putOrderRequest struct {
	ProductName *string `json:"productName"`
	Quantity    *int    `json:"quantity"`
}

const (
	msgInvalidOrder            = "Missing 'ownerId' or 'productName', or 'quantity' is not a number."
	msgInvalidOrderUpdate      = "'productName' must be a string and 'quantity' a number."
	msgOrderNotFound           = "Order not found."
	msgOrderNotFoundForUpdate  = "Order not found for update."
	msgOrderNotFoundForRemoval = "Order not found for removal."
)

func (h OrdersHandler) GetOrders(c echo.Context) error {
	orders, err := h.orderRepo.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed getting orders: %w", err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h OrdersHandler) GetOrder(c echo.Context) error {
	order, err := h.orderRepo.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, db.ErrOrderNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msgOrderNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed getting order: %w", err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h OrdersHandler) PostOrder(c echo.Context) error {
	var request postOrderRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidOrder)
	}

	if request.OwnerID == nil || *request.OwnerID == "" ||
		request.ProductName == nil || *request.ProductName == "" ||
		request.Quantity == nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidOrder)
	}

	ctx := c.Request().Context()

	order, err := h.orderRepo.Create(ctx, entities.NewOrder{
		OwnerID:     *request.OwnerID,
		ProductName: *request.ProductName,
		Quantity:    *request.Quantity,
	})
	if err != nil {
		return fmt.Errorf("failed creating order: %w", err)
	}

	h.publish(c, entities.OrderPlaced_v1{
		Header:      entities.NewEventHeader(),
		OrderID:     order.ID,
		OwnerID:     order.OwnerID,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h OrdersHandler) PutOrder(c echo.Context) error {
	var request putOrderRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidOrderUpdate)
	}

	order, err := h.orderRepo.Update(c.Request().Context(), c.Param("id"), entities.OrderUpdate{
		ProductName: request.ProductName,
		Quantity:    request.Quantity,
	})
	if errors.Is(err, db.ErrOrderNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msgOrderNotFoundForUpdate)
	}
	if err != nil {
		return fmt.Errorf("failed updating order: %w", err)
	}

	h.publish(c, entities.OrderUpdated_v1{
		Header:      entities.NewEventHeader(),
		OrderID:     order.ID,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
	})

	return c.JSON(http.StatusOK, order)
}

func (h OrdersHandler) DeleteOrder(c echo.Context) error {
	order, err := h.orderRepo.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, db.ErrOrderNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msgOrderNotFoundForRemoval)
	}
	if err != nil {
		return fmt.Errorf("failed deleting order: %w", err)
	}

	h.publish(c, entities.OrderDeleted_v1{
		Header:  entities.NewEventHeader(),
		OrderID: order.ID,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h OrdersHandler) GetRoot(c echo.Context) error {
	return c.String(http.StatusOK, "Orders API up - preloaded orders available.")
}

func (h OrdersHandler) publish(c echo.Context, event any) {
	ctx := c.Request().Context()
	if err := h.eventBus.Publish(ctx, event); err != nil {
		log.FromContext(ctx).WithError(err).Errorf("Failed to publish %T event", event)
	}
}
