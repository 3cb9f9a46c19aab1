package http

import (
	"context"

	"github.com/anahihull/sd-api-ordenes/entities"
)

type OrderRepository interface {
	List(ctx context.Context) ([]entities.Order, error)
	Get(ctx context.Context, orderID string) (entities.Order, error)
	Create(ctx context.Context, order entities.NewOrder) (entities.Order, error)
	Update(ctx context.Context, orderID string, update entities.OrderUpdate) (entities.Order, error)
	Delete(ctx context.Context, orderID string) (entities.Order, error)
}

type StudentRepository interface {
	List(ctx context.Context) ([]entities.Student, error)
	Get(ctx context.Context, studentID int) (entities.Student, error)
	Delete(ctx context.Context, studentID int) (entities.Student, error)
}

type EventBus interface {
	Publish(ctx context.Context, event any) error
}

type OrdersHandler struct {
	orderRepo OrderRepository
	eventBus  EventBus
}

type StudentsHandler struct {
	studentRepo StudentRepository
	eventBus    EventBus
}
