package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/anahihull/sd-api-ordenes/entities"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IOrderRepository interface {
	List(ctx context.Context) ([]entities.Order, error)
	Get(ctx context.Context, orderID string) (entities.Order, error)
	Create(ctx context.Context, order entities.NewOrder) (entities.Order, error)
	Update(ctx context.Context, orderID string, update entities.OrderUpdate) (entities.Order, error)
	Delete(ctx context.Context, orderID string) (entities.Order, error)
}

// OrderRepository keeps orders in memory, in insertion order.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []entities.Order
	newID  func() string
}

func NewOrderRepository(seed ...entities.Order) *OrderRepository {
	orders := make([]entities.Order, len(seed))
	copy(orders, seed)

	return &OrderRepository{
		orders: orders,
		newID:  uuid.NewString,
	}
}

// SeedOrders are the orders every fresh orders service starts with.
func SeedOrders() []entities.Order {
	return []entities.Order{
		{ID: "101", OwnerID: "1", ProductName: "Keyboard", Quantity: 2},
		{ID: "102", OwnerID: "2", ProductName: "Mouse", Quantity: 1},
	}
}

func (r *OrderRepository) List(ctx context.Context) ([]entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]entities.Order, len(r.orders))
	copy(orders, r.orders)

	return orders, nil
}

func (r *OrderRepository) Get(ctx context.Context, orderID string) (entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, _, ok := r.find(orderID)
	if !ok {
		return entities.Order{}, fmt.Errorf("could not get order %s: %w", orderID, ErrOrderNotFound)
	}

	return order, nil
}

func (r *OrderRepository) Create(ctx context.Context, newOrder entities.NewOrder) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for {
		if _, _, taken := r.find(id); !taken {
			break
		}
		id = r.newID()
	}

	order := entities.Order{
		ID:          id,
		OwnerID:     newOrder.OwnerID,
		ProductName: newOrder.ProductName,
		Quantity:    newOrder.Quantity,
	}
	r.orders = append(r.orders, order)

	return order, nil
}

func (r *OrderRepository) Update(ctx context.Context, orderID string, update entities.OrderUpdate) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, idx, ok := r.find(orderID)
	if !ok {
		return entities.Order{}, fmt.Errorf("could not update order %s: %w", orderID, ErrOrderNotFound)
	}

	if update.ProductName != nil {
		r.orders[idx].ProductName = *update.ProductName
	}
	if update.Quantity != nil {
		r.orders[idx].Quantity = *update.Quantity
	}

	return r.orders[idx], nil
}

func (r *OrderRepository) Delete(ctx context.Context, orderID string) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, idx, ok := r.find(orderID)
	if !ok {
		return entities.Order{}, fmt.Errorf("could not delete order %s: %w", orderID, ErrOrderNotFound)
	}
	r.orders = append(r.orders[:idx], r.orders[idx+1:]...)

	return order, nil
}

// find must be called with mu held.
func (r *OrderRepository) find(orderID string) (entities.Order, int, bool) {
	return lo.FindIndexOf(r.orders, func(o entities.Order) bool {
		return o.ID == orderID
	})
}
