package service

import (
	"context"

	"github.com/muss3ab/tsh/internal/models"

	"github.com/google/uuid"
)

type CheckoutInput struct {
	ShippingAddress string
	ShippingPhone   string
}

type OrderListFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderService interface {
	// Checkout atomically turns the user's cart into a pending order,
	// committing the inventory decrement for every line item.
	Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
}
