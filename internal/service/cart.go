package service

import (
	"context"

	"github.com/muss3ab/tsh/internal/models"

	"github.com/google/uuid"
)

type CartService interface {
	// GetOrCreateCart returns the user's single cart-status order, creating an
	// empty one when none exists. Idempotent until checkout consumes the cart.
	GetOrCreateCart(ctx context.Context) (*models.Order, error)
	AddItem(ctx context.Context, productID uuid.UUID, quantity int32) (*models.Order, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int32) (*models.Order, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) (*models.Order, error)
}
