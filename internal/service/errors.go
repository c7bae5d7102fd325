package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrItemNotFound     = errors.New("cart item not found")

	ErrQuantityInvalid = errors.New("quantity must be >= 1")
	ErrCartEmpty       = errors.New("cart is empty")

	ErrAlreadyInWishlist = errors.New("product already in wishlist")
	ErrNotInWishlist     = errors.New("product not in wishlist")

	ErrSlugTaken      = errors.New("slug already in use")
	ErrCategoryInUse  = errors.New("cannot delete category with children or products")
	ErrCategoryCycle  = errors.New("category cannot be its own ancestor")
	ErrParentNotFound = errors.New("parent category not found")
)

// InsufficientInventoryError names the first offending product and how much of
// it is actually available, so the client can adjust the cart.
type InsufficientInventoryError struct {
	ProductID uuid.UUID
	Name      string
	Available int32
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for %s. Available: %d", e.Name, e.Available)
}
