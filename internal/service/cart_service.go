package service

import (
	"context"
	"errors"

	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cartService struct {
	orders   repository.OrderRepo
	items    repository.OrderItemRepo
	products repository.ProductRepo
}

func NewCartService(orders repository.OrderRepo, items repository.OrderItemRepo, products repository.ProductRepo) CartService {
	return &cartService{
		orders:   orders,
		items:    items,
		products: products,
	}
}

func (s *cartService) GetOrCreateCart(ctx context.Context) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.getOrCreateCart(ctx, userID)
}

func (s *cartService) getOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	cart, err := s.orders.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusCart,
		TotalPriceCents: 0,
		ShippingAddress: "",
		ShippingPhone:   "",
	}
	err = s.orders.Create(ctx, cart)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race against a concurrent first cart interaction: the
		// partial unique index guarantees a cart now exists, use it.
		return s.orders.GetCartByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, productID uuid.UUID, quantity int32) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.orders.WithTx(ctx, func(orders repository.OrderRepo, items repository.OrderItemRepo, _ repository.ProductRepo) error {
		existing, err := items.GetByOrderAndProduct(ctx, cart.ID, product.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			// Merge into the existing line; the price snapshot from the first
			// insertion stays untouched.
			if err := items.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
				return err
			}
		} else {
			item := &models.OrderItem{
				OrderID:    cart.ID,
				ProductID:  product.ID,
				Quantity:   quantity,
				PriceCents: product.PriceCents,
			}
			if err := items.Create(ctx, item); err != nil {
				return err
			}
		}
		return recomputeTotal(ctx, orders, items, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.orders.GetCartByUser(ctx, userID)
}

func (s *cartService) UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int32) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	item, parent, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if parent.UserID != userID || parent.Status != models.OrderStatusCart {
		return nil, ErrForbidden
	}

	err = s.orders.WithTx(ctx, func(orders repository.OrderRepo, items repository.OrderItemRepo, _ repository.ProductRepo) error {
		if err := items.UpdateQuantity(ctx, item.ID, quantity); err != nil {
			return err
		}
		return recomputeTotal(ctx, orders, items, parent.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.orders.GetCartByUser(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, itemID uuid.UUID) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	item, parent, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if parent.UserID != userID || parent.Status != models.OrderStatusCart {
		return nil, ErrForbidden
	}

	err = s.orders.WithTx(ctx, func(orders repository.OrderRepo, items repository.OrderItemRepo, _ repository.ProductRepo) error {
		if _, err := items.Delete(ctx, item.ID); err != nil {
			return err
		}
		return recomputeTotal(ctx, orders, items, parent.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.orders.GetCartByUser(ctx, userID)
}

// recomputeTotal rebuilds the order total from the full current item set after
// every mutation, so the total can never drift from the items.
func recomputeTotal(ctx context.Context, orders repository.OrderRepo, items repository.OrderItemRepo, orderID uuid.UUID) error {
	total, err := items.SumByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return orders.UpdateTotal(ctx, orderID, total)
}
