package service

import (
	"context"
	"time"

	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderService struct {
	orders repository.OrderRepo
	events EventBus
	now    func() time.Time
	log    *zap.Logger
}

func NewOrderService(orders repository.OrderRepo, events EventBus, log *zap.Logger) OrderService {
	return &orderService{
		orders: orders,
		events: events,
		now:    time.Now,
		log:    log,
	}
}

func (s *orderService) Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	cart, err := s.orders.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	// One transaction: conditional decrement per line plus the status flip.
	// A failed decrement aborts and rolls everything back, so inventory and
	// the cart stay exactly as they were.
	err = s.orders.WithTx(ctx, func(orders repository.OrderRepo, _ repository.OrderItemRepo, products repository.ProductRepo) error {
		for _, item := range cart.Items {
			ok, err := products.DecrementInventory(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				p, err := products.GetByID(ctx, item.ProductID)
				if err != nil {
					return err
				}
				insufficient := &InsufficientInventoryError{ProductID: item.ProductID}
				if p != nil {
					insufficient.Name = p.Name
					insufficient.Available = p.InventoryCount
				}
				return insufficient
			}
		}
		return orders.MarkPlaced(ctx, cart.ID, models.OrderStatusPending, in.ShippingAddress, in.ShippingPhone)
	})
	if err != nil {
		return nil, err
	}

	placed, err := s.orders.GetByID(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		evItems := make([]OrderItemEvent, 0, len(placed.Items))
		for _, it := range placed.Items {
			evItems = append(evItems, OrderItemEvent{
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				PriceCents: it.PriceCents,
			})
		}
		if err := s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
			OrderID:         placed.ID,
			UserID:          placed.UserID,
			Items:           evItems,
			TotalCents:      placed.TotalPriceCents,
			ShippingAddress: placed.ShippingAddress,
			ShippingPhone:   placed.ShippingPhone,
			PlacedAt:        s.now(),
		}); err != nil {
			// The order is already committed; losing the event must not fail
			// the checkout.
			s.log.Warn("failed to publish order.placed", zap.String("order_id", placed.ID.String()), zap.Error(err))
		}
	}

	return placed, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}

	cart := models.OrderStatusCart
	filter := repository.OrderListFilter{
		UserID:        userID,
		ExcludeStatus: &cart,
		Limit:         f.Limit,
		Offset:        f.Offset,
	}
	if f.Status != nil && *f.Status != models.OrderStatusCart {
		filter.Status = f.Status
	}

	return s.orders.List(ctx, filter)
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.UserID != userID && role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return ord, nil
}
