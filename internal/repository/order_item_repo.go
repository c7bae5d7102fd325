package repository

import (
	"context"
	"errors"

	"github.com/muss3ab/tsh/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItemRepo interface {
	Create(ctx context.Context, item *models.OrderItem) error
	// GetByID preloads the parent order for ownership checks.
	GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, *models.Order, error)
	GetByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (*models.OrderItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int32) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}

type orderItemRepo struct{ db *gorm.DB }

func NewOrderItemRepo(db *gorm.DB) OrderItemRepo { return &orderItemRepo{db: db} }

func (r *orderItemRepo) Create(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, *models.Order, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var ord models.Order
	if err := r.db.WithContext(ctx).First(&ord, "id = ?", item.OrderID).Error; err != nil {
		return nil, nil, err
	}
	return &item, &ord, nil
}

func (r *orderItemRepo) GetByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ? AND product_id = ?", orderID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *orderItemRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int32) error {
	return r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *orderItemRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.OrderItem{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

// SumByOrder recomputes the order total from scratch over the current item set.
func (r *orderItemRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("COALESCE(SUM(quantity * price_cents),0)").
		Where("order_id = ?", orderID).
		Scan(&total).Error
	return total, err
}
