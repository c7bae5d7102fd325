package repository

import (
	"context"
	"errors"

	"github.com/muss3ab/tsh/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	UserID        uuid.UUID
	Status        *models.OrderStatus
	ExcludeStatus *models.OrderStatus
	Limit         int
	Offset        int
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetCartByUser(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	UpdateTotal(ctx context.Context, id uuid.UUID, totalCents int64) error
	MarkPlaced(ctx context.Context, id uuid.UUID, status models.OrderStatus, address, phone string) error

	WithTx(ctx context.Context, fn func(orders OrderRepo, items OrderItemRepo, products ProductRepo) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.created_at ASC") }).
		Preload("Items.Product").
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetCartByUser(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.created_at ASC") }).
		Preload("Items.Product").
		First(&ord, "user_id = ? AND status = ?", userID, models.OrderStatusCart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", f.UserID)

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.ExcludeStatus != nil {
		q = q.Where("status <> ?", *f.ExcludeStatus)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Order
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).
		Preload("Items").Preload("Items.Product").
		Find(&list).Error
	return list, total, err
}

func (r *orderRepo) UpdateTotal(ctx context.Context, id uuid.UUID, totalCents int64) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("total_price_cents", totalCents).Error
}

func (r *orderRepo) MarkPlaced(ctx context.Context, id uuid.UUID, status models.OrderStatus, address, phone string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(map[string]any{
		"status":           status,
		"shipping_address": address,
		"shipping_phone":   phone,
	}).Error
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(orders OrderRepo, items OrderItemRepo, products ProductRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepo{db: tx}, &orderItemRepo{db: tx}, &productRepo{db: tx})
	})
}
