package repository

import (
	"context"

	"github.com/muss3ab/tsh/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

type wishlistRepo struct{ db *gorm.DB }

func NewWishlistRepo(db *gorm.DB) WishlistRepo { return &wishlistRepo{db: db} }

func (r *wishlistRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	var list []models.Wishlist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Product").Preload("Product.Category").
		Find(&list).Error
	return list, err
}

func (r *wishlistRepo) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Wishlist{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *wishlistRepo) Add(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&models.Wishlist{UserID: userID, ProductID: productID}).Error
}

func (r *wishlistRepo) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Wishlist{})
	return tx.RowsAffected > 0, tx.Error
}
