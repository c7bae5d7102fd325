package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/muss3ab/tsh/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	CategoryIDs   []uuid.UUID // expanded category subtree; empty = no filter
	MinPriceCents *int64
	MaxPriceCents *int64
	Query         string // substring match on name
	Limit         int
	Offset        int
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	HasByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// DecrementInventory subtracts qty only when enough stock remains.
	// Returns false without touching the row otherwise.
	DecrementInventory(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if len(f.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", f.CategoryIDs)
	}
	if f.MinPriceCents != nil {
		q = q.Where("price_cents >= ?", *f.MinPriceCents)
	}
	if f.MaxPriceCents != nil {
		q = q.Where("price_cents <= ?", *f.MaxPriceCents)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		q = q.Where("lower(name) LIKE lower(?)", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Product
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Preload("Category").Find(&list).Error
	return list, total, err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) HasByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&cnt).Error
	return cnt > 0, err
}

func (r *productRepo) DecrementInventory(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET inventory_count = inventory_count - @q,
    updated_at = now()
WHERE id = @pid
  AND inventory_count >= @q
`, map[string]any{
		"pid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}
