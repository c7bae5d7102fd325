package repository

import (
	"context"
	"errors"

	"github.com/muss3ab/tsh/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListAll(ctx context.Context) ([]models.Category, error)
	ListRoots(ctx context.Context) ([]models.Category, error)
	List(ctx context.Context, limit, offset int) ([]models.Category, int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) CategoryRepo { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(fields).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).Preload("Children").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *categoryRepo) ListRoots(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).Where("parent_id IS NULL").Preload("Children").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *categoryRepo) List(ctx context.Context, limit, offset int) ([]models.Category, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var list []models.Category
	err := q.Order("name ASC").Limit(limit).Offset(offset).Preload("Children").Find(&list).Error
	return list, total, err
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *categoryRepo) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("parent_id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}
