package service

import (
	"context"

	"github.com/muss3ab/tsh/internal/models"

	"github.com/google/uuid"
)

type ProductListInput struct {
	CategoryID    *uuid.UUID
	MinPriceCents *int64
	MaxPriceCents *int64
	Search        string
	Limit         int
	Offset        int
}

type ProductInput struct {
	Name           string
	Description    string
	PriceCents     int64
	ImageURL       string
	InventoryCount int32
	CategoryID     uuid.UUID
}

type ProductPatch struct {
	Name           *string
	Description    *string
	PriceCents     *int64
	ImageURL       *string
	InventoryCount *int32
	CategoryID     *uuid.UUID
}

type CategoryInput struct {
	Name     string
	Slug     string
	ParentID *uuid.UUID
}

type CategoryPatch struct {
	Name     *string
	Slug     *string
	ParentID *uuid.UUID
	// ClearParent makes the category a root. ParentID wins when both are set.
	ClearParent bool
}

type CatalogService interface {
	ListProducts(ctx context.Context, in ProductListInput) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CategoryTree(ctx context.Context) ([]models.Category, error)

	// ExpandCategoryIDs returns the id plus every descendant id, cycle-safe.
	ExpandCategoryIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)

	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProductsAdmin(ctx context.Context, limit, offset int) ([]models.Product, int64, error)

	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategoriesAdmin(ctx context.Context, limit, offset int) ([]models.Category, int64, error)
}
