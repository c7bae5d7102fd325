package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/muss3ab/tsh/internal/cache"
	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	categoryTreeCacheKey = "categories:tree"
	categoryTreeCacheTTL = 5 * time.Minute
)

type catalogService struct {
	products   repository.ProductRepo
	categories repository.CategoryRepo
	cache      CacheClient // nil disables the tree cache
	log        *zap.Logger
}

func NewCatalogService(products repository.ProductRepo, categories repository.CategoryRepo, cache CacheClient, log *zap.Logger) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		cache:      cache,
		log:        log,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, in ProductListInput) ([]models.Product, int64, error) {
	f := repository.ProductListFilter{
		MinPriceCents: in.MinPriceCents,
		MaxPriceCents: in.MaxPriceCents,
		Query:         in.Search,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}

	if in.CategoryID != nil {
		ids, err := s.ExpandCategoryIDs(ctx, *in.CategoryID)
		if err != nil {
			return nil, 0, err
		}
		f.CategoryIDs = ids
	}

	return s.products.List(ctx, f)
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) CategoryTree(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, categoryTreeCacheKey)
		if err == nil {
			var tree []models.Category
			if err := json.Unmarshal([]byte(raw), &tree); err == nil {
				return tree, nil
			}
		} else if !cache.IsCacheMiss(err) {
			s.log.Warn("category tree cache read failed", zap.Error(err))
		}
	}

	tree, err := s.categories.ListRoots(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(tree); err == nil {
			if err := s.cache.Set(ctx, categoryTreeCacheKey, raw, categoryTreeCacheTTL); err != nil {
				s.log.Warn("failed to cache category tree", zap.Error(err))
			}
		}
	}

	return tree, nil
}

// ExpandCategoryIDs walks the category tree in memory over one full table
// load. The visited set makes a corrupt (cyclic) tree terminate instead of
// recursing forever.
func (s *catalogService) ExpandCategoryIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	all, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uuid.UUID][]uuid.UUID, len(all))
	for _, c := range all {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	visited := map[uuid.UUID]bool{}
	ids := []uuid.UUID{}
	stack := []uuid.UUID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		ids = append(ids, cur)
		stack = append(stack, children[cur]...)
	}

	return ids, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	cat, err := s.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	p := &models.Product{
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		PriceCents:     in.PriceCents,
		ImageURL:       strings.TrimSpace(in.ImageURL),
		InventoryCount: in.InventoryCount,
		CategoryID:     in.CategoryID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, p.ID)
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.PriceCents != nil {
		fields["price_cents"] = *patch.PriceCents
	}
	if patch.ImageURL != nil {
		fields["image_url"] = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.InventoryCount != nil {
		fields["inventory_count"] = *patch.InventoryCount
	}
	if patch.CategoryID != nil {
		cat, err := s.categories.GetByID(ctx, *patch.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
		fields["category_id"] = *patch.CategoryID
	}

	if err := s.products.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	ok, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

func (s *catalogService) ListProductsAdmin(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	return s.products.List(ctx, repository.ProductListFilter{Limit: limit, Offset: offset})
}

func (s *catalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(in.Slug)
	if slug != "" {
		existing, err := s.categories.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSlugTaken
		}
	}

	if in.ParentID != nil {
		parent, err := s.categories.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
	}

	c := &models.Category{
		Name:     strings.TrimSpace(in.Name),
		Slug:     slug,
		ParentID: in.ParentID,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return s.categories.GetByID(ctx, c.ID)
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Slug != nil {
		slug := strings.TrimSpace(*patch.Slug)
		existing, err := s.categories.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrSlugTaken
		}
		fields["slug"] = slug
	}
	if patch.ParentID != nil {
		parent, err := s.categories.GetByID(ctx, *patch.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
		if err := s.rejectCycle(ctx, id, *patch.ParentID); err != nil {
			return nil, err
		}
		fields["parent_id"] = *patch.ParentID
	} else if patch.ClearParent {
		fields["parent_id"] = nil
	}

	if err := s.categories.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)
	return s.categories.GetByID(ctx, id)
}

// rejectCycle refuses a parent assignment that would make the category its
// own ancestor.
func (s *catalogService) rejectCycle(ctx context.Context, id, newParent uuid.UUID) error {
	if id == newParent {
		return ErrCategoryCycle
	}

	all, err := s.categories.ListAll(ctx)
	if err != nil {
		return err
	}
	parents := make(map[uuid.UUID]*uuid.UUID, len(all))
	for _, c := range all {
		parents[c.ID] = c.ParentID
	}

	visited := map[uuid.UUID]bool{}
	cur := newParent
	for {
		if cur == id {
			return ErrCategoryCycle
		}
		if visited[cur] {
			return nil
		}
		visited[cur] = true
		p, ok := parents[cur]
		if !ok || p == nil {
			return nil
		}
		cur = *p
	}
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCategoryNotFound
	}

	hasChildren, err := s.categories.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	hasProducts, err := s.products.HasByCategory(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren || hasProducts {
		return ErrCategoryInUse
	}

	if _, err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateTree(ctx)
	return nil
}

func (s *catalogService) ListCategoriesAdmin(ctx context.Context, limit, offset int) ([]models.Category, int64, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	return s.categories.List(ctx, limit, offset)
}

func (s *catalogService) invalidateTree(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, categoryTreeCacheKey); err != nil {
		s.log.Warn("failed to invalidate category tree cache", zap.Error(err))
	}
}
