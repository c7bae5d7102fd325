package handlers

import (
	"net/http"
	"strconv"

	"github.com/muss3ab/tsh/internal/dto"
	"github.com/muss3ab/tsh/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultProductPageSize = 20
	maxPageSize            = 100
)

type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     log,
	}
}

// ListProducts godoc
// @Summary List products
// @Description Paginated product listing with category, price and text filters
// @Tags catalog
// @Produce json
// @Param category_id query string false "Category id, descendants included"
// @Param min_price query string false "Minimum price, e.g. 10.00"
// @Param max_price query string false "Maximum price"
// @Param search query string false "Name/description substring"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ProductListResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	in := service.ProductListInput{
		Search: c.Query("search"),
	}
	in.Limit, in.Offset = pageParams(c, defaultProductPageSize)

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("category_id must be a uuid", nil))
			return
		}
		in.CategoryID = &id
	}
	if raw := c.Query("min_price"); raw != "" {
		cents, err := dto.ParseCents(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("min_price must be a decimal amount", nil))
			return
		}
		in.MinPriceCents = &cents
	}
	if raw := c.Query("max_price"); raw != "" {
		cents, err := dto.ParseCents(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("max_price must be a decimal amount", nil))
			return
		}
		in.MaxPriceCents = &cents
	}

	products, total, err := h.catalog.ListProducts(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, dto.ToProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, dto.ProductListResponse{
		Data: out,
		Meta: dto.ListMeta{Total: total, Limit: in.Limit, Offset: in.Offset},
	})
}

// GetProduct godoc
// @Summary Product details
// @Tags catalog
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// CategoryTree godoc
// @Summary Category tree
// @Description Root categories with nested children
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/categories [get]
func (h *CatalogHandler) CategoryTree(c *gin.Context) {
	roots, err := h.catalog.CategoryTree(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := make([]dto.CategoryResponse, 0, len(roots))
	for i := range roots {
		out = append(out, dto.ToCategoryResponse(&roots[i]))
	}
	c.JSON(http.StatusOK, out)
}

func pageParams(c *gin.Context, def int) (limit, offset int) {
	limit = def
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError(name+" must be a uuid", nil))
		return uuid.Nil, false
	}
	return id, true
}
