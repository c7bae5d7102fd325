package handlers

import (
	"net/http"

	"github.com/muss3ab/tsh/internal/dto"
	"github.com/muss3ab/tsh/internal/middleware"
	"github.com/muss3ab/tsh/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewAdminHandler(catalog service.CatalogService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		log:     log,
	}
}

// ListProducts godoc
// @Summary Admin product listing
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ProductListResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/admin/products [get]
func (h *AdminHandler) ListProducts(c *gin.Context) {
	limit, offset := pageParams(c, defaultProductPageSize)

	products, total, err := h.catalog.ListProductsAdmin(middleware.ServiceContext(c), limit, offset)
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
		Meta: dto.ListMeta{Total: total, Limit: limit, Offset: offset},
	})
}

// CreateProduct godoc
// @Summary Create a product
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product data"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in, ok := h.productInput(c, req)
	if !ok {
		return
	}

	p, err := h.catalog.CreateProduct(middleware.ServiceContext(c), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// UpdateProduct godoc
// @Summary Update a product
// @Description Partial update; only the provided fields change
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param product body dto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/admin/products/{id} [patch]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	patch := service.ProductPatch{
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		InventoryCount: req.InventoryCount,
	}
	if req.Price != nil {
		cents, err := dto.ParseCents(*req.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("price must be a decimal amount", nil))
			return
		}
		patch.PriceCents = &cents
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("category_id must be a uuid", nil))
			return
		}
		patch.CategoryID = &cid
	}

	p, err := h.catalog.UpdateProduct(middleware.ServiceContext(c), id, patch)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(middleware.ServiceContext(c), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "product deleted"})
}

// ListCategories godoc
// @Summary Admin category listing
// @Description Flat paginated listing, unlike the public nested tree
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.CategoryListResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/admin/categories [get]
func (h *AdminHandler) ListCategories(c *gin.Context) {
	limit, offset := pageParams(c, defaultProductPageSize)

	categories, total, err := h.catalog.ListCategoriesAdmin(middleware.ServiceContext(c), limit, offset)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, dto.ToCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, dto.CategoryListResponse{
		Data: out,
		Meta: dto.ListMeta{Total: total, Limit: limit, Offset: offset},
	})
}

// CreateCategory godoc
// @Summary Create a category
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Slug taken"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/admin/categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := service.CategoryInput{
		Name: req.Name,
		Slug: req.Slug,
	}
	if req.ParentID != nil {
		pid, err := uuid.Parse(*req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("parent_id must be a uuid", nil))
			return
		}
		in.ParentID = &pid
	}

	cat, err := h.catalog.CreateCategory(middleware.ServiceContext(c), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Reparenting is rejected when it would create a cycle
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Category id"
// @Param category body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Slug taken"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/admin/categories/{id} [patch]
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	patch := service.CategoryPatch{
		Name:        req.Name,
		Slug:        req.Slug,
		ClearParent: req.ClearParent,
	}
	if req.ParentID != nil {
		pid, err := uuid.Parse(*req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("parent_id must be a uuid", nil))
			return
		}
		patch.ParentID = &pid
	}

	cat, err := h.catalog.UpdateCategory(middleware.ServiceContext(c), id, patch)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Refused while the category still has children or products
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Category in use"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(middleware.ServiceContext(c), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "category deleted"})
}

func (h *AdminHandler) productInput(c *gin.Context, req dto.CreateProductRequest) (service.ProductInput, bool) {
	cents, err := dto.ParseCents(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("price must be a decimal amount", nil))
		return service.ProductInput{}, false
	}
	cid, err := uuid.Parse(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("category_id must be a uuid", nil))
		return service.ProductInput{}, false
	}
	return service.ProductInput{
		Name:           req.Name,
		Description:    req.Description,
		PriceCents:     cents,
		ImageURL:       req.ImageURL,
		InventoryCount: req.InventoryCount,
		CategoryID:     cid,
	}, true
}
