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

type WishlistHandler struct {
	wishlist service.WishlistService
	log      *zap.Logger
}

func NewWishlistHandler(wishlist service.WishlistService, log *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		log:      log,
	}
}

// List godoc
// @Summary Wishlist contents
// @Tags wishlist
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	products, err := h.wishlist.ListWishlist(middleware.ServiceContext(c))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, dto.ToProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Add godoc
// @Summary Add a product to the wishlist
// @Tags wishlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item body dto.AddWishlistRequest true "Product id"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Product not found"
// @Failure 409 {object} dto.ConflictErrorResponse "Already in wishlist"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/wishlist [post]
func (h *WishlistHandler) Add(c *gin.Context) {
	var req dto.AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("product_id must be a uuid", nil))
		return
	}

	if err := h.wishlist.AddToWishlist(middleware.ServiceContext(c), productID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "added to wishlist"})
}

// Remove godoc
// @Summary Remove a product from the wishlist
// @Tags wishlist
// @Security BearerAuth
// @Produce json
// @Param productId path string true "Product id"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Not in wishlist"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/wishlist/{productId} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}

	if err := h.wishlist.RemoveFromWishlist(middleware.ServiceContext(c), productID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "removed from wishlist"})
}
