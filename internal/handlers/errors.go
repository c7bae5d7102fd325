package handlers

import (
	"errors"
	"net/http"

	"github.com/muss3ab/tsh/internal/dto"
	"github.com/muss3ab/tsh/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps service-layer sentinels onto the HTTP error
// envelope. Anything unmapped is a 500 with the detail logged, not leaked.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	var insufficient *service.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusBadRequest, dto.NewInvalidStateError(insufficient.Error()))
		return
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("authentication required"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("access denied"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid email or password"))
	case errors.Is(err, service.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, dto.NewRateLimitedError("too many login attempts, try again shortly"))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, dto.NewConflictError("email is already registered"))
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("product not found"))
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("category not found"))
	case errors.Is(err, service.ErrParentNotFound):
		c.JSON(http.StatusBadRequest, dto.NewInvalidStateError("parent category not found"))
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("order not found"))
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("cart item not found"))
	case errors.Is(err, service.ErrQuantityInvalid):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("quantity must be at least 1", nil))
	case errors.Is(err, service.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, dto.NewInvalidStateError("cart is empty"))
	case errors.Is(err, service.ErrAlreadyInWishlist):
		c.JSON(http.StatusConflict, dto.NewConflictError("product is already in the wishlist"))
	case errors.Is(err, service.ErrNotInWishlist):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("product is not in the wishlist"))
	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusConflict, dto.NewConflictError("slug is already in use"))
	case errors.Is(err, service.ErrCategoryInUse):
		c.JSON(http.StatusConflict, dto.NewConflictError("category has children or products"))
	case errors.Is(err, service.ErrCategoryCycle):
		c.JSON(http.StatusBadRequest, dto.NewInvalidStateError("category parent would create a cycle"))
	default:
		log.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError("internal server error"))
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
}
