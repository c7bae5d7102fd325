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

type CartHandler struct {
	cart   service.CartService
	orders service.OrderService
	log    *zap.Logger
}

func NewCartHandler(cart service.CartService, orders service.OrderService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		orders: orders,
		log:    log,
	}
}

// GetCart godoc
// @Summary Current cart
// @Description Returns the active cart, creating an empty one when none exists
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cart.GetOrCreateCart(middleware.ServiceContext(c))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

// AddItem godoc
// @Summary Add a product to the cart
// @Description Adding the same product again increases its quantity
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item body dto.AddCartItemRequest true "Product and quantity"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Product not found"
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/cart [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("product_id must be a uuid", nil))
		return
	}

	cart, err := h.cart.AddItem(middleware.ServiceContext(c), productID, req.Quantity)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

// UpdateItem godoc
// @Summary Change a cart line's quantity
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param itemId path string true "Cart item id"
// @Param item body dto.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse "Not the cart owner"
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/cart/{itemId} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cart, err := h.cart.UpdateItem(middleware.ServiceContext(c), itemID, req.Quantity)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

// RemoveItem godoc
// @Summary Remove a cart line
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Param itemId path string true "Cart item id"
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/cart/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}

	cart, err := h.cart.RemoveItem(middleware.ServiceContext(c), itemID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

// Checkout godoc
// @Summary Place the order
// @Description Atomically converts the cart into a pending order, decrementing inventory
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param checkout body dto.CheckoutRequest true "Shipping details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.InvalidStateErrorResponse "Empty cart or insufficient inventory"
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orders.Checkout(middleware.ServiceContext(c), service.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		ShippingPhone:   req.ShippingPhone,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}
