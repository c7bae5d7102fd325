package handlers

import (
	"net/http"

	"github.com/muss3ab/tsh/internal/dto"
	"github.com/muss3ab/tsh/internal/middleware"
	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultOrderPageSize = 10

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		log:    log,
	}
}

// ListOrders godoc
// @Summary Order history
// @Description Placed orders for the current user, newest first; the active cart is excluded
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status (pending, completed, cancelled)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.OrderListResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var f service.OrderListFilter
	f.Limit, f.Offset = pageParams(c, defaultOrderPageSize)

	if raw := c.Query("status"); raw != "" {
		st := models.OrderStatus(raw)
		switch st {
		case models.OrderStatusPending, models.OrderStatusCompleted, models.OrderStatusCancelled:
			f.Status = &st
		default:
			c.JSON(http.StatusBadRequest, dto.NewValidationError("status must be pending, completed or cancelled", nil))
			return
		}
	}

	orders, total, err := h.orders.ListOrders(middleware.ServiceContext(c), f)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, dto.ToOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{
		Data: out,
		Meta: dto.ListMeta{Total: total, Limit: f.Limit, Offset: f.Offset},
	})
}

// GetOrder godoc
// @Summary Order details
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(middleware.ServiceContext(c), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
