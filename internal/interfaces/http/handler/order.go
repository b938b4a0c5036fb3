package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/sheeto/backend/internal/application/order"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// RegisterRoutes mounts the customer order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListMine)
	rg.GET("/:order_number", h.GetByNumber)
}

// RegisterAdminRoutes mounts the fulfilment routes
func (h *OrderHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.ListAll)
	rg.PUT("/orders/:id/status", h.UpdateStatus)
}

// ListMine returns the authenticated customer's order history
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to view your orders")
		return
	}

	var req orderapp.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.orderService.ListByUser(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByNumber returns a single order by its public order number.
// Customers only see their own orders; admins see any.
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to view your orders")
		return
	}

	order, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("order_number"), userID, isAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListAll returns every order, optionally narrowed by status
func (h *OrderHandler) ListAll(c *gin.Context) {
	var req orderapp.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.orderService.ListAll(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateStatus moves an order to a new fulfilment status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
