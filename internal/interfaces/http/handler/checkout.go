package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/sheeto/backend/internal/application/checkout"
	"github.com/sheeto/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the checkout endpoint. Placing an order
// requires a signed-in customer; the cart comes from the session cookie.
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// RegisterRoutes mounts the checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.PlaceOrder)
}

// PlaceOrder turns the session's cart into an order. The response may
// carry warnings for lines whose stock could only be partially reserved;
// the order is placed regardless.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Sign in to place an order")
		return
	}

	var req checkoutapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	receipt, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, middleware.GetCartSession(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}
