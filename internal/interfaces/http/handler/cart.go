package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/sheeto/backend/internal/application/cart"
	"github.com/sheeto/backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart API endpoints. The cart is addressed by the
// session cookie, so no authentication is required.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes mounts the cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
	rg.POST("/items", h.AddItem)
	rg.PUT("/items/:product_id", h.UpdateItem)
	rg.DELETE("/items/:product_id", h.RemoveItem)
	rg.DELETE("", h.Clear)
}

// Get returns the session's cart, refreshed against the live catalog
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.Get(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem puts a product in the cart, merging with an existing line
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), middleware.GetCartSession(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateItem sets a line's quantity. Zero or negative removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), middleware.GetCartSession(c), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem drops a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), middleware.GetCartSession(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear empties the session's cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), middleware.GetCartSession(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
