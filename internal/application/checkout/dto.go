package checkout

import (
	orderapp "github.com/sheeto/backend/internal/application/order"
)

// PlaceOrderRequest represents the checkout form
type PlaceOrderRequest struct {
	PaymentMethod string              `json:"payment_method" binding:"required"`
	CustomerInfo  CustomerInfoRequest `json:"customer_info" binding:"required"`
}

// CustomerInfoRequest carries the delivery contact from the checkout form
type CustomerInfoRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Province string `json:"province" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

// PlaceOrderResponse is the checkout receipt. Warnings carry non-fatal
// stock adjustment notices; the order itself is already placed.
type PlaceOrderResponse struct {
	Order    *orderapp.OrderResponse `json:"order"`
	Warnings []string                `json:"warnings,omitempty"`
}
