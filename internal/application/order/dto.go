package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheeto/backend/internal/domain/order"
	"github.com/sheeto/backend/internal/domain/shared"
)

// ListOrdersRequest carries paging and status narrowing for order lists
type ListOrdersRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
}

// UpdateStatusRequest represents an admin request to move an order to a
// new fulfilment status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ItemResponse represents an order line in API responses
type ItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CustomerInfoResponse represents the delivery contact on an order
type CustomerInfoResponse struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	Address  string `json:"address"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID            `json:"id"`
	OrderNumber   string               `json:"order_number"`
	Items         []ItemResponse       `json:"items"`
	ItemsTotal    decimal.Decimal      `json:"items_total"`
	ShippingCost  decimal.Decimal      `json:"shipping_cost"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
	PaymentMethod string               `json:"payment_method"`
	Status        string               `json:"status"`
	CustomerInfo  CustomerInfoResponse `json:"customer_info"`
	PlacedAt      time.Time            `json:"placed_at"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Subtotal:  item.Subtotal(),
		})
	}

	return &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Items:         items,
		ItemsTotal:    o.ItemsTotal,
		ShippingCost:  o.ShippingCost,
		TotalPrice:    o.TotalPrice,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		CustomerInfo: CustomerInfoResponse{
			FullName: o.CustomerInfo.FullName,
			Phone:    o.CustomerInfo.Phone,
			Province: o.CustomerInfo.Province,
			Address:  o.CustomerInfo.Address,
		},
		PlacedAt: o.PlacedAt,
	}
}

// ToOrderPage converts a page of domain orders to response form
func ToOrderPage(page shared.Paginated[*order.Order]) *shared.Paginated[*OrderResponse] {
	items := make([]*OrderResponse, 0, len(page.Items))
	for _, o := range page.Items {
		items = append(items, ToOrderResponse(o))
	}
	result := shared.Paginated[*OrderResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	return &result
}
