package order

import (
	"crypto/rand"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sheeto/backend/internal/domain/shared"
)

// Status represents the fulfilment state of an order
type Status string

const (
	StatusProcessing Status = "processing"
	StatusDelivered  Status = "delivered"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is one of the enumerated values
func (s Status) IsValid() bool {
	switch s {
	case StatusProcessing, StatusDelivered, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Fulfilment is driven entirely by manual admin action, so every transition
// between valid statuses is allowed, including moving a delivered or
// cancelled order back to processing as a correction path. Tighten this to
// a directed graph if the business ever requires it.
func (s Status) CanTransitionTo(target Status) bool {
	return s.IsValid() && target.IsValid()
}

// PaymentMethod represents how the customer pays for an order
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentElectronic     PaymentMethod = "electronic"
)

// IsValid checks if the payment method is one of the enumerated values
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCashOnDelivery || m == PaymentElectronic
}

// IsOperable returns true if orders can currently be placed with this
// method. Electronic payment is displayed to customers but not yet wired to
// a gateway, so only cash on delivery is accepted.
func (m PaymentMethod) IsOperable() bool {
	return m == PaymentCashOnDelivery
}

// Provinces is the fixed set of delivery regions
var Provinces = []string{
	"بغداد", "البصرة", "نينوى", "أربيل", "النجف", "كربلاء", "ذي قار", "بابل",
	"الأنبار", "كركوك", "ديالى", "المثنى", "القادسية", "ميسان", "واسط", "صلاح الدين", "دهوك", "السليمانية",
}

// IsKnownProvince reports whether the label is a deliverable region
func IsKnownProvince(province string) bool {
	for _, p := range Provinces {
		if p == province {
			return true
		}
	}
	return false
}

// CustomerInfo is the delivery contact captured at checkout
type CustomerInfo struct {
	FullName string `gorm:"type:varchar(200);not null" json:"full_name"`
	Phone    string `gorm:"type:varchar(30);not null" json:"phone"`
	Province string `gorm:"type:varchar(100);not null" json:"province"`
	Address  string `gorm:"type:text;not null" json:"address"`
}

// Validate checks the customer info against the checkout form rules.
// The returned error names the offending field.
func (c CustomerInfo) Validate() error {
	if utf8.RuneCountInString(c.FullName) < 3 {
		return shared.NewDomainError("INVALID_FULL_NAME", "Full name must be at least 3 characters")
	}
	if utf8.RuneCountInString(c.Phone) < 10 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be at least 10 digits")
	}
	if c.Province == "" {
		return shared.NewDomainError("INVALID_PROVINCE", "Province is required")
	}
	if !IsKnownProvince(c.Province) {
		return shared.NewDomainError("INVALID_PROVINCE", "Province is not a deliverable region")
	}
	if utf8.RuneCountInString(c.Address) < 5 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address must be at least 5 characters")
	}
	return nil
}

// Item is a line of an order: a snapshot of the purchased product. It is
// what the receipt shows forever after, independent of later catalog edits.
type Item struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Name      string          `gorm:"type:varchar(200);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Image     string          `gorm:"type:text" json:"image"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// Subtotal returns price * quantity for this line
func (i *Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is an immutable record of a completed checkout. Totals are computed
// once at creation and never recomputed; only the status mutates afterwards,
// and orders are never deleted.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items         []Item          `gorm:"foreignKey:OrderID"`
	ItemsTotal    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShippingCost  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(30);not null"`
	Status        Status          `gorm:"type:varchar(20);not null;default:'processing';index"`
	CustomerInfo  CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_"`
	PlacedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// New creates a new order from checkout inputs. Items must already be
// snapshots; the items total plus shipping becomes the immutable total.
func New(userID uuid.UUID, items []Item, shippingCost decimal.Decimal, paymentMethod PaymentMethod, info CustomerInfo) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if !paymentMethod.IsOperable() {
		return nil, shared.NewDomainError("PAYMENT_METHOD_UNAVAILABLE", "Electronic payment is not available yet")
	}
	if shippingCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING", "Shipping cost cannot be negative")
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       NewOrderNumber(),
		UserID:            userID,
		Items:             make([]Item, 0, len(items)),
		ShippingCost:      shippingCost,
		PaymentMethod:     paymentMethod,
		Status:            StatusProcessing,
		CustomerInfo:      info,
		PlacedAt:          time.Now(),
	}

	itemsTotal := decimal.Zero
	for _, item := range items {
		item.ID = uuid.New()
		item.OrderID = o.ID
		o.Items = append(o.Items, item)
		itemsTotal = itemsTotal.Add(item.Subtotal())
	}
	o.ItemsTotal = itemsTotal
	o.TotalPrice = itemsTotal.Add(shippingCost)

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// UpdateStatus moves the order to a new fulfilment status (admin action)
func (o *Order) UpdateStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Status transition not allowed")
	}
	if o.Status == target {
		return nil
	}

	oldStatus := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, target))

	return nil
}

// TotalQuantity returns the sum of all item quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber generates a short, human-shareable order reference.
// Nine characters over a 36-symbol alphabet keeps collisions negligible at
// this store's volume; uniqueness is still enforced by the database index.
func NewOrderNumber() string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to a UUID-derived reference rather than failing checkout.
		u := uuid.New().String()
		return "ORD" + u[:6]
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return string(buf)
}
