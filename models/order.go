package models

import "time"

// OrderStatus is the fulfilment state of a marketplace order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// CanTransitionTo reports whether an order in status s may move to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"not null;index" json:"user_id"`
	ProductID       uint          `gorm:"not null;index" json:"product_id"`
	OrderQuantity   int           `gorm:"column:order_quantity;not null" json:"order_quantity"`
	UnitPrice       float64       `gorm:"column:unit_price;type:decimal(15,2);not null" json:"unit_price"`
	TotalPrice      float64       `gorm:"column:total_price;type:decimal(15,2);not null" json:"total_price"`
	CustomerName    string        `gorm:"column:customer_name;size:100;not null" json:"customer_name"`
	CustomerPhone   string        `gorm:"column:customer_phone;size:20;not null" json:"customer_phone"`
	CustomerEmail   *string       `gorm:"column:customer_email;size:191" json:"customer_email,omitempty"`
	DeliveryAddress string        `gorm:"column:delivery_address;type:text;not null" json:"delivery_address"`
	Notes           *string       `gorm:"type:text" json:"notes,omitempty"`
	PaymentMethod   string        `gorm:"column:payment_method;size:50;default:'cash_on_delivery'" json:"payment_method"`
	OrderStatus     OrderStatus   `gorm:"column:order_status;type:enum('pending','confirmed','processing','shipped','delivered','cancelled');default:'pending';index" json:"order_status"`
	PaymentStatus   PaymentStatus `gorm:"column:payment_status;type:enum('pending','paid');default:'pending'" json:"payment_status"`
	ConfirmedBy     *int64        `gorm:"column:confirmed_by" json:"confirmed_by,omitempty"`
	ConfirmedAt     *time.Time    `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Relations
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Order) TableName() string {
	return "product_orders"
}
