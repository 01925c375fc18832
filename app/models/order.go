package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	PaymentMethodManual  = "manual"
	PaymentMethodGateway = "gateway"
)

type Order struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderCode string `gorm:"size:12;not null;uniqueIndex" json:"order_code"`
	UserID    string `gorm:"size:36;index" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	OrderItems []OrderItem     `json:"order_items,omitempty"`
	Total      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`

	Status        string `gorm:"size:20;default:'pending';not null;index" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending';not null" json:"payment_status"`
	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`

	// StockReduced guards the one-time stock decrement so a status bounced
	// out of and back into a fulfilled state cannot decrement twice.
	StockReduced bool `gorm:"default:false" json:"-"`

	AddressID       string  `gorm:"size:36" json:"address_id"`
	Address         Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	ShippingAddress string  `gorm:"type:text" json:"shipping_address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
