package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeOrder         = "order"
	NotificationTypePayment       = "payment"
	NotificationTypeCancelRequest = "cancel_request"
	NotificationTypeRefundRequest = "refund_request"
	NotificationTypeMessage       = "message"
)

// Notification is an in-app message. ForAdmin rows land in the admin
// inbox; the rest belong to UserID.
type Notification struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    *string   `gorm:"size:36;index" json:"user_id,omitempty"`
	OrderID   *string   `gorm:"size:36;index" json:"order_id,omitempty"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	ForAdmin  bool      `gorm:"default:false;index" json:"for_admin"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}
