package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment tracks one gateway attempt for an order. OrderID is unique so
// initiate can be retried without stacking duplicate rows.
type Payment struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID       string          `gorm:"size:36;not null;uniqueIndex" json:"order_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"amount"`
	Method        string          `gorm:"size:50;not null" json:"method"`
	Status        string          `gorm:"size:20;default:'pending';not null" json:"status"`
	TransactionID string          `gorm:"size:255;index" json:"transaction_id"`
	Token         string          `gorm:"size:255" json:"-"`
	RedirectURL   string          `gorm:"type:text" json:"redirect_url"`
	RawPayload    string          `gorm:"type:text" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

// PaymentVerification is a manually-submitted payment proof awaiting
// admin review.
type PaymentVerification struct {
	ID             string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID        string     `gorm:"size:36;not null;uniqueIndex" json:"order_id"`
	Order          Order      `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	TransactionRef string     `gorm:"size:255;not null" json:"transaction_ref"`
	ScreenshotURL  string     `gorm:"size:255;not null" json:"screenshot_url"`
	AdminNote      string     `gorm:"type:text" json:"admin_note"`
	Status         string     `gorm:"size:20;default:'pending';not null;index" json:"status"`
	ReviewedBy     string     `gorm:"size:36" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (pv *PaymentVerification) BeforeCreate(tx *gorm.DB) (err error) {
	if pv.ID == "" {
		pv.ID = uuid.New().String()
	}
	return
}

const (
	RefundStatusPending   = "pending"
	RefundStatusCompleted = "completed"
	RefundStatusFailed    = "failed"
)

type Refund struct {
	ID               string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	PaymentID        string          `gorm:"size:36;not null;index" json:"payment_id"`
	OrderID          string          `gorm:"size:36;not null;index" json:"order_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"amount"`
	Status           string          `gorm:"size:20;default:'pending';not null" json:"status"`
	ProviderRefundID string          `gorm:"size:255" json:"provider_refund_id"`
	Reason           string          `gorm:"size:255" json:"reason"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (r *Refund) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
