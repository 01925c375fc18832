package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Slug           string          `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Stock          int             `gorm:"not null" json:"stock"`
	CategoryID     *string         `gorm:"size:36;index" json:"category_id"`
	Category       *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ImageURL       string          `gorm:"size:255" json:"image_url"`
	ImagePublicID  string          `gorm:"size:255" json:"-"`
	AdditionalInfo string          `gorm:"type:text" json:"additional_info,omitempty"`
	IsDeleted      bool            `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
