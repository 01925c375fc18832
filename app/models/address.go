package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address holds one shipping address per user; submitting again
// overwrites the existing row (upsert on the unique user index).
type Address struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Line1     string    `gorm:"type:text;not null" json:"line1"`
	Line2     string    `gorm:"type:text" json:"line2"`
	City      string    `gorm:"size:100;not null" json:"city"`
	State     string    `gorm:"size:100" json:"state"`
	PostCode  string    `gorm:"size:10;not null" json:"post_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
