package models

import "time"

const (
	SettingPaymentMethod = "payment_method"
)

type Setting struct {
	Key       string    `gorm:"size:100;not null;primary_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
