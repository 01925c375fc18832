package migrations

import (
	"github.com/mobstermerch/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.PaymentVerification{},
		&models.Refund{},
		&models.Notification{},
		&models.Setting{},
	)
}
