package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/mobstermerch/storefront/app/models"
	"gorm.io/gorm"
)

type RefundRepository interface {
	Create(ctx context.Context, tx *gorm.DB, refund *models.Refund) error
	Update(ctx context.Context, tx *gorm.DB, refundID, status, providerRefundID string) error
	FindByOrderID(ctx context.Context, orderID string) ([]models.Refund, error)
	FindByProviderRefundID(ctx context.Context, providerRefundID string) (*models.Refund, error)
}

type gormRefundRepository struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) RefundRepository {
	return &gormRefundRepository{db: db}
}

func (r *gormRefundRepository) Create(ctx context.Context, tx *gorm.DB, refund *models.Refund) error {
	return tx.WithContext(ctx).Create(refund).Error
}

func (r *gormRefundRepository) Update(ctx context.Context, tx *gorm.DB, refundID, status, providerRefundID string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if providerRefundID != "" {
		updates["provider_refund_id"] = providerRefundID
	}
	return tx.WithContext(ctx).Model(&models.Refund{}).Where("id = ?", refundID).Updates(updates).Error
}

func (r *gormRefundRepository) FindByOrderID(ctx context.Context, orderID string) ([]models.Refund, error) {
	var refunds []models.Refund
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at DESC").Find(&refunds).Error
	if err != nil {
		return nil, err
	}
	return refunds, nil
}

func (r *gormRefundRepository) FindByProviderRefundID(ctx context.Context, providerRefundID string) (*models.Refund, error) {
	var refund models.Refund
	err := r.db.WithContext(ctx).First(&refund, "provider_refund_id = ?", providerRefundID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refund, nil
}
