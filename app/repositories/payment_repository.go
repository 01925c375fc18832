package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/mobstermerch/storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepositoryImpl interface {
	// UpsertByOrderID keeps at most one payment row per order so
	// initiate can be retried safely.
	UpsertByOrderID(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	UpdateStatusTx(ctx context.Context, tx *gorm.DB, paymentID, status string) error
	UpdateStatusAndPayload(ctx context.Context, tx *gorm.DB, paymentID, status, transactionID, rawPayload string) error
}

type gormPaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepositoryImpl {
	return &gormPaymentRepository{db: db}
}

func (r *gormPaymentRepository) UpsertByOrderID(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"amount", "method", "status", "token", "redirect_url", "updated_at",
		}),
	}).Create(payment).Error
}

func (r *gormPaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *gormPaymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *gormPaymentRepository) UpdateStatusTx(ctx context.Context, tx *gorm.DB, paymentID, status string) error {
	return tx.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", paymentID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}

func (r *gormPaymentRepository) UpdateStatusAndPayload(ctx context.Context, tx *gorm.DB, paymentID, status, transactionID, rawPayload string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}
	if rawPayload != "" {
		updates["raw_payload"] = rawPayload
	}
	return tx.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", paymentID).Updates(updates).Error
}
