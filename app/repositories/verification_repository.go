package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/mobstermerch/storefront/app/models"
	"gorm.io/gorm"
)

type VerificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, verification *models.PaymentVerification) error
	FindByID(ctx context.Context, id string) (*models.PaymentVerification, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.PaymentVerification, error)
	FindPending(ctx context.Context) ([]models.PaymentVerification, error)
	UpdateReview(ctx context.Context, tx *gorm.DB, id, status, adminNote, reviewedBy string) error
}

type gormVerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &gormVerificationRepository{db: db}
}

func (r *gormVerificationRepository) Create(ctx context.Context, tx *gorm.DB, verification *models.PaymentVerification) error {
	return tx.WithContext(ctx).Create(verification).Error
}

func (r *gormVerificationRepository) FindByID(ctx context.Context, id string) (*models.PaymentVerification, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *gormVerificationRepository) FindByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.PaymentVerification, error) {
	return r.find(tx.WithContext(ctx), id)
}

func (r *gormVerificationRepository) find(db *gorm.DB, id string) (*models.PaymentVerification, error) {
	var verification models.PaymentVerification
	err := db.
		Preload("Order").
		Preload("Order.OrderItems").
		First(&verification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &verification, nil
}

func (r *gormVerificationRepository) FindPending(ctx context.Context) ([]models.PaymentVerification, error) {
	var verifications []models.PaymentVerification
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.User").
		Where("status = ?", models.VerificationStatusPending).
		Order("created_at ASC").
		Find(&verifications).Error
	if err != nil {
		return nil, err
	}
	return verifications, nil
}

func (r *gormVerificationRepository) UpdateReview(ctx context.Context, tx *gorm.DB, id, status, adminNote, reviewedBy string) error {
	now := time.Now()
	return tx.WithContext(ctx).Model(&models.PaymentVerification{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"admin_note":  adminNote,
		"reviewed_by": reviewedBy,
		"reviewed_at": now,
		"updated_at":  now,
	}).Error
}
