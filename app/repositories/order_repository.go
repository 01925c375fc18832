package repositories

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/mobstermerch/storefront/app/models"
	"gorm.io/gorm"
)

const (
	orderCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderCodeLength   = 6

	// After this many duplicate-key collisions the generator falls back
	// to a longer code instead of looping forever.
	orderCodeMaxAttempts = 5
	orderCodeFallbackLen = 10
)

type OrderRepository interface {
	// CreateWithUniqueCode fills in a fresh public order code and inserts
	// the order inside tx. Uniqueness is enforced by the database
	// constraint: a duplicate-key error triggers regeneration rather
	// than a check-then-insert race.
	CreateWithUniqueCode(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	FindByCode(ctx context.Context, orderCode string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	GetAll(ctx context.Context, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID, status string) error
	UpdatePaymentStatusAndOrderStatus(ctx context.Context, tx *gorm.DB, orderID, paymentStatus, orderStatus string) error
	SetStockReduced(ctx context.Context, tx *gorm.DB, orderID string, reduced bool) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func GenerateOrderCode(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	for i, b := range buf {
		buf[i] = orderCodeAlphabet[int(b)%len(orderCodeAlphabet)]
	}
	return string(buf)
}

func (r *gormOrderRepository) CreateWithUniqueCode(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	for attempt := 0; attempt < orderCodeMaxAttempts; attempt++ {
		order.OrderCode = GenerateOrderCode(orderCodeLength)
		err := tx.WithContext(ctx).Create(order).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// Collision on the order_code unique index; roll a new one.
		order.ID = ""
	}

	order.OrderCode = GenerateOrderCode(orderCodeFallbackLen)
	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order after code collisions: %w", err)
	}
	return nil
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("Address").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("Address").
		First(&order, "order_code = ?", orderCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) GetAll(ctx context.Context, status string) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("User").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID, status string) error {
	return tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}

func (r *gormOrderRepository) UpdatePaymentStatusAndOrderStatus(ctx context.Context, tx *gorm.DB, orderID, paymentStatus, orderStatus string) error {
	return tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"payment_status": paymentStatus,
		"status":         orderStatus,
		"updated_at":     time.Now(),
	}).Error
}

func (r *gormOrderRepository) SetStockReduced(ctx context.Context, tx *gorm.DB, orderID string, reduced bool) error {
	return tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("stock_reduced", reduced).Error
}
