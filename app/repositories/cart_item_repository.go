package repositories

import (
	"context"
	"errors"

	"github.com/mobstermerch/storefront/app/models"
	"gorm.io/gorm"
)

type CartItemRepositoryImpl interface {
	GetByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	GetByID(ctx context.Context, id string) (*models.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQty(ctx context.Context, id string, qty int) error
	Delete(ctx context.Context, id string) error
	DeleteByUserAndProduct(ctx context.Context, userID, productID string) error
	ClearCart(ctx context.Context, tx *gorm.DB, userID string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type gormCartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &gormCartItemRepository{db: db}
}

func (r *gormCartItemRepository) GetByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormCartItemRepository) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormCartItemRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).First(&item, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormCartItemRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormCartItemRepository) UpdateQty(ctx context.Context, id string, qty int) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Update("qty", qty).Error
}

func (r *gormCartItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id).Error
}

func (r *gormCartItemRepository) DeleteByUserAndProduct(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "user_id = ? AND product_id = ?", userID, productID).Error
}

func (r *gormCartItemRepository) ClearCart(ctx context.Context, tx *gorm.DB, userID string) error {
	return tx.WithContext(ctx).Delete(&models.CartItem{}, "user_id = ?", userID).Error
}

func (r *gormCartItemRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
