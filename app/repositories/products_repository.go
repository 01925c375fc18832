package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/mobstermerch/storefront/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	GetPaginated(ctx context.Context, keyword, categoryID string, limit, offset int) ([]models.Product, int64, error)
	GetAllIncludingDeleted(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	// DecrementStock performs the atomic conditional decrement. It
	// reports false when stock was insufficient, without error.
	DecrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) (bool, error)
	IncrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) error
}

type gormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) GetPaginated(ctx context.Context, keyword, categoryID string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{}).
		Preload("Category").
		Where("is_deleted = ?", false)

	if keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *gormProductRepository) GetAllIncludingDeleted(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Preload("Category").Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *gormProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, "slug = ? AND is_deleted = ?", slug, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *gormProductRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_deleted", true).Error
}

func (r *gormProductRepository) Restore(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_deleted", false).Error
}

func (r *gormProductRepository) DecrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) (bool, error) {
	res := tx.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormProductRepository) IncrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) error {
	return tx.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}
