package repositories

import (
	"context"
	"errors"

	"github.com/mobstermerch/storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddressRepository interface {
	// Upsert keeps one address per user: a second submission overwrites
	// the existing row instead of duplicating it.
	Upsert(ctx context.Context, address *models.Address) error
	FindByUserID(ctx context.Context, userID string) (*models.Address, error)
	FindByID(ctx context.Context, id string) (*models.Address, error)
}

type gormAddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &gormAddressRepository{db: db}
}

func (r *gormAddressRepository) Upsert(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "phone", "line1", "line2", "city", "state", "post_code", "updated_at",
		}),
	}).Create(address).Error
}

func (r *gormAddressRepository) FindByUserID(ctx context.Context, userID string) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).First(&address, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

func (r *gormAddressRepository) FindByID(ctx context.Context, id string) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}
