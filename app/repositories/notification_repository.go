package repositories

import (
	"context"

	"github.com/mobstermerch/storefront/app/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error
	FindForAdmin(ctx context.Context) ([]models.Notification, error)
	FindForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkReadForUser(ctx context.Context, id, userID string) error
	CountUnreadForAdmin(ctx context.Context) (int64, error)
}

type gormNotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{db: db}
}

func (r *gormNotificationRepository) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	return tx.WithContext(ctx).Create(notification).Error
}

func (r *gormNotificationRepository) FindForAdmin(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("for_admin = ?", true).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *gormNotificationRepository) FindForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("for_admin = ? AND user_id = ?", false, userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *gormNotificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

// MarkReadForUser only touches the caller's own customer notifications;
// admin-inbox rows are out of reach.
func (r *gormNotificationRepository) MarkReadForUser(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND for_admin = ?", id, userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormNotificationRepository) CountUnreadForAdmin(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("for_admin = ? AND is_read = ?", true, false).
		Count(&count).Error
	return count, err
}
