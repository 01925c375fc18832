package repositories

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/mobstermerch/storefront/app/models"
)

func TestMarkReadForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)

	ownerID := "user-owner"
	otherID := "user-other"

	mine := &models.Notification{
		UserID:  &ownerID,
		Type:    models.NotificationTypeOrder,
		Title:   "Order shipped",
		Message: "Your order is on the way.",
	}
	adminRow := &models.Notification{
		UserID:   &ownerID,
		Type:     models.NotificationTypeCancelRequest,
		Title:    "Cancellation requested",
		Message:  "A customer wants to cancel.",
		ForAdmin: true,
	}
	for _, n := range []*models.Notification{mine, adminRow} {
		if err := repo.Create(testCtx, db, n); err != nil {
			t.Fatalf("failed to seed notification: %v", err)
		}
	}

	t.Run("owner marks own row", func(t *testing.T) {
		if err := repo.MarkReadForUser(testCtx, mine.ID, ownerID); err != nil {
			t.Fatalf("MarkReadForUser returned error: %v", err)
		}
		var reloaded models.Notification
		if err := db.First(&reloaded, "id = ?", mine.ID).Error; err != nil {
			t.Fatalf("failed to reload notification: %v", err)
		}
		if !reloaded.IsRead {
			t.Error("expected notification marked read")
		}
	})

	t.Run("other user cannot touch it", func(t *testing.T) {
		err := repo.MarkReadForUser(testCtx, mine.ID, otherID)
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected ErrRecordNotFound, got %v", err)
		}
	})

	t.Run("admin inbox rows are out of reach", func(t *testing.T) {
		err := repo.MarkReadForUser(testCtx, adminRow.ID, ownerID)
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected ErrRecordNotFound, got %v", err)
		}
		var reloaded models.Notification
		if err := db.First(&reloaded, "id = ?", adminRow.ID).Error; err != nil {
			t.Fatalf("failed to reload notification: %v", err)
		}
		if reloaded.IsRead {
			t.Error("expected admin notification untouched")
		}
	})
}
