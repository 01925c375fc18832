package repositories

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mobstermerch/storefront/app/models"
)

func TestPaymentUpsertByOrderID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentRepository(db)
	orderRepo := NewOrderRepository(db)

	user := models.User{Name: "Payer", Email: "payer@test.local", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	order := &models.Order{
		UserID:        user.ID,
		Total:         decimal.NewFromInt(900),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodGateway,
	}
	if err := orderRepo.CreateWithUniqueCode(testCtx, db, order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	first := &models.Payment{
		OrderID:     order.ID,
		Amount:      order.Total,
		Method:      "Midtrans Snap",
		Status:      models.PaymentStatusPending,
		RedirectURL: "https://pay.example/session-1",
	}
	if err := repo.UpsertByOrderID(testCtx, db, first); err != nil {
		t.Fatalf("first upsert returned error: %v", err)
	}

	// Retrying initiate must overwrite, not stack a second row.
	second := &models.Payment{
		OrderID:     order.ID,
		Amount:      order.Total,
		Method:      "Midtrans Snap",
		Status:      models.PaymentStatusPending,
		RedirectURL: "https://pay.example/session-2",
	}
	if err := repo.UpsertByOrderID(testCtx, db, second); err != nil {
		t.Fatalf("second upsert returned error: %v", err)
	}

	var count int64
	if err := db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one payment row per order, got %d", count)
	}

	current, err := repo.FindByOrderID(testCtx, order.ID)
	if err != nil {
		t.Fatalf("FindByOrderID returned error: %v", err)
	}
	if current.RedirectURL != "https://pay.example/session-2" {
		t.Errorf("expected the latest redirect URL, got %s", current.RedirectURL)
	}
}
