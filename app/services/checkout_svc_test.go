package services

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func newTestCheckout(t *testing.T) (*CheckoutService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	repos := newTestRepos(db)
	settings := NewSettingsService(repos.settings, newTestRedis(t))

	svc := NewCheckoutService(
		db, repos.cartItems, repos.products, repos.addresses, repos.orders,
		repos.orderItems, repos.payments, settings, nil,
		"mobstermerch@upi", "Mobster Merch",
	)
	return svc, db
}

func TestPrepareCheckoutManual(t *testing.T) {
	svc, db := newTestCheckout(t)

	user := createTestUser(t, db, "manual@test.local")
	product := createTestProduct(t, db, "Omerta Mug", 200, 10)
	addToCart(t, db, user.ID, product.ID, 1)

	preview, err := svc.PrepareCheckout(testCtx, user.ID)
	if err != nil {
		t.Fatalf("PrepareCheckout returned error: %v", err)
	}

	if preview.PaymentMethod != "manual" {
		t.Errorf("expected default payment method manual, got %s", preview.PaymentMethod)
	}
	if got := preview.Total.String(); got != "200" {
		t.Errorf("expected total 200, got %s", got)
	}
	if !strings.HasPrefix(preview.TempRef, "TMP-") {
		t.Errorf("expected temp ref with TMP- prefix, got %s", preview.TempRef)
	}
	if !strings.HasPrefix(preview.UPILink, "upi://pay?") {
		t.Errorf("expected upi://pay link, got %s", preview.UPILink)
	}
	if !strings.Contains(preview.UPILink, "am=200") {
		t.Errorf("expected UPI link amount am=200, got %s", preview.UPILink)
	}
}

func TestPrepareCheckoutGuards(t *testing.T) {
	svc, db := newTestCheckout(t)

	user := createTestUser(t, db, "guards@test.local")

	t.Run("empty cart is rejected", func(t *testing.T) {
		if _, err := svc.PrepareCheckout(testCtx, user.ID); !errors.Is(err, ErrCartEmpty) {
			t.Fatalf("expected ErrCartEmpty, got %v", err)
		}
	})

	t.Run("a line beyond stock aborts the preview", func(t *testing.T) {
		product := createTestProduct(t, db, "Rare Vinyl", 1500, 1)
		addToCart(t, db, user.ID, product.ID, 2)

		_, err := svc.PrepareCheckout(testCtx, user.ID)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if !strings.Contains(err.Error(), "Available: 1, Requested: 2") {
			t.Errorf("expected shortage detail, got %q", err.Error())
		}
	})
}
