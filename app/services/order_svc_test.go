package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/mobstermerch/storefront/app/models"
)

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusPaid, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusPending, models.OrderStatusDelivered, false},
		{models.OrderStatusPaid, models.OrderStatusShipped, true},
		{models.OrderStatusPaid, models.OrderStatusCancelled, true},
		{models.OrderStatusPaid, models.OrderStatusPending, false},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, true},
		{models.OrderStatusShipped, models.OrderStatusPaid, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPaid, false},
	}

	for _, tt := range tests {
		if got := transitionAllowed(tt.from, tt.to); got != tt.want {
			t.Errorf("transitionAllowed(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func newTestOrder(t *testing.T) (*OrderService, testRepos, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewOrderService(db, repos.orders, repos.products, repos.notifications)
	return svc, repos, db
}

// seedOrder writes an order with one line of qty 2 against the given
// product, bypassing checkout.
func seedOrder(t *testing.T, db *gorm.DB, repos testRepos, userID string, product *models.Product) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:        userID,
		Total:         product.Price.Mul(decimalTwo),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodManual,
	}
	if err := repos.orders.CreateWithUniqueCode(testCtx, db, order); err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	items := []models.OrderItem{{
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Qty:         2,
		Price:       product.Price,
		Subtotal:    product.Price.Mul(decimalTwo),
	}}
	if err := repos.orderItems.BulkCreate(testCtx, db, items); err != nil {
		t.Fatalf("failed to seed order items: %v", err)
	}
	return order
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc, repos, db := newTestOrder(t)

	user := createTestUser(t, db, "lifecycle@test.local")
	product := createTestProduct(t, db, "Capo Tee", 450, 10)
	order := seedOrder(t, db, repos, user.ID, product)

	t.Run("pending to paid decrements stock once", func(t *testing.T) {
		if err := svc.UpdateStatus(testCtx, order.ID, models.OrderStatusPaid); err != nil {
			t.Fatalf("UpdateStatus returned error: %v", err)
		}
		if stock := productStock(t, db, product.ID); stock != 8 {
			t.Errorf("expected stock 8, got %d", stock)
		}
	})

	t.Run("paid to shipped leaves stock alone", func(t *testing.T) {
		if err := svc.UpdateStatus(testCtx, order.ID, models.OrderStatusShipped); err != nil {
			t.Fatalf("UpdateStatus returned error: %v", err)
		}
		if stock := productStock(t, db, product.ID); stock != 8 {
			t.Errorf("expected stock still 8, got %d", stock)
		}
	})

	t.Run("shipped to delivered completes the lifecycle", func(t *testing.T) {
		if err := svc.UpdateStatus(testCtx, order.ID, models.OrderStatusDelivered); err != nil {
			t.Fatalf("UpdateStatus returned error: %v", err)
		}
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		err := svc.UpdateStatus(testCtx, order.ID, models.OrderStatusCancelled)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("each transition notified the customer", func(t *testing.T) {
		notifications, err := repos.notifications.FindForUser(testCtx, user.ID)
		if err != nil {
			t.Fatalf("FindForUser returned error: %v", err)
		}
		if len(notifications) != 3 {
			t.Errorf("expected 3 notifications, got %d", len(notifications))
		}
	})
}

func TestCancelRestocks(t *testing.T) {
	svc, repos, db := newTestOrder(t)

	user := createTestUser(t, db, "restock@test.local")
	product := createTestProduct(t, db, "Enforcer Hoodie", 999, 6)
	order := seedOrder(t, db, repos, user.ID, product)

	if err := svc.UpdateStatus(testCtx, order.ID, models.OrderStatusPaid); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if stock := productStock(t, db, product.ID); stock != 4 {
		t.Fatalf("expected stock 4 after paid, got %d", stock)
	}

	if err := svc.UpdateStatus(testCtx, order.ID, models.OrderStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if stock := productStock(t, db, product.ID); stock != 6 {
		t.Errorf("expected stock restored to 6 after cancel, got %d", stock)
	}
}

func TestCancelBeforePaymentDoesNotRestock(t *testing.T) {
	svc, repos, db := newTestOrder(t)

	user := createTestUser(t, db, "cancel-pending@test.local")
	product := createTestProduct(t, db, "Wire Tap Pin", 150, 6)
	order := seedOrder(t, db, repos, user.ID, product)

	if err := svc.UpdateStatus(testCtx, order.ID, models.OrderStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	// Stock was never decremented, so cancelling must not inflate it.
	if stock := productStock(t, db, product.ID); stock != 6 {
		t.Errorf("expected stock unchanged at 6, got %d", stock)
	}
}

func TestCustomerRequests(t *testing.T) {
	svc, repos, db := newTestOrder(t)

	user := createTestUser(t, db, "requests@test.local")
	product := createTestProduct(t, db, "Heist Map", 250, 3)
	order := seedOrder(t, db, repos, user.ID, product)

	t.Run("cancellation request only files a notification", func(t *testing.T) {
		if err := svc.RequestCancellation(testCtx, user.ID, order.ID, "ordered twice"); err != nil {
			t.Fatalf("RequestCancellation returned error: %v", err)
		}

		reloaded, _ := repos.orders.GetByID(testCtx, order.ID)
		if reloaded.Status != models.OrderStatusPending {
			t.Errorf("expected order untouched, got %s", reloaded.Status)
		}

		admin, err := repos.notifications.FindForAdmin(testCtx)
		if err != nil {
			t.Fatalf("FindForAdmin returned error: %v", err)
		}
		if len(admin) != 1 {
			t.Fatalf("expected 1 admin notification, got %d", len(admin))
		}
		if admin[0].Type != models.NotificationTypeCancelRequest {
			t.Errorf("unexpected notification type %s", admin[0].Type)
		}
	})

	t.Run("requests against someone else's order are rejected", func(t *testing.T) {
		other := createTestUser(t, db, "other@test.local")
		err := svc.RequestRefund(testCtx, other.ID, order.ID, "")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}
