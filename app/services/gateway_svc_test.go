package services

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"github.com/mobstermerch/storefront/app/models"
)

const testServerKey = "SB-Mid-server-testkey"

func TestMapProviderState(t *testing.T) {
	tests := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		wantPayment       string
		wantOrder         string
		wantOK            bool
	}{
		{"settlement", "settlement", "", models.PaymentStatusSuccess, models.OrderStatusPaid, true},
		{"capture accepted", "capture", "accept", models.PaymentStatusSuccess, models.OrderStatusPaid, true},
		{"capture challenged", "capture", "challenge", models.PaymentStatusFailed, models.OrderStatusCancelled, true},
		{"pending", "pending", "", models.PaymentStatusPending, models.OrderStatusPending, true},
		{"deny", "deny", "", models.PaymentStatusFailed, models.OrderStatusCancelled, true},
		{"expire", "expire", "", models.PaymentStatusFailed, models.OrderStatusCancelled, true},
		{"cancel", "cancel", "", models.PaymentStatusFailed, models.OrderStatusCancelled, true},
		{"refund", "refund", "", models.PaymentStatusRefunded, models.OrderStatusCancelled, true},
		{"partial refund handled upstream", "partial_refund", "", "", "", false},
		{"unknown", "authorize", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, order, ok := mapProviderState(tt.transactionStatus, tt.fraudStatus)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if payment != tt.wantPayment || order != tt.wantOrder {
				t.Errorf("got (%s, %s), want (%s, %s)", payment, order, tt.wantPayment, tt.wantOrder)
			}
		})
	}
}

func newTestGateway(t *testing.T) (*GatewayService, testRepos, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewGatewayService(
		db, repos.orders, repos.payments, repos.refunds, repos.products,
		repos.notifications, snap.Client{}, coreapi.Client{},
		testServerKey, "http://localhost:8080",
	)
	return svc, repos, db
}

// seedGatewayOrder creates a pending gateway order with a pending
// payment row, two units of the product.
func seedGatewayOrder(t *testing.T, db *gorm.DB, repos testRepos, userID string, product *models.Product) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:        userID,
		Total:         product.Price.Mul(decimalTwo),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodGateway,
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

	payment := &models.Payment{
		OrderID: order.ID,
		Amount:  order.Total,
		Method:  "Midtrans Snap",
		Status:  models.PaymentStatusPending,
	}
	if err := repos.payments.UpsertByOrderID(testCtx, db, payment); err != nil {
		t.Fatalf("failed to seed payment: %v", err)
	}
	return order
}

func signPayload(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
	return hex.EncodeToString(sum[:])
}

func TestVerifySignature(t *testing.T) {
	svc, _, _ := newTestGateway(t)

	payload := NotificationPayload{
		OrderID:     "ABC123",
		StatusCode:  "200",
		GrossAmount: "900.00",
	}

	payload.SignatureKey = signPayload("ABC123", "200", "900.00")
	if !svc.VerifySignature(payload) {
		t.Error("expected valid signature to verify")
	}

	payload.SignatureKey = "deadbeef"
	if svc.VerifySignature(payload) {
		t.Error("expected forged signature to fail")
	}
}

func TestHandleWebhookSettlement(t *testing.T) {
	svc, repos, db := newTestGateway(t)

	user := createTestUser(t, db, "webhook@test.local")
	product := createTestProduct(t, db, "Syndicate Tee", 450, 10)
	order := seedGatewayOrder(t, db, repos, user.ID, product)

	payload := NotificationPayload{
		TransactionStatus: "settlement",
		OrderID:           order.OrderCode,
		StatusCode:        "200",
		GrossAmount:       "900.00",
		TransactionID:     "mid-txn-1",
	}
	payload.SignatureKey = signPayload(order.OrderCode, "200", "900.00")

	if err := svc.HandleWebhook(testCtx, payload); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}

	reloaded, _ := repos.orders.GetByID(testCtx, order.ID)
	if reloaded.Status != models.OrderStatusPaid {
		t.Errorf("expected paid order, got %s", reloaded.Status)
	}
	if reloaded.PaymentStatus != models.PaymentStatusSuccess {
		t.Errorf("expected success payment status, got %s", reloaded.PaymentStatus)
	}
	if stock := productStock(t, db, product.ID); stock != 8 {
		t.Errorf("expected stock 8 after settlement, got %d", stock)
	}
	payment, _ := repos.payments.FindByOrderID(testCtx, order.ID)
	if payment.TransactionID != "mid-txn-1" {
		t.Errorf("expected provider transaction id persisted, got %q", payment.TransactionID)
	}

	t.Run("replayed webhook is a no-op", func(t *testing.T) {
		if err := svc.HandleWebhook(testCtx, payload); err != nil {
			t.Fatalf("replay returned error: %v", err)
		}
		if stock := productStock(t, db, product.ID); stock != 8 {
			t.Errorf("expected stock still 8 after replay, got %d", stock)
		}
	})
}

func TestHandleWebhookForgedSignature(t *testing.T) {
	svc, repos, db := newTestGateway(t)

	user := createTestUser(t, db, "forged@test.local")
	product := createTestProduct(t, db, "Decoy Tee", 450, 10)
	order := seedGatewayOrder(t, db, repos, user.ID, product)

	payload := NotificationPayload{
		TransactionStatus: "settlement",
		OrderID:           order.OrderCode,
		StatusCode:        "200",
		GrossAmount:       "900.00",
		SignatureKey:      "forged",
	}

	err := svc.HandleWebhook(testCtx, payload)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	reloaded, _ := repos.orders.GetByID(testCtx, order.ID)
	if reloaded.Status != models.OrderStatusPending {
		t.Errorf("expected order untouched, got %s", reloaded.Status)
	}
	if stock := productStock(t, db, product.ID); stock != 10 {
		t.Errorf("expected stock untouched at 10, got %d", stock)
	}
}

func TestHandleWebhookExpire(t *testing.T) {
	svc, repos, db := newTestGateway(t)

	user := createTestUser(t, db, "expire@test.local")
	product := createTestProduct(t, db, "Alibi Cap", 300, 5)
	order := seedGatewayOrder(t, db, repos, user.ID, product)

	payload := NotificationPayload{
		TransactionStatus: "expire",
		OrderID:           order.OrderCode,
		StatusCode:        "407",
		GrossAmount:       "600.00",
	}
	payload.SignatureKey = signPayload(order.OrderCode, "407", "600.00")

	if err := svc.HandleWebhook(testCtx, payload); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}

	reloaded, _ := repos.orders.GetByID(testCtx, order.ID)
	if reloaded.Status != models.OrderStatusCancelled {
		t.Errorf("expected cancelled order, got %s", reloaded.Status)
	}
	if reloaded.PaymentStatus != models.PaymentStatusFailed {
		t.Errorf("expected failed payment status, got %s", reloaded.PaymentStatus)
	}
	// Pending orders never held stock, so nothing to give back.
	if stock := productStock(t, db, product.ID); stock != 5 {
		t.Errorf("expected stock 5, got %d", stock)
	}
}

func TestReconcileRejectsForeignOrder(t *testing.T) {
	svc, repos, db := newTestGateway(t)

	owner := createTestUser(t, db, "owner@test.local")
	snoop := createTestUser(t, db, "snoop@test.local")
	product := createTestProduct(t, db, "Burner SIM", 150, 5)
	order := seedGatewayOrder(t, db, repos, owner.ID, product)

	if _, err := svc.Reconcile(testCtx, snoop.ID, order.OrderCode); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for another user's order, got %v", err)
	}
	if _, err := svc.Reconcile(testCtx, owner.ID, "NOPE99"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for unknown code, got %v", err)
	}
}

func TestHandleWebhookPartialRefund(t *testing.T) {
	svc, repos, db := newTestGateway(t)

	user := createTestUser(t, db, "partial@test.local")
	product := createTestProduct(t, db, "Getaway Hoodie", 800, 10)
	order := seedGatewayOrder(t, db, repos, user.ID, product)

	settle := NotificationPayload{
		TransactionStatus: "settlement",
		OrderID:           order.OrderCode,
		StatusCode:        "200",
		GrossAmount:       "1600.00",
	}
	settle.SignatureKey = signPayload(order.OrderCode, "200", "1600.00")
	if err := svc.HandleWebhook(testCtx, settle); err != nil {
		t.Fatalf("settlement webhook returned error: %v", err)
	}
	if stock := productStock(t, db, product.ID); stock != 8 {
		t.Fatalf("expected stock 8 after settlement, got %d", stock)
	}

	partial := NotificationPayload{
		TransactionStatus: "partial_refund",
		OrderID:           order.OrderCode,
		StatusCode:        "200",
		GrossAmount:       "1600.00",
	}
	partial.SignatureKey = signPayload(order.OrderCode, "200", "1600.00")
	if err := svc.HandleWebhook(testCtx, partial); err != nil {
		t.Fatalf("partial refund webhook returned error: %v", err)
	}

	reloaded, _ := repos.orders.GetByID(testCtx, order.ID)
	if reloaded.Status != models.OrderStatusPaid {
		t.Errorf("expected order still paid after partial refund, got %s", reloaded.Status)
	}
	if reloaded.PaymentStatus != models.PaymentStatusSuccess {
		t.Errorf("expected payment status still success, got %s", reloaded.PaymentStatus)
	}
	if stock := productStock(t, db, product.ID); stock != 8 {
		t.Errorf("expected stock untouched at 8, got %d", stock)
	}
}

func TestHandleWebhookRefundCallback(t *testing.T) {
	svc, repos, db := newTestGateway(t)

	user := createTestUser(t, db, "refund-cb@test.local")
	product := createTestProduct(t, db, "Loot Bag", 700, 5)
	order := seedGatewayOrder(t, db, repos, user.ID, product)

	payment, _ := repos.payments.FindByOrderID(testCtx, order.ID)
	refund := &models.Refund{
		PaymentID:        payment.ID,
		OrderID:          order.ID,
		Amount:           order.Total,
		Status:           models.RefundStatusPending,
		ProviderRefundID: "ref-key-9",
	}
	if err := repos.refunds.Create(testCtx, db, refund); err != nil {
		t.Fatalf("failed to seed refund: %v", err)
	}

	payload := NotificationPayload{
		TransactionStatus: "refund",
		OrderID:           order.OrderCode,
		StatusCode:        "200",
		GrossAmount:       "1400.00",
		RefundKey:         "ref-key-9",
		RefundAmount:      "1400.00",
	}
	payload.SignatureKey = signPayload(order.OrderCode, "200", "1400.00")

	if err := svc.HandleWebhook(testCtx, payload); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}

	refunds, _ := repos.refunds.FindByOrderID(testCtx, order.ID)
	if len(refunds) != 1 {
		t.Fatalf("expected 1 refund, got %d", len(refunds))
	}
	if refunds[0].Status != models.RefundStatusCompleted {
		t.Errorf("expected completed refund, got %s", refunds[0].Status)
	}
}
