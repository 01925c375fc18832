package services

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/utils/format"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NotificationPayload is what Midtrans posts to the webhook. A refund
// callback is distinguished by a non-empty refund key.
type NotificationPayload struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	Currency          string `json:"currency"`
	RefundKey         string `json:"refund_key,omitempty"`
	RefundAmount      string `json:"refund_amount,omitempty"`
}

// GatewayService adapts the hosted-checkout provider: initiate,
// reconcile by polling, webhook callbacks and refunds.
type GatewayService struct {
	db               *gorm.DB
	orderRepo        repositories.OrderRepository
	paymentRepo      repositories.PaymentRepositoryImpl
	refundRepo       repositories.RefundRepository
	productRepo      repositories.ProductRepositoryImpl
	notificationRepo repositories.NotificationRepository

	snapClient snap.Client
	coreClient coreapi.Client
	serverKey  string
	appURL     string
}

func NewGatewayService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepositoryImpl,
	refundRepo repositories.RefundRepository,
	productRepo repositories.ProductRepositoryImpl,
	notificationRepo repositories.NotificationRepository,
	snapClient snap.Client,
	coreClient coreapi.Client,
	serverKey, appURL string,
) *GatewayService {
	return &GatewayService{
		db:               db,
		orderRepo:        orderRepo,
		paymentRepo:      paymentRepo,
		refundRepo:       refundRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		snapClient:       snapClient,
		coreClient:       coreClient,
		serverKey:        serverKey,
		appURL:           appURL,
	}
}

// CreateHostedCheckout starts a hosted checkout session for the order
// and returns the provider token and redirect URL. Item prices are
// rounded to whole units for the provider; a rounding mismatch against
// the gross amount is absorbed by an adjustment line.
func (s *GatewayService) CreateHostedCheckout(order *models.Order, items []models.OrderItem) (string, string, error) {
	var details []midtrans.ItemDetails
	itemsTotal := int64(0)
	for _, item := range items {
		name := item.ProductName
		if len(name) > 50 {
			name = name[:50]
		}
		unitPrice := item.Price.Round(0).IntPart()
		details = append(details, midtrans.ItemDetails{
			ID:    item.ProductID,
			Name:  name,
			Price: unitPrice,
			Qty:   int32(item.Qty),
		})
		itemsTotal += unitPrice * int64(item.Qty)
	}

	grossAmount := order.Total.Round(0).IntPart()
	if diff := grossAmount - itemsTotal; diff != 0 {
		details = append(details, midtrans.ItemDetails{
			ID:    "ADJUSTMENT",
			Name:  "Rounding adjustment",
			Price: diff,
			Qty:   1,
		})
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderCode,
			GrossAmt: grossAmount,
		},
		Items:           &details,
		EnabledPayments: snap.AllSnapPaymentType,
		Callbacks: &snap.Callbacks{
			Finish: s.appURL + "/checkout/finish?order_code=" + order.OrderCode,
		},
	}

	snapResp, errMidtrans := s.snapClient.CreateTransaction(snapReq)
	if errMidtrans != nil {
		return "", "", fmt.Errorf("gateway CreateTransaction failed: %w", errMidtrans.RawError)
	}
	if snapResp == nil || snapResp.RedirectURL == "" || snapResp.Token == "" {
		return "", "", fmt.Errorf("gateway returned invalid response (missing redirect URL or token)")
	}
	return snapResp.Token, snapResp.RedirectURL, nil
}

// Initiate returns the redirect URL for an existing pending gateway
// order, reusing the stored session when one exists. Safe to retry.
func (s *GatewayService) Initiate(ctx context.Context, userID, orderCode string) (string, error) {
	order, err := s.orderRepo.FindByCode(ctx, orderCode)
	if err != nil {
		return "", fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return "", ErrOrderNotFound
	}
	if order.PaymentMethod != models.PaymentMethodGateway || order.Status != models.OrderStatusPending {
		return "", fmt.Errorf("order %s is not awaiting gateway payment", orderCode)
	}

	payment, err := s.paymentRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get payment: %w", err)
	}
	if payment != nil && payment.RedirectURL != "" {
		return payment.RedirectURL, nil
	}

	token, redirectURL, err := s.CreateHostedCheckout(order, order.OrderItems)
	if err != nil {
		return "", err
	}

	newPayment := &models.Payment{
		OrderID:     order.ID,
		Amount:      order.Total,
		Method:      "Midtrans Snap",
		Status:      models.PaymentStatusPending,
		Token:       token,
		RedirectURL: redirectURL,
	}
	if err := s.paymentRepo.UpsertByOrderID(ctx, s.db, newPayment); err != nil {
		return "", fmt.Errorf("failed to persist payment record: %w", err)
	}
	return redirectURL, nil
}

// mapProviderState translates the provider state vocabulary onto the
// local payment/order statuses.
func mapProviderState(transactionStatus, fraudStatus string) (paymentStatus, orderStatus string, ok bool) {
	switch transactionStatus {
	case "capture", "settlement":
		if fraudStatus != "" && fraudStatus != "accept" {
			return models.PaymentStatusFailed, models.OrderStatusCancelled, true
		}
		return models.PaymentStatusSuccess, models.OrderStatusPaid, true
	case "pending":
		return models.PaymentStatusPending, models.OrderStatusPending, true
	case "deny", "expire", "cancel":
		return models.PaymentStatusFailed, models.OrderStatusCancelled, true
	case "refund":
		return models.PaymentStatusRefunded, models.OrderStatusCancelled, true
	default:
		return "", "", false
	}
}

// Reconcile polls the provider for the order's current state and
// applies it locally. Re-running with an unchanged provider state is a
// no-op. Callers can only poll their own orders.
func (s *GatewayService) Reconcile(ctx context.Context, userID, orderCode string) (string, error) {
	order, err := s.orderRepo.FindByCode(ctx, orderCode)
	if err != nil {
		return "", fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return "", ErrOrderNotFound
	}

	statusResp, errMidtrans := s.coreClient.CheckTransaction(orderCode)
	if errMidtrans != nil {
		return "", fmt.Errorf("failed to check transaction with gateway: %w", errMidtrans.RawError)
	}
	if statusResp == nil {
		return "", fmt.Errorf("gateway returned nil transaction status")
	}
	if statusResp.StatusCode == "404" {
		return "", fmt.Errorf("order %s not found in gateway system", orderCode)
	}

	return s.applyProviderState(ctx, orderCode, statusResp.TransactionStatus, statusResp.FraudStatus, statusResp.TransactionID, "")
}

func (s *GatewayService) applyProviderState(ctx context.Context, orderCode, transactionStatus, fraudStatus, transactionID, rawPayload string) (string, error) {
	order, err := s.orderRepo.FindByCode(ctx, orderCode)
	if err != nil {
		return "", fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return "", ErrOrderNotFound
	}

	payment, err := s.paymentRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get payment: %w", err)
	}
	if payment == nil {
		return "", ErrPaymentNotFound
	}

	// A partial refund settles through its refund row alone; the
	// payment and order keep their prior statuses.
	if transactionStatus == "partial_refund" {
		log.Printf("INFO: GatewayService: partial refund on order %s, payment and order statuses unchanged", orderCode)
		return payment.Status, nil
	}

	newPaymentStatus, newOrderStatus, ok := mapProviderState(transactionStatus, fraudStatus)
	if !ok {
		return "", fmt.Errorf("unhandled gateway transaction status %q", transactionStatus)
	}

	if payment.Status == newPaymentStatus && order.Status == newOrderStatus {
		log.Printf("INFO: GatewayService: order %s already at %s/%s, nothing to do", orderCode, newPaymentStatus, newOrderStatus)
		return newPaymentStatus, nil
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := transitionStock(ctx, tx, s.productRepo, s.orderRepo, order, newOrderStatus); err != nil {
			return err
		}
		if err := s.paymentRepo.UpdateStatusAndPayload(ctx, tx, payment.ID, newPaymentStatus, transactionID, rawPayload); err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}
		if err := s.orderRepo.UpdatePaymentStatusAndOrderStatus(ctx, tx, order.ID, newPaymentStatus, newOrderStatus); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		if newOrderStatus == models.OrderStatusPaid && order.Status != models.OrderStatusPaid {
			notification := &models.Notification{
				UserID:  &order.UserID,
				OrderID: &order.ID,
				Type:    models.NotificationTypePayment,
				Title:   fmt.Sprintf("Payment received for order %s", order.OrderCode),
				Message: fmt.Sprintf("Gateway payment of %s confirmed. Order %s is now paid.", format.Rupee(order.Total), order.OrderCode),
			}
			if err := s.notificationRepo.Create(ctx, tx, notification); err != nil {
				return fmt.Errorf("failed to create notification: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return "", txErr
	}

	log.Printf("INFO: GatewayService: order %s reconciled to payment=%s order=%s", orderCode, newPaymentStatus, newOrderStatus)
	return newPaymentStatus, nil
}

// VerifySignature checks the provider's signature over the payload
// before any webhook-driven mutation is allowed.
func (s *GatewayService) VerifySignature(p NotificationPayload) bool {
	sum := sha512.Sum512([]byte(p.OrderID + p.StatusCode + p.GrossAmount + s.serverKey))
	return hex.EncodeToString(sum[:]) == p.SignatureKey
}

// HandleWebhook processes a provider callback. The signature is
// verified first; forged payloads are rejected without touching state.
func (s *GatewayService) HandleWebhook(ctx context.Context, p NotificationPayload) error {
	if !s.VerifySignature(p) {
		log.Printf("WARNING: GatewayService: signature mismatch on webhook for order %s", p.OrderID)
		return ErrInvalidSignature
	}

	raw, _ := json.Marshal(p)

	if p.RefundKey != "" {
		return s.handleRefundCallback(ctx, p)
	}

	_, err := s.applyProviderState(ctx, p.OrderID, p.TransactionStatus, p.FraudStatus, p.TransactionID, string(raw))
	return err
}

func (s *GatewayService) handleRefundCallback(ctx context.Context, p NotificationPayload) error {
	refund, err := s.refundRepo.FindByProviderRefundID(ctx, p.RefundKey)
	if err != nil {
		return fmt.Errorf("failed to look up refund: %w", err)
	}
	if refund == nil {
		return fmt.Errorf("refund %s not found", p.RefundKey)
	}
	if err := s.refundRepo.Update(ctx, s.db, refund.ID, models.RefundStatusCompleted, p.RefundKey); err != nil {
		return fmt.Errorf("failed to update refund: %w", err)
	}
	log.Printf("INFO: GatewayService: refund %s confirmed via webhook", p.RefundKey)
	return nil
}

// Refund issues a (possibly partial) refund with the provider. Only a
// full-amount refund marks the payment refunded and cancels the order
// (restocking its lines); partial refunds update the refund row and
// leave the order where it was.
func (s *GatewayService) Refund(ctx context.Context, orderCode string, amount decimal.Decimal, reason string) (*models.Refund, error) {
	order, err := s.orderRepo.FindByCode(ctx, orderCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	payment, err := s.paymentRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(order.Total) {
		return nil, fmt.Errorf("refund amount %s out of range for order total %s", amount, order.Total)
	}

	refund := &models.Refund{
		PaymentID: payment.ID,
		OrderID:   order.ID,
		Amount:    amount,
		Status:    models.RefundStatusPending,
		Reason:    reason,
	}
	if err := s.refundRepo.Create(ctx, s.db, refund); err != nil {
		return nil, fmt.Errorf("failed to create refund record: %w", err)
	}

	refundReq := &coreapi.RefundReq{
		RefundKey: refund.ID,
		Amount:    amount.Round(0).IntPart(),
		Reason:    reason,
	}
	refundResp, errMidtrans := s.coreClient.RefundTransaction(orderCode, refundReq)
	if errMidtrans != nil {
		if updateErr := s.refundRepo.Update(ctx, s.db, refund.ID, models.RefundStatusFailed, ""); updateErr != nil {
			log.Printf("ERROR: GatewayService: failed to mark refund %s failed: %v", refund.ID, updateErr)
		}
		return nil, fmt.Errorf("gateway refund failed: %w", errMidtrans.RawError)
	}

	if err := s.refundRepo.Update(ctx, s.db, refund.ID, models.RefundStatusCompleted, refundResp.RefundKey); err != nil {
		return nil, fmt.Errorf("failed to update refund record: %w", err)
	}
	refund.Status = models.RefundStatusCompleted
	refund.ProviderRefundID = refundResp.RefundKey

	if amount.Equal(order.Total) {
		txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := transitionStock(ctx, tx, s.productRepo, s.orderRepo, order, models.OrderStatusCancelled); err != nil {
				return err
			}
			if err := s.paymentRepo.UpdateStatusTx(ctx, tx, payment.ID, models.PaymentStatusRefunded); err != nil {
				return fmt.Errorf("failed to update payment status: %w", err)
			}
			return s.orderRepo.UpdatePaymentStatusAndOrderStatus(ctx, tx, order.ID, models.PaymentStatusRefunded, models.OrderStatusCancelled)
		})
		if txErr != nil {
			return nil, txErr
		}
	}

	log.Printf("INFO: GatewayService: refund %s for order %s completed (%s)", refund.ID, orderCode, format.Rupee(amount))
	return refund, nil
}
