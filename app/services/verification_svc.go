package services

import (
	"context"
	"fmt"
	"log"

	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/utils/format"
	"gorm.io/gorm"
)

// VerificationService handles the manual UPI payment path: proof
// submission creates the durable order, admin review settles it.
type VerificationService struct {
	db               *gorm.DB
	cartItemRepo     repositories.CartItemRepositoryImpl
	addressRepo      repositories.AddressRepository
	orderRepo        repositories.OrderRepository
	orderItemRepo    repositories.OrderItemRepository
	verificationRepo repositories.VerificationRepository
	productRepo      repositories.ProductRepositoryImpl
	notificationRepo repositories.NotificationRepository
}

func NewVerificationService(
	db *gorm.DB,
	cartItemRepo repositories.CartItemRepositoryImpl,
	addressRepo repositories.AddressRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	verificationRepo repositories.VerificationRepository,
	productRepo repositories.ProductRepositoryImpl,
	notificationRepo repositories.NotificationRepository,
) *VerificationService {
	return &VerificationService{
		db:               db,
		cartItemRepo:     cartItemRepo,
		addressRepo:      addressRepo,
		orderRepo:        orderRepo,
		orderItemRepo:    orderItemRepo,
		verificationRepo: verificationRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
	}
}

// SubmitPayment creates the durable order, its items and a pending
// verification, and clears the cart in one transaction. Stock is
// not touched yet; the decrement happens at approval.
func (s *VerificationService) SubmitPayment(ctx context.Context, userID, transactionRef, screenshotURL string) (*models.Order, error) {
	if transactionRef == "" {
		return nil, fmt.Errorf("transaction reference is required")
	}
	if screenshotURL == "" {
		return nil, fmt.Errorf("payment screenshot is required")
	}

	address, err := s.addressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	if address == nil {
		return nil, ErrAddressRequired
	}

	orderItems, total, err := snapshotCart(ctx, s.cartItemRepo, userID)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: Rolling back payment submission transaction: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	order := &models.Order{
		UserID:          userID,
		Total:           total,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   models.PaymentMethodManual,
		AddressID:       address.ID,
		ShippingAddress: address.Line1,
	}
	if err := s.orderRepo.CreateWithUniqueCode(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	verification := &models.PaymentVerification{
		OrderID:        order.ID,
		TransactionRef: transactionRef,
		ScreenshotURL:  screenshotURL,
		Status:         models.VerificationStatusPending,
	}
	if err := s.verificationRepo.Create(ctx, tx, verification); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create payment verification: %w", err)
	}

	if err := s.cartItemRepo.ClearCart(ctx, tx, userID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	notification := &models.Notification{
		UserID:   &order.UserID,
		OrderID:  &order.ID,
		Type:     models.NotificationTypePayment,
		Title:    fmt.Sprintf("Payment proof submitted for order %s", order.OrderCode),
		Message:  fmt.Sprintf("UPI payment of %s awaits verification (ref %s).", format.Rupee(order.Total), transactionRef),
		ForAdmin: true,
	}
	if err := s.notificationRepo.Create(ctx, tx, notification); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit payment submission: %w", err)
	}

	log.Printf("INFO: VerificationService: order %s created pending manual verification", order.OrderCode)
	return order, nil
}

func (s *VerificationService) GetPending(ctx context.Context) ([]models.PaymentVerification, error) {
	return s.verificationRepo.FindPending(ctx)
}

// Review settles a pending verification. Approving flips the order to
// paid and decrements stock (an oversold line aborts
// the whole review); rejecting leaves stock untouched. A second review
// of the same verification is rejected outright.
func (s *VerificationService) Review(ctx context.Context, adminID, verificationID string, approve bool, note string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		verification, err := s.verificationRepo.FindByIDTx(ctx, tx, verificationID)
		if err != nil {
			return fmt.Errorf("failed to get verification: %w", err)
		}
		if verification == nil {
			return fmt.Errorf("payment verification not found")
		}
		if verification.Status != models.VerificationStatusPending {
			return ErrAlreadyReviewed
		}

		order := &verification.Order
		newStatus := models.VerificationStatusRejected
		if approve {
			newStatus = models.VerificationStatusApproved
		}

		if err := s.verificationRepo.UpdateReview(ctx, tx, verification.ID, newStatus, note, adminID); err != nil {
			return fmt.Errorf("failed to update verification: %w", err)
		}

		var title, message string
		if approve {
			if err := transitionStock(ctx, tx, s.productRepo, s.orderRepo, order, models.OrderStatusPaid); err != nil {
				return err
			}
			if err := s.orderRepo.UpdatePaymentStatusAndOrderStatus(ctx, tx, order.ID, models.PaymentStatusSuccess, models.OrderStatusPaid); err != nil {
				return fmt.Errorf("failed to update order status: %w", err)
			}
			title = fmt.Sprintf("Payment confirmed for order %s", order.OrderCode)
			message = fmt.Sprintf("Your payment of %s was verified. Order %s is now paid.", format.Rupee(order.Total), order.OrderCode)
		} else {
			if err := s.orderRepo.UpdatePaymentStatusAndOrderStatus(ctx, tx, order.ID, models.PaymentStatusFailed, order.Status); err != nil {
				return fmt.Errorf("failed to update order status: %w", err)
			}
			title = fmt.Sprintf("Payment rejected for order %s", order.OrderCode)
			message = fmt.Sprintf("Your payment proof for order %s was rejected.", order.OrderCode)
			if note != "" {
				message += " Note: " + note
			}
		}

		notification := &models.Notification{
			UserID:  &order.UserID,
			OrderID: &order.ID,
			Type:    models.NotificationTypePayment,
			Title:   title,
			Message: message,
		}
		if err := s.notificationRepo.Create(ctx, tx, notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		log.Printf("INFO: VerificationService: verification %s reviewed as %s by %s", verification.ID, newStatus, adminID)
		return nil
	})
}
