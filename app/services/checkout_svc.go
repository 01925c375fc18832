package services

import (
	"context"
	"fmt"
	"log"

	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/utils/upi"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutPreview is what prepare-checkout returns. On the manual path
// no durable order exists yet; TempRef ties the UPI payment to the
// later proof submission.
type CheckoutPreview struct {
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	UPILink       string          `json:"upi_link,omitempty"`
	TempRef       string          `json:"temp_ref,omitempty"`
}

type CheckoutService struct {
	db            *gorm.DB
	cartItemRepo  repositories.CartItemRepositoryImpl
	productRepo   repositories.ProductRepositoryImpl
	addressRepo   repositories.AddressRepository
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	paymentRepo   repositories.PaymentRepositoryImpl
	settings      *SettingsService
	gateway       *GatewayService

	upiVPA   string
	upiPayee string
}

func NewCheckoutService(
	db *gorm.DB,
	cartItemRepo repositories.CartItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	addressRepo repositories.AddressRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	paymentRepo repositories.PaymentRepositoryImpl,
	settings *SettingsService,
	gateway *GatewayService,
	upiVPA, upiPayee string,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		addressRepo:   addressRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		paymentRepo:   paymentRepo,
		settings:      settings,
		gateway:       gateway,
		upiVPA:        upiVPA,
		upiPayee:      upiPayee,
	}
}

// snapshotCart reads the cart fresh from the database, validates every
// line against current stock and prices the items at the live product
// price, not whatever the client last saw.
func snapshotCart(ctx context.Context, cartItemRepo repositories.CartItemRepositoryImpl, userID string) ([]models.OrderItem, decimal.Decimal, error) {
	cartItems, err := cartItemRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to get cart items: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, decimal.Zero, ErrCartEmpty
	}

	var orderItems []models.OrderItem
	total := decimal.Zero
	for _, cartItem := range cartItems {
		product := cartItem.Product
		if product.ID == "" || product.IsDeleted {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrProductNotFound, cartItem.ProductID)
		}
		if product.Stock < cartItem.Qty {
			return nil, decimal.Zero, fmt.Errorf("%w: product '%s' has insufficient stock. Available: %d, Requested: %d",
				ErrInsufficientStock, product.Name, product.Stock, cartItem.Qty)
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(cartItem.Qty)))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Qty:         cartItem.Qty,
			Price:       product.Price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}
	return orderItems, total, nil
}

// PrepareCheckout validates the cart and reports how to pay. The manual
// path returns a UPI deep link with a temporary reference; no order row
// is written until the proof is submitted.
func (s *CheckoutService) PrepareCheckout(ctx context.Context, userID string) (*CheckoutPreview, error) {
	_, total, err := snapshotCart(ctx, s.cartItemRepo, userID)
	if err != nil {
		return nil, err
	}

	method := s.settings.GetPaymentMethod(ctx)
	preview := &CheckoutPreview{PaymentMethod: method, Total: total}

	if method == models.PaymentMethodManual {
		preview.TempRef = "TMP-" + repositories.GenerateOrderCode(6)
		preview.UPILink = upi.BuildPayLink(s.upiVPA, s.upiPayee, total, preview.TempRef)
	}
	return preview, nil
}

// CreateOrderWithGateway runs the gateway checkout path as one
// transaction: order + items + payment row are created, the hosted
// checkout is initiated, the cart is cleared. Any failure, including
// the gateway call, rolls everything back.
func (s *CheckoutService) CreateOrderWithGateway(ctx context.Context, userID string) (*models.Order, string, error) {
	address, err := s.addressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get address: %w", err)
	}
	if address == nil {
		return nil, "", ErrAddressRequired
	}

	orderItems, total, err := snapshotCart(ctx, s.cartItemRepo, userID)
	if err != nil {
		return nil, "", err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, "", fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: Rolling back gateway checkout transaction: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	order := &models.Order{
		UserID:          userID,
		Total:           total,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   models.PaymentMethodGateway,
		AddressID:       address.ID,
		ShippingAddress: address.Line1,
	}
	if err := s.orderRepo.CreateWithUniqueCode(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, "", fmt.Errorf("failed to create order: %w", err)
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
		tx.Rollback()
		return nil, "", fmt.Errorf("failed to create order items: %w", err)
	}

	token, redirectURL, err := s.gateway.CreateHostedCheckout(order, orderItems)
	if err != nil {
		tx.Rollback()
		return nil, "", fmt.Errorf("failed to initiate gateway transaction: %w", err)
	}

	payment := &models.Payment{
		OrderID:     order.ID,
		Amount:      order.Total,
		Method:      "Midtrans Snap",
		Status:      models.PaymentStatusPending,
		Token:       token,
		RedirectURL: redirectURL,
	}
	if err := s.paymentRepo.UpsertByOrderID(ctx, tx, payment); err != nil {
		tx.Rollback()
		return nil, "", fmt.Errorf("failed to create payment record: %w", err)
	}

	if err := s.cartItemRepo.ClearCart(ctx, tx, userID); err != nil {
		tx.Rollback()
		return nil, "", fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, "", fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	log.Printf("INFO: CheckoutService: order %s created via gateway, redirect: %s", order.OrderCode, redirectURL)
	return order, redirectURL, nil
}
