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

var fulfilledStatuses = map[string]bool{
	models.OrderStatusPaid:      true,
	models.OrderStatusShipped:   true,
	models.OrderStatusDelivered: true,
}

var allowedTransitions = map[string][]string{
	models.OrderStatusPending: {models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:    {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped: {models.OrderStatusDelivered, models.OrderStatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transitionStock applies the stock side effects of a status change
// inside tx. Entering a fulfilled status decrements each line once,
// guarded by the stock_reduced flag; entering cancelled after a
// decrement restores the stock. Decrements are atomic conditional
// updates so concurrent transitions cannot oversell.
func transitionStock(
	ctx context.Context,
	tx *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
	order *models.Order,
	newStatus string,
) error {
	if fulfilledStatuses[newStatus] && !fulfilledStatuses[order.Status] && !order.StockReduced {
		for _, item := range order.OrderItems {
			ok, err := productRepo.DecrementStock(ctx, tx, item.ProductID, item.Qty)
			if err != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
			}
			if !ok {
				return fmt.Errorf("%w: product '%s' has insufficient stock for order %s",
					ErrInsufficientStock, item.ProductName, order.OrderCode)
			}
		}
		if err := orderRepo.SetStockReduced(ctx, tx, order.ID, true); err != nil {
			return fmt.Errorf("failed to flag stock reduction: %w", err)
		}
		order.StockReduced = true
		return nil
	}

	if newStatus == models.OrderStatusCancelled && order.StockReduced {
		for _, item := range order.OrderItems {
			if err := productRepo.IncrementStock(ctx, tx, item.ProductID, item.Qty); err != nil {
				return fmt.Errorf("failed to restock product %s: %w", item.ProductID, err)
			}
		}
		if err := orderRepo.SetStockReduced(ctx, tx, order.ID, false); err != nil {
			return fmt.Errorf("failed to clear stock reduction flag: %w", err)
		}
		order.StockReduced = false
	}
	return nil
}

type OrderService struct {
	db               *gorm.DB
	orderRepo        repositories.OrderRepository
	productRepo      repositories.ProductRepositoryImpl
	notificationRepo repositories.NotificationRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepositoryImpl,
	notificationRepo repositories.NotificationRepository,
) *OrderService {
	return &OrderService{
		db:               db,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.FindByUserID(ctx, userID)
}

func (s *OrderService) GetAllOrders(ctx context.Context, status string) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx, status)
}

// UpdateStatus is the admin-facing transition. The status write, stock
// side effects and customer notification commit or roll back together.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, newStatus string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if !transitionAllowed(order.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := transitionStock(ctx, tx, s.productRepo, s.orderRepo, order, newStatus); err != nil {
			return err
		}

		if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, newStatus); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		notification := &models.Notification{
			UserID:  &order.UserID,
			OrderID: &order.ID,
			Type:    models.NotificationTypeOrder,
			Title:   fmt.Sprintf("Order %s %s", order.OrderCode, newStatus),
			Message: fmt.Sprintf("Your order %s (%s) is now %s.", order.OrderCode, format.Rupee(order.Total), newStatus),
		}
		if err := s.notificationRepo.Create(ctx, tx, notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		log.Printf("INFO: OrderService: order %s transitioned %s -> %s", order.OrderCode, order.Status, newStatus)
		return nil
	})
}

// RequestCancellation files an admin notification; it never touches
// order status itself.
func (s *OrderService) RequestCancellation(ctx context.Context, userID, orderID, reason string) error {
	return s.createRequest(ctx, userID, orderID, reason, models.NotificationTypeCancelRequest, "Cancellation requested")
}

func (s *OrderService) RequestRefund(ctx context.Context, userID, orderID, reason string) error {
	return s.createRequest(ctx, userID, orderID, reason, models.NotificationTypeRefundRequest, "Refund requested")
}

func (s *OrderService) createRequest(ctx context.Context, userID, orderID, reason, notifType, title string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return ErrOrderNotFound
	}

	message := fmt.Sprintf("Customer request for order %s (%s).", order.OrderCode, format.Rupee(order.Total))
	if reason != "" {
		message += " Reason: " + reason
	}

	notification := &models.Notification{
		UserID:   &order.UserID,
		OrderID:  &order.ID,
		Type:     notifType,
		Title:    fmt.Sprintf("%s for order %s", title, order.OrderCode),
		Message:  message,
		ForAdmin: true,
	}
	return s.notificationRepo.Create(ctx, s.db, notification)
}
