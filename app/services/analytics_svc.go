package services

import (
	"context"
	"fmt"

	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/utils/format"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type TopProduct struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalQty    int64  `json:"total_qty"`
}

type AnalyticsReport struct {
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalRevenueDisplay  string          `json:"total_revenue_display"`
	TotalOrders          int64           `json:"total_orders"`
	OrdersByStatus       []StatusCount   `json:"orders_by_status"`
	TopProducts          []TopProduct    `json:"top_products"`
	PendingVerifications int64           `json:"pending_verifications"`
}

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Report aggregates the admin dashboard numbers. Revenue counts only
// orders that reached a fulfilled status.
func (s *AnalyticsService) Report(ctx context.Context) (*AnalyticsReport, error) {
	report := &AnalyticsReport{}

	var revenue decimal.NullDecimal
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("SUM(total)").
		Where("status IN ?", []string{models.OrderStatusPaid, models.OrderStatusShipped, models.OrderStatusDelivered}).
		Scan(&revenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	if revenue.Valid {
		report.TotalRevenue = revenue.Decimal
	} else {
		report.TotalRevenue = decimal.Zero
	}
	report.TotalRevenueDisplay = format.Rupee(report.TotalRevenue)

	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&report.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&report.OrdersByStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group orders by status: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("product_id, product_name, SUM(qty) AS total_qty").
		Group("product_id, product_name").
		Order("total_qty DESC").
		Limit(10).
		Scan(&report.TopProducts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top products: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&models.PaymentVerification{}).
		Where("status = ?", models.VerificationStatusPending).
		Count(&report.PendingVerifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending verifications: %w", err)
	}

	return report, nil
}
