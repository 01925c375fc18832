package services

import (
	"testing"

	"github.com/mobstermerch/storefront/app/models"
)

func TestAnalyticsReport(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewAnalyticsService(db)

	user := createTestUser(t, db, "analytics@test.local")
	tee := createTestProduct(t, db, "Revenue Tee", 500, 20)
	cap := createTestProduct(t, db, "Revenue Cap", 300, 20)

	orderService := NewOrderService(db, repos.orders, repos.products, repos.notifications)

	paid := seedOrder(t, db, repos, user.ID, tee)
	if err := orderService.UpdateStatus(testCtx, paid.ID, models.OrderStatusPaid); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	// A pending order contributes to counts but not to revenue.
	seedOrder(t, db, repos, user.ID, cap)

	report, err := svc.Report(testCtx)
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}

	if got := report.TotalRevenue.String(); got != "1000" {
		t.Errorf("expected revenue 1000, got %s", got)
	}
	if report.TotalOrders != 2 {
		t.Errorf("expected 2 orders, got %d", report.TotalOrders)
	}

	byStatus := map[string]int64{}
	for _, sc := range report.OrdersByStatus {
		byStatus[sc.Status] = sc.Count
	}
	if byStatus[models.OrderStatusPaid] != 1 || byStatus[models.OrderStatusPending] != 1 {
		t.Errorf("unexpected status breakdown: %v", byStatus)
	}

	if len(report.TopProducts) != 2 {
		t.Fatalf("expected 2 top products, got %d", len(report.TopProducts))
	}
	if report.TopProducts[0].TotalQty != 2 {
		t.Errorf("expected top product qty 2, got %d", report.TopProducts[0].TotalQty)
	}

	if report.TotalRevenueDisplay == "" {
		t.Error("expected formatted revenue display")
	}
}
