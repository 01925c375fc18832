package services

import (
	"testing"

	"github.com/mobstermerch/storefront/app/models"
)

func TestPaymentMethodSetting(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewSettingsService(repos.settings, newTestRedis(t))

	t.Run("defaults to manual", func(t *testing.T) {
		if got := svc.GetPaymentMethod(testCtx); got != models.PaymentMethodManual {
			t.Errorf("expected manual default, got %s", got)
		}
	})

	t.Run("set persists and invalidates the cache", func(t *testing.T) {
		if err := svc.SetPaymentMethod(testCtx, models.PaymentMethodGateway); err != nil {
			t.Fatalf("SetPaymentMethod returned error: %v", err)
		}
		if got := svc.GetPaymentMethod(testCtx); got != models.PaymentMethodGateway {
			t.Errorf("expected gateway after set, got %s", got)
		}

		// Flip back; a stale cache would still say gateway.
		if err := svc.SetPaymentMethod(testCtx, models.PaymentMethodManual); err != nil {
			t.Fatalf("SetPaymentMethod returned error: %v", err)
		}
		if got := svc.GetPaymentMethod(testCtx); got != models.PaymentMethodManual {
			t.Errorf("expected manual after flip, got %s", got)
		}
	})

	t.Run("rejects unknown methods", func(t *testing.T) {
		if err := svc.SetPaymentMethod(testCtx, "cheque"); err == nil {
			t.Error("expected error for unknown payment method")
		}
	})
}

func TestMaintenanceFlag(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewSettingsService(repos.settings, newTestRedis(t))

	if svc.MaintenanceEnabled(testCtx) {
		t.Error("expected maintenance off by default")
	}

	if err := svc.SetMaintenance(testCtx, true); err != nil {
		t.Fatalf("SetMaintenance returned error: %v", err)
	}
	if !svc.MaintenanceEnabled(testCtx) {
		t.Error("expected maintenance on")
	}

	if err := svc.SetMaintenance(testCtx, false); err != nil {
		t.Fatalf("SetMaintenance returned error: %v", err)
	}
	if svc.MaintenanceEnabled(testCtx) {
		t.Error("expected maintenance off again")
	}
}
