package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	maintenanceKey      = "site:maintenance"
	paymentModeCacheKey = "cache:payment_method"
	paymentModeCacheTTL = 5 * time.Minute
)

// SettingsService owns the operational toggles. The settings table is
// the source of truth for the payment method; Redis is only a cache
// with explicit invalidation on write. The maintenance flag lives in
// Redis alone since it must survive a database outage.
type SettingsService struct {
	settingRepo repositories.SettingRepository
	rdb         *redis.Client
}

func NewSettingsService(settingRepo repositories.SettingRepository, rdb *redis.Client) *SettingsService {
	return &SettingsService{settingRepo: settingRepo, rdb: rdb}
}

func (s *SettingsService) GetPaymentMethod(ctx context.Context) string {
	if cached, err := s.rdb.Get(ctx, paymentModeCacheKey).Result(); err == nil && cached != "" {
		return cached
	}

	value, err := s.settingRepo.Get(ctx, models.SettingPaymentMethod)
	if err != nil {
		log.Printf("WARNING: SettingsService: failed to read payment method, falling back to manual: %v", err)
		return models.PaymentMethodManual
	}
	if value == "" {
		value = models.PaymentMethodManual
	}

	if err := s.rdb.Set(ctx, paymentModeCacheKey, value, paymentModeCacheTTL).Err(); err != nil {
		log.Printf("WARNING: SettingsService: failed to cache payment method: %v", err)
	}
	return value
}

func (s *SettingsService) SetPaymentMethod(ctx context.Context, method string) error {
	if method != models.PaymentMethodManual && method != models.PaymentMethodGateway {
		return fmt.Errorf("unknown payment method %q", method)
	}
	if err := s.settingRepo.Set(ctx, models.SettingPaymentMethod, method); err != nil {
		return fmt.Errorf("failed to persist payment method: %w", err)
	}
	if err := s.rdb.Del(ctx, paymentModeCacheKey).Err(); err != nil {
		log.Printf("WARNING: SettingsService: failed to invalidate payment method cache: %v", err)
	}
	return nil
}

func (s *SettingsService) MaintenanceEnabled(ctx context.Context) bool {
	value, err := s.rdb.Get(ctx, maintenanceKey).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("WARNING: SettingsService: failed to read maintenance flag: %v", err)
		return false
	}
	return value == "1"
}

func (s *SettingsService) SetMaintenance(ctx context.Context, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return s.rdb.Set(ctx, maintenanceKey, value, 0).Err()
}
