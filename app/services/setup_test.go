package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/models/migrations"
	"github.com/mobstermerch/storefront/app/repositories"
)

// newTestDB opens an isolated in-memory database per test. The shared
// cache keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

type testRepos struct {
	users         repositories.UserRepositoryImpl
	products      repositories.ProductRepositoryImpl
	categories    repositories.CategoryRepository
	cartItems     repositories.CartItemRepositoryImpl
	orders        repositories.OrderRepository
	orderItems    repositories.OrderItemRepository
	payments      repositories.PaymentRepositoryImpl
	verifications repositories.VerificationRepository
	refunds       repositories.RefundRepository
	notifications repositories.NotificationRepository
	addresses     repositories.AddressRepository
	settings      repositories.SettingRepository
}

func newTestRepos(db *gorm.DB) testRepos {
	return testRepos{
		users:         repositories.NewUserRepository(db),
		products:      repositories.NewProductRepository(db),
		categories:    repositories.NewCategoryRepository(db),
		cartItems:     repositories.NewCartItemRepository(db),
		orders:        repositories.NewOrderRepository(db),
		orderItems:    repositories.NewOrderItemRepository(db),
		payments:      repositories.NewPaymentRepository(db),
		verifications: repositories.NewVerificationRepository(db),
		refunds:       repositories.NewRefundRepository(db),
		notifications: repositories.NewNotificationRepository(db),
		addresses:     repositories.NewAddressRepository(db),
		settings:      repositories.NewSettingRepository(db),
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test Customer",
		Email:    email,
		Password: "not-a-real-hash",
		Role:     models.RoleCustomer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:  name,
		Slug:  fmt.Sprintf("%s-%d", name, stock),
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

func createTestAddress(t *testing.T, db *gorm.DB, userID string) *models.Address {
	t.Helper()

	address := &models.Address{
		UserID:   userID,
		Name:     "Test Customer",
		Phone:    "9999999999",
		Line1:    "12 Test Street",
		City:     "Mumbai",
		PostCode: "400001",
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("failed to create test address: %v", err)
	}
	return address
}

func addToCart(t *testing.T, db *gorm.DB, userID, productID string, qty int) {
	t.Helper()

	item := &models.CartItem{UserID: userID, ProductID: productID, Qty: qty}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to add cart item: %v", err)
	}
}

func productStock(t *testing.T, db *gorm.DB, productID string) int {
	t.Helper()

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	return product.Stock
}

var (
	testCtx    = context.Background()
	decimalTwo = decimal.NewFromInt(2)
)
