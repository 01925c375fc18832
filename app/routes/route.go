package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/mobstermerch/storefront/app/handlers"
	"github.com/mobstermerch/storefront/app/handlers/admin"
	"github.com/mobstermerch/storefront/app/middlewares"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/services"
	"github.com/mobstermerch/storefront/app/utils/sessions"
	"github.com/mobstermerch/storefront/app/utils/token"
)

// RouterDeps collects everything the router needs to wire handlers and
// middleware.
type RouterDeps struct {
	Auth          *handlers.AuthHandler
	Products      *handlers.ProductHandler
	Cart          *handlers.CartHandler
	Checkout      *handlers.CheckoutHandler
	Verification  *handlers.PaymentVerificationHandler
	Gateway       *handlers.GatewayHandler
	Orders        *handlers.OrderHandler
	Notifications *handlers.NotificationHandler

	AdminProducts      *admin.ProductAdminHandler
	AdminCategories    *admin.CategoryAdminHandler
	AdminOrders        *admin.OrderAdminHandler
	AdminVerifications *admin.VerificationAdminHandler
	AdminDashboard     *admin.DashboardHandler
	AdminSettings      *admin.SettingsAdminHandler
	AdminUsers         *admin.UserAdminHandler

	Tokens    *token.Manager
	Session   sessions.SessionStore
	UserRepo  repositories.UserRepositoryImpl
	Settings  *services.SettingsService
	UploadDir string

	AllowedOrigins []string
}

func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()
	r.Use(middlewares.LoggingMiddleware)

	authMW := middlewares.AuthMiddleware(deps.Tokens, deps.Session)
	adminMW := middlewares.AdminAuthMiddleware(deps.UserRepo)
	maintenanceMW := middlewares.MaintenanceMiddleware(deps.Settings)
	loginLimiter := middlewares.NewRateLimiter(1, 5)

	// Provider callbacks and the admin surface stay reachable while
	// the storefront is in maintenance mode.
	r.HandleFunc("/api/payments/webhook", deps.Gateway.Webhook).Methods(http.MethodPost)

	authRoutes := r.PathPrefix("/api/auth").Subrouter()
	authRoutes.Use(maintenanceMW, loginLimiter.Limit)
	authRoutes.HandleFunc("/register", deps.Auth.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", deps.Auth.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/refresh", deps.Auth.Refresh).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", deps.Auth.Logout).Methods(http.MethodPost)

	public := r.PathPrefix("/api").Subrouter()
	public.Use(maintenanceMW)
	public.HandleFunc("/products", deps.Products.List).Methods(http.MethodGet)
	public.HandleFunc("/products/{slug}", deps.Products.Detail).Methods(http.MethodGet)
	public.HandleFunc("/categories", deps.Products.Categories).Methods(http.MethodGet)
	public.HandleFunc("/categories/{slug}", deps.Products.CategoryBySlug).Methods(http.MethodGet)

	customer := r.PathPrefix("/api").Subrouter()
	customer.Use(maintenanceMW, authMW)
	customer.HandleFunc("/auth/me", deps.Auth.Me).Methods(http.MethodGet)
	customer.HandleFunc("/auth/profile", deps.Auth.UpdateProfile).Methods(http.MethodPut)

	customer.HandleFunc("/cart", deps.Cart.GetCart).Methods(http.MethodGet)
	customer.HandleFunc("/cart", deps.Cart.AddItem).Methods(http.MethodPost)
	customer.HandleFunc("/cart/{id}", deps.Cart.UpdateItem).Methods(http.MethodPut)
	customer.HandleFunc("/cart/{id}", deps.Cart.RemoveItem).Methods(http.MethodDelete)
	customer.HandleFunc("/cart/product/{id}", deps.Cart.RemoveProduct).Methods(http.MethodDelete)

	customer.HandleFunc("/checkout/prepare-checkout", deps.Checkout.PrepareCheckout).Methods(http.MethodPost)
	customer.HandleFunc("/checkout/create-order-with-payment", deps.Checkout.CreateOrderWithPayment).Methods(http.MethodPost)
	customer.HandleFunc("/checkout/addresses", deps.Checkout.GetAddress).Methods(http.MethodGet)
	customer.HandleFunc("/checkout/addresses", deps.Checkout.SaveAddress).Methods(http.MethodPost)

	customer.HandleFunc("/payment-verification/submit-payment", deps.Verification.SubmitPayment).Methods(http.MethodPost)

	customer.HandleFunc("/payments/initiate", deps.Gateway.Initiate).Methods(http.MethodPost)
	customer.HandleFunc("/payments/order-status/{code}", deps.Gateway.OrderStatus).Methods(http.MethodGet)

	customer.HandleFunc("/orders", deps.Orders.ListMine).Methods(http.MethodGet)
	customer.HandleFunc("/orders/{id}", deps.Orders.Detail).Methods(http.MethodGet)
	customer.HandleFunc("/orders/{id}/cancel-request", deps.Orders.RequestCancellation).Methods(http.MethodPost)
	customer.HandleFunc("/orders/{id}/refund-request", deps.Orders.RequestRefund).Methods(http.MethodPost)

	customer.HandleFunc("/notifications", deps.Notifications.ListMine).Methods(http.MethodGet)
	customer.HandleFunc("/notifications/{id}/read", deps.Notifications.MarkRead).Methods(http.MethodPost)

	adminRoutes := r.PathPrefix("/api/admin").Subrouter()
	adminRoutes.Use(authMW, adminMW)
	adminRoutes.HandleFunc("/products", deps.AdminProducts.List).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/products", deps.AdminProducts.Create).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/products/{id}", deps.AdminProducts.Update).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/products/{id}", deps.AdminProducts.Delete).Methods(http.MethodDelete)
	adminRoutes.HandleFunc("/products/{id}/restore", deps.AdminProducts.Restore).Methods(http.MethodPost)

	adminRoutes.HandleFunc("/categories", deps.AdminCategories.Create).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/categories/{id}", deps.AdminCategories.Update).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/categories/{id}", deps.AdminCategories.Delete).Methods(http.MethodDelete)

	adminRoutes.HandleFunc("/orders", deps.AdminOrders.List).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/orders/{id}", deps.AdminOrders.Detail).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/orders/{id}/status", deps.AdminOrders.UpdateStatus).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/orders/{code}/refund", deps.AdminOrders.Refund).Methods(http.MethodPost)

	adminRoutes.HandleFunc("/verifications/pending", deps.AdminVerifications.Pending).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/verifications/{id}/review", deps.AdminVerifications.Review).Methods(http.MethodPost)

	adminRoutes.HandleFunc("/reports/analytics", deps.AdminDashboard.Analytics).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/notifications", deps.AdminDashboard.Notifications).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/notifications/unread-count", deps.AdminDashboard.UnreadCount).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/notifications/{id}/read", deps.AdminDashboard.MarkNotificationRead).Methods(http.MethodPost)

	adminRoutes.HandleFunc("/settings", deps.AdminSettings.Get).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/settings/payment-method", deps.AdminSettings.SetPaymentMethod).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/settings/maintenance", deps.AdminSettings.SetMaintenance).Methods(http.MethodPut)

	adminRoutes.HandleFunc("/users", deps.AdminUsers.List).Methods(http.MethodGet)

	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))),
	).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
