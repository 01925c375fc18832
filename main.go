package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/mobstermerch/storefront/app/cmd"
	"github.com/mobstermerch/storefront/app/configs"
	"github.com/mobstermerch/storefront/app/handlers"
	"github.com/mobstermerch/storefront/app/handlers/admin"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/routes"
	"github.com/mobstermerch/storefront/app/services"
	"github.com/mobstermerch/storefront/app/utils/renderer"
	"github.com/mobstermerch/storefront/app/utils/sessions"
	"github.com/mobstermerch/storefront/app/utils/token"
)

func main() {
	env := configs.LoadENV

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	if env.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty! Please check your .env file.")
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	rdb, err := configs.OpenRedis()
	if err != nil {
		log.Fatal("Redis connection failed:", err)
	}

	configs.InitMidtransClients()

	sessionKeys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatal("Session keys failed to load:", err)
	}
	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)

	tokens := token.NewManager(env.JWTSecret, rdb)
	rnd := renderer.New()

	uploadDir := env.UploadDir
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	uploader := services.NewLocalUploader(uploadDir)

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	refundRepo := repositories.NewRefundRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	settingsService := services.NewSettingsService(settingRepo, rdb)
	authService := services.NewAuthService(userRepo, tokens)
	cartService := services.NewCartService(cartItemRepo, productRepo)
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	orderService := services.NewOrderService(db, orderRepo, productRepo, notificationRepo)
	analyticsService := services.NewAnalyticsService(db)
	gatewayService := services.NewGatewayService(
		db, orderRepo, paymentRepo, refundRepo, productRepo, notificationRepo,
		configs.GetMidtransSnapClient(), configs.GetMidtransCoreAPIClient(),
		env.MIDTRANS_SERVER_KEY, env.APP_URL,
	)
	checkoutService := services.NewCheckoutService(
		db, cartItemRepo, productRepo, addressRepo, orderRepo, orderItemRepo,
		paymentRepo, settingsService, gatewayService, env.UPI_VPA, env.UPI_PAYEE,
	)
	verificationService := services.NewVerificationService(
		db, cartItemRepo, addressRepo, orderRepo, orderItemRepo,
		verificationRepo, productRepo, notificationRepo,
	)

	allowedOrigins := []string{"http://localhost:3000"}
	if env.CORS_ORIGIN != "" {
		allowedOrigins = strings.Split(env.CORS_ORIGIN, ",")
	}

	router := routes.NewRouter(routes.RouterDeps{
		Auth:          handlers.NewAuthHandler(authService, sessionStore, rnd),
		Products:      handlers.NewProductHandler(productRepo, categoryRepo, rnd),
		Cart:          handlers.NewCartHandler(cartService, rnd),
		Checkout:      handlers.NewCheckoutHandler(checkoutService, addressRepo, rnd),
		Verification:  handlers.NewPaymentVerificationHandler(verificationService, uploader, rnd),
		Gateway:       handlers.NewGatewayHandler(gatewayService, orderService, rnd),
		Orders:        handlers.NewOrderHandler(orderService, rnd),
		Notifications: handlers.NewNotificationHandler(notificationRepo, rnd),

		AdminProducts:      admin.NewProductAdminHandler(catalogService, productRepo, uploader, rnd),
		AdminCategories:    admin.NewCategoryAdminHandler(catalogService, rnd),
		AdminOrders:        admin.NewOrderAdminHandler(orderService, gatewayService, rnd),
		AdminVerifications: admin.NewVerificationAdminHandler(verificationService, rnd),
		AdminDashboard:     admin.NewDashboardHandler(analyticsService, notificationRepo, rnd),
		AdminSettings:      admin.NewSettingsAdminHandler(settingsService, rnd),
		AdminUsers:         admin.NewUserAdminHandler(userRepo, rnd),

		Tokens:    tokens,
		Session:   sessionStore,
		UserRepo:  userRepo,
		Settings:  settingsService,
		UploadDir: uploadDir,

		AllowedOrigins: allowedOrigins,
	})

	addr := env.Port
	if addr == "" {
		addr = ":8080"
	}

	server := http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("server stopped:", err)
	}
}
