package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/sheeto/backend/internal/application/cart"
	catalogapp "github.com/sheeto/backend/internal/application/catalog"
	checkoutapp "github.com/sheeto/backend/internal/application/checkout"
	identityapp "github.com/sheeto/backend/internal/application/identity"
	orderapp "github.com/sheeto/backend/internal/application/order"
	"github.com/sheeto/backend/internal/domain/cart"
	"github.com/sheeto/backend/internal/infrastructure/auth"
	"github.com/sheeto/backend/internal/infrastructure/cache"
	"github.com/sheeto/backend/internal/infrastructure/config"
	"github.com/sheeto/backend/internal/infrastructure/event"
	"github.com/sheeto/backend/internal/infrastructure/logger"
	"github.com/sheeto/backend/internal/infrastructure/persistence"
	"github.com/sheeto/backend/internal/interfaces/http/handler"
	"github.com/sheeto/backend/internal/interfaces/http/middleware"
	"github.com/sheeto/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Sheeto backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := persistence.Migrate(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected")

	// Carts live in Redis; development falls back to process memory so the
	// storefront runs without a Redis instance.
	var cartStore cart.Store
	redisStore, err := cache.NewRedisCartStore(cfg.Redis, cfg.Checkout.CartTTL, log)
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, carts held in process memory", zap.Error(err))
		cartStore = cache.NewInMemoryCartStore()
	} else {
		cartStore = redisStore
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
	}

	eventBus := event.NewInMemoryEventBus(log)
	ctx := context.Background()
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(ctx)
	}()
	eventBus.Subscribe(event.NewStockAuditHandler(log, event.DefaultLowStockThreshold))
	eventBus.Subscribe(event.NewOrderAuditHandler(log))

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, eventBus)
	cartService := cartapp.NewCartService(cartStore, productRepo)
	checkoutService := checkoutapp.NewCheckoutService(cartStore, productService, orderRepo, eventBus, cfg.Checkout.ShippingCost, log)
	orderService := orderapp.NewOrderService(orderRepo, eventBus)
	authService := identityapp.NewAuthService(userRepo, jwtService, eventBus, log)

	// Handlers
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	authHandler := handler.NewAuthHandler(authService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(middleware.CORSFromConfig(cfg.HTTP)),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	r := router.NewRouter(engine)

	// Each handler owns its route table; the domain groups only add
	// prefixes and middleware.
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog").
		Apply(productHandler)

	cartRoutes := router.NewDomainGroup("cart", "/cart").
		Use(middleware.CartSession(cfg.Session)).
		Apply(cartHandler)

	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout").
		Use(middleware.CartSession(cfg.Session), middleware.RequireAuth(jwtService)).
		Apply(checkoutHandler)

	orderRoutes := router.NewDomainGroup("orders", "/orders").
		Use(middleware.RequireAuth(jwtService)).
		Apply(orderHandler)

	authRoutes := router.NewDomainGroup("auth", "/auth").
		Apply(authHandler)
	authRoutes.Group("account", "").
		Use(middleware.RequireAuth(jwtService)).
		Apply(router.RegistrarFunc(authHandler.RegisterProtectedRoutes))

	adminRoutes := router.NewDomainGroup("admin", "/admin").
		Use(middleware.RequireAuth(jwtService), middleware.RequireAdmin()).
		Apply(
			router.RegistrarFunc(productHandler.RegisterAdminRoutes),
			router.RegistrarFunc(orderHandler.RegisterAdminRoutes),
		)

	systemRoutes := router.NewDomainGroup("system", "/system").
		Apply(systemHandler)

	r.Register(catalogRoutes).
		Register(cartRoutes).
		Register(checkoutRoutes).
		Register(orderRoutes).
		Register(authRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	r.Setup()

	engine.GET("/health", systemHandler.Health)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
