package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	alertingapp "github.com/storefront/backend/internal/application/alerting"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	customerapp "github.com/storefront/backend/internal/application/customer"
	identityapp "github.com/storefront/backend/internal/application/identity"
	shoppingapp "github.com/storefront/backend/internal/application/shopping"
	"github.com/storefront/backend/internal/domain/shopping"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the cart cache and the token blacklist. When it is
	// unreachable the server still starts with in-process fallbacks so
	// a local setup does not require a Redis instance.
	redisClient := connectRedis(cfg, log)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	var cartStore shopping.CartStore
	var blacklist auth.TokenBlacklist
	if redisClient != nil {
		cartStore = cache.NewRedisCartStore(redisClient, cfg.Cart.TTL)
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		cartStore = cache.NewInMemoryCartStore(cfg.Cart.TTL)
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Initialize repositories
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	attributeRepo := persistence.NewGormAttributeRepository(db.DB)
	masterDataRepo := persistence.NewGormMasterDataRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	apiKeyRepo := persistence.NewGormAPIKeyRepository(db.DB)
	alertRuleRepo := persistence.NewGormAlertRuleRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)

	// Initialize event bus and subscribe the alerting pipeline
	eventBus := event.NewInMemoryEventBus(log)
	alertHandler := alertingapp.NewAlertEventHandler(alertRuleRepo, templateRepo, log)
	eventBus.Subscribe(alertHandler)
	log.Info("Alert event handler registered",
		zap.Strings("event_types", alertHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, roleRepo, customerRepo, jwtService, blacklist, cfg.Auth, eventBus, log)
	if redisClient != nil {
		authService.SetSessionStore(auth.NewRedisSessionStore(redisClient))
	} else {
		authService.SetSessionStore(auth.NewInMemorySessionStore())
	}
	userService := identityapp.NewUserService(userRepo, roleRepo, log)
	roleService := identityapp.NewRoleService(roleRepo, userRepo)
	apiKeyService := identityapp.NewAPIKeyService(apiKeyRepo, log)

	brandService := catalogapp.NewBrandService(brandRepo, productRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, brandRepo, categoryRepo)
	attributeService := catalogapp.NewAttributeService(attributeRepo)
	masterDataService := catalogapp.NewMasterDataService(masterDataRepo)

	customerService := customerapp.NewCustomerService(customerRepo, addressRepo, eventBus, log)
	cartService := shoppingapp.NewCartService(cartStore, productRepo)
	orderService, err := shoppingapp.NewOrderService(orderRepo, cartStore, productRepo, customerRepo, eventBus, cfg.Checkout, log)
	if err != nil {
		log.Fatal("Invalid checkout configuration", zap.Error(err))
	}

	alertRuleService := alertingapp.NewAlertRuleService(alertRuleRepo, templateRepo)
	templateService := alertingapp.NewTemplateService(templateRepo)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		System:     handler.NewSystemHandler(db.DB, redisClient),
		Auth:       handler.NewAuthHandler(authService, cfg.JWT),
		Shop:       handler.NewShopHandler(productService, categoryService, brandService),
		Cart:       handler.NewCartHandler(cartService, customerService),
		Order:      handler.NewOrderHandler(orderService, customerService),
		Brand:      handler.NewBrandHandler(brandService),
		Category:   handler.NewCategoryHandler(categoryService),
		Product:    handler.NewProductHandler(productService),
		Attribute:  handler.NewAttributeHandler(attributeService),
		MasterData: handler.NewMasterDataHandler(masterDataService),
		Customer:   handler.NewCustomerHandler(customerService),
		User:       handler.NewUserHandler(userService),
		Role:       handler.NewRoleHandler(roleService),
		APIKey:     handler.NewAPIKeyHandler(apiKeyService),
		Alerting:   handler.NewAlertingHandler(alertRuleService, templateService),
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine := router.New(router.Config{
		Env:    cfg.App.Env,
		HTTP:   cfg.HTTP,
		Logger: log,
		JWT: middleware.JWTConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		},
		APIKeys:     apiKeyService,
		RateLimiter: rateLimiter,
	}, handlers)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// connectRedis dials Redis and returns nil when it is not reachable
func connectRedis(cfg *config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, falling back to in-process cart and blacklist stores",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		_ = client.Close()
		return nil
	}

	log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	return client
}
