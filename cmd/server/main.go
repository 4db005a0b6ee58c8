package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/casecraft/backend/internal/application/catalog"
	designapp "github.com/casecraft/backend/internal/application/design"
	mediaapp "github.com/casecraft/backend/internal/application/media"
	"github.com/casecraft/backend/internal/infrastructure/ai"
	"github.com/casecraft/backend/internal/infrastructure/cache"
	"github.com/casecraft/backend/internal/infrastructure/config"
	"github.com/casecraft/backend/internal/infrastructure/event"
	"github.com/casecraft/backend/internal/infrastructure/logger"
	"github.com/casecraft/backend/internal/infrastructure/persistence"
	"github.com/casecraft/backend/internal/infrastructure/storage"
	"github.com/casecraft/backend/internal/interfaces/http/handler"
	"github.com/casecraft/backend/internal/interfaces/http/middleware"
	"github.com/casecraft/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//	@title			CaseCraft Backend API
//	@version		1.0
//	@description	Phone case customization back office: catalog, option evaluation, design library and storage janitor.

//	@host		localhost:8080
//	@BasePath	/api

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting CaseCraft Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	optionGroupRepo := persistence.NewGormOptionGroupRepository(db.DB)
	optionItemRepo := persistence.NewGormOptionItemRepository(db.DB)
	designRepo := persistence.NewGormCustomDesignRepository(db.DB)
	assetRepo := persistence.NewGormAssetRepository(db.DB)
	referenceScanner := persistence.NewGormReferenceScanner(db.DB)

	// Redis backs the storefront evaluation cache. The API stays functional
	// without it: cache misses just recompute.
	var redisClient *redis.Client
	var catalogCache *cache.CatalogCache
	redisClient, err = cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, storefront option cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		catalogCache = cache.NewCatalogCache(redisClient,
			cache.WithTTL(cfg.Redis.CacheTTL),
			cache.WithCacheLogger(log),
		)
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize object storage and make sure the managed buckets exist
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := objectStorage.EnsureBuckets(ctx, cfg.Storage.Buckets()); err != nil {
			cancel()
			log.Fatal("Failed to ensure storage buckets", zap.Error(err))
		}
		cancel()
	}
	log.Info("Object storage ready", zap.Strings("buckets", cfg.Storage.Buckets()))

	// Inference provider client for the design-tool image effects
	aiClient, err := ai.NewReplicateClient(&cfg.AI, ai.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize inference client", zap.Error(err))
	}

	// Initialize event bus and subscribe the cache invalidator
	eventBus := event.NewInMemoryEventBus(log)

	var invalidator *cache.CatalogInvalidator
	if redisClient != nil {
		invalidator = cache.NewCatalogInvalidator(redisClient, catalogCache, log)
		eventBus.Subscribe(invalidator)
		if err := invalidator.Start(context.Background()); err != nil {
			log.Fatal("Failed to start cache invalidator", zap.Error(err))
		}
		defer invalidator.Stop()
	}

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, eventBus)
	productService := catalogapp.NewProductService(
		productRepo, categoryRepo, objectStorage, cfg.Storage.ModelsBucket, eventBus, log,
	)
	optionService := catalogapp.NewOptionService(optionGroupRepo, optionItemRepo, productRepo, eventBus)
	designService := designapp.NewDesignService(designRepo, productRepo, optionGroupRepo, eventBus)
	assetService := mediaapp.NewAssetService(
		assetRepo, objectStorage, cfg.Storage.DesignBucket, cfg.Storage.MaxUploadBytes, log,
	)
	janitorService := mediaapp.NewJanitorService(
		referenceScanner, objectStorage, cfg.Storage.Buckets(), cfg.Janitor.MinObjectAge, log,
	)
	aiService := mediaapp.NewAIService(aiClient, objectStorage, cfg.Storage.AssetsBucket,
		mediaapp.AIServiceConfig{
			CartoonVersion:  cfg.AI.CartoonVersion,
			RemoveBgVersion: cfg.AI.RemoveBgVersion,
			MaxUploadBytes:  cfg.Storage.MaxUploadBytes,
		}, log,
	)

	// Initialize handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	optionHandler := handler.NewOptionHandler(optionService)
	storefrontHandler := handler.NewStorefrontHandler(optionService, catalogCache)
	designHandler := handler.NewDesignHandler(designService)
	assetHandler := handler.NewAssetHandler(assetService)
	janitorHandler := handler.NewJanitorHandler(janitorService)
	aiHandler := handler.NewAIHandler(aiService)

	readinessChecks := []handler.ReadinessCheck{
		{Name: "database", Check: func(ctx context.Context) error { return db.Ping() }},
	}
	if redisClient != nil {
		readinessChecks = append(readinessChecks, handler.ReadinessCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	systemHandler := handler.NewSystemHandler(readinessChecks...)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:        cfg.HTTP.CORSAllowOrigins,
		AllowOriginSuffixes: cfg.HTTP.CORSAllowOriginSuffixes,
		AllowMethods:        cfg.HTTP.CORSAllowMethods,
		AllowHeaders:        cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:       []string{"X-Request-ID"},
		AllowCredentials:    true,
		MaxAge:              12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Probes live outside the API prefix
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Setup API routes using router
	r := router.NewRouter(engine)

	// Catalog domain: categories, option groups and products
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/categories", categoryHandler.Create)
	catalogRoutes.GET("/categories/tree", categoryHandler.GetTree)
	catalogRoutes.GET("/categories/roots", categoryHandler.GetRoots)
	catalogRoutes.GET("/categories/:id", categoryHandler.GetByID)
	catalogRoutes.GET("/categories/:id/children", categoryHandler.GetChildren)
	catalogRoutes.PUT("/categories/:id", categoryHandler.Update)
	catalogRoutes.POST("/categories/:id/reorder-children", categoryHandler.ReorderChildren)
	catalogRoutes.DELETE("/categories/:id", categoryHandler.Delete)

	catalogRoutes.POST("/option-groups", optionHandler.CreateGroup)
	catalogRoutes.GET("/option-groups", optionHandler.ListGroups)
	catalogRoutes.GET("/option-groups/:id", optionHandler.GetGroup)
	catalogRoutes.PUT("/option-groups/:id", optionHandler.UpdateGroup)
	catalogRoutes.DELETE("/option-groups/:id", optionHandler.DeleteGroup)
	catalogRoutes.POST("/option-groups/:id/duplicate", optionHandler.DuplicateGroup)
	catalogRoutes.PUT("/option-groups/:id/sub-attributes", optionHandler.ReplaceSubAttributes)
	catalogRoutes.POST("/option-groups/:id/items", optionHandler.AddItem)
	catalogRoutes.PUT("/option-groups/:id/items/:itemId", optionHandler.UpdateItem)
	catalogRoutes.DELETE("/option-groups/:id/items/:itemId", optionHandler.DeleteItem)

	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)

	// Legacy design-tool path: image removal lives under /api/products
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.POST("/:id/delete-image", productHandler.DeleteImage)

	// Design-tool asset library
	assetRoutes := router.NewDomainGroup("assets", "/assets")
	assetRoutes.POST("", assetHandler.Upload)
	assetRoutes.GET("", assetHandler.List)
	assetRoutes.DELETE("/:id", assetHandler.Delete)

	// Saved customer designs
	designRoutes := router.NewDomainGroup("designs", "/designs")
	designRoutes.POST("", designHandler.Save)
	designRoutes.GET("", designHandler.List)
	designRoutes.GET("/:id", designHandler.GetByID)
	designRoutes.POST("/:id/rename", designHandler.Rename)
	designRoutes.DELETE("/:id", designHandler.Delete)

	// Operator-only storage janitor
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.POST("/janitor/scan", janitorHandler.Scan)
	adminRoutes.POST("/janitor/purge", janitorHandler.Purge)

	// Storefront-facing option evaluation
	storefrontRoutes := router.NewDomainGroup("storefront", "/storefront")
	storefrontRoutes.GET("/products/:id/options", storefrontHandler.GetOptions)
	storefrontRoutes.POST("/products/:id/quote", storefrontHandler.Quote)

	// Design-tool image effects. Each request costs an inference run, so
	// these get a per-IP rate limit on top of the global middleware stack.
	aiLimiter := middleware.NewRateLimiter(10, time.Minute)
	aiRoutes := router.NewDomainGroup("ai", "/ai")
	aiRoutes.Use(middleware.RateLimit(aiLimiter))
	aiRoutes.POST("/cartoon", aiHandler.Cartoonize)
	aiRoutes.POST("/remove-bg", aiHandler.RemoveBackground)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(catalogRoutes, productRoutes, assetRoutes, designRoutes,
		adminRoutes, storefrontRoutes, aiRoutes, systemRoutes)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
