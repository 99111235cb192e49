package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	custommiddleware "storefront/internal/middleware"
	"storefront/internal/payment"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
	memoryCache *cache.Memory
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	srv := &Server{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Redis is dialed when either the cache backend or the rate limiter
	// needs it; a memory-cache deployment without rate limiting runs with
	// no Redis at all.
	if cfg.Cache.Backend == "redis" || cfg.RateLimit.Enabled {
		srv.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var appCache cache.Cache
	if cfg.Cache.Backend == "redis" {
		appCache = cache.NewRedis(srv.redisClient, cfg.Cache.TTL)
		logger.Info("Using Redis cache backend")
	} else {
		srv.memoryCache = cache.NewMemory(cfg.Cache.TTL)
		appCache = srv.memoryCache
		logger.Info("Using in-memory cache backend")
	}

	if cfg.RateLimit.Enabled {
		router.Use(custommiddleware.RateLimitMiddleware(srv.redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"database": database.Health(db),
		})
	})

	uowFactory := repository.NewFactory(db)
	gateway := payment.NewMockGateway(logger, cfg.Payment.GatewayDelay)

	productService := service.NewProductService(uowFactory, appCache, logger)
	orderService := service.NewOrderService(uowFactory, gateway, logger)
	categoryService := service.NewCategoryService(uowFactory, appCache, logger)
	articleService := service.NewArticleService(uowFactory, appCache, logger)

	transport.NewProductHandler(productService, logger).RegisterRoutes(router)
	transport.NewOrderHandler(orderService, logger).RegisterRoutes(router)
	transport.NewCategoryHandler(categoryService, logger).RegisterRoutes(router)
	transport.NewArticleHandler(articleService, logger).RegisterRoutes(router)

	srv.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return srv
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.memoryCache != nil {
		s.memoryCache.Close()
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
