package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/scmc/club-backend/internal/adapters/cache"
	"github.com/scmc/club-backend/internal/adapters/database"
	"github.com/scmc/club-backend/internal/adapters/events"
	"github.com/scmc/club-backend/internal/adapters/providers/identity"
	"github.com/scmc/club-backend/internal/adapters/providers/payments"
	"github.com/scmc/club-backend/internal/api/handlers"
	"github.com/scmc/club-backend/internal/api/middleware"
	"github.com/scmc/club-backend/internal/api/routes"
	"github.com/scmc/club-backend/internal/application/services"
	"github.com/scmc/club-backend/internal/domain/providers"
	"github.com/scmc/club-backend/internal/domain/repositories"
	"github.com/scmc/club-backend/internal/infrastructure/clients/postgres"
	"github.com/scmc/club-backend/internal/infrastructure/clients/redis"
	"github.com/scmc/club-backend/internal/infrastructure/observability"
	"github.com/scmc/club-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	zlog.Info().
		Str("service", cfg.OTEL.ServiceName).
		Str("version", cfg.OTEL.ServiceVersion).
		Str("env", cfg.Env).
		Msg("Starting API Server")

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for the admin booking stream
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters
	userAdapter := database.NewUserAdapter(pgClient)
	bookingAdapter := database.NewBookingAdapter(pgClient)
	couponAdapter := database.NewCouponAdapter(pgClient)
	paymentAdapter := database.NewPaymentAdapter(pgClient)
	announcementAdapter := database.NewAnnouncementAdapter(pgClient)
	eventAdapter := database.NewEventAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)

	// Wrap the court catalog with caching if Redis is available
	baseCourtAdapter := database.NewCourtAdapter(pgClient)
	var courtAdapter repositories.CourtRepository
	if cacheProvider != nil {
		courtAdapter = database.NewCachedCourtAdapter(baseCourtAdapter, cacheProvider)
		log.Println("Court adapter wrapped with caching layer")
	} else {
		courtAdapter = baseCourtAdapter
		log.Println("Court adapter running without cache (Redis unavailable)")
	}

	// Initialize external providers
	if cfg.Auth.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is not set; all tokens will fail verification")
	}
	tokenVerifier := identity.NewJWTVerifier(cfg.Auth.JWTSecret)

	if cfg.Stripe.SecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY is not set; payment intents will fail")
	}
	paymentGateway := payments.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.BaseURL)

	// Initialize services
	userService := services.NewUserService(userAdapter)
	membershipService := services.NewMembershipService(userAdapter, bookingAdapter)
	bookingService := services.NewBookingService(bookingAdapter, userAdapter, membershipService, eventBus, metrics)
	couponService := services.NewCouponService(couponAdapter)
	paymentService := services.NewPaymentService(paymentAdapter, paymentGateway, eventBus, metrics)
	courtService := services.NewCourtService(courtAdapter)
	announcementService := services.NewAnnouncementService(announcementAdapter)
	eventService := services.NewEventService(eventAdapter)
	reviewService := services.NewReviewService(reviewAdapter)
	statsService := services.NewStatsService(courtAdapter, userAdapter, bookingAdapter)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	couponHandler := handlers.NewCouponHandler(couponService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	memberHandler := handlers.NewMemberHandler(membershipService)
	courtHandler := handlers.NewCourtHandler(courtService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService, eventService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	statsHandler := handlers.NewStatsHandler(statsService)
	sseHandler := handlers.NewSSEHandler(eventBus)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenVerifier, userService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		userHandler,
		bookingHandler,
		couponHandler,
		paymentHandler,
		memberHandler,
		courtHandler,
		announcementHandler,
		reviewHandler,
		statsHandler,
		sseHandler,
		authMiddleware,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := cfg.Server.ServerAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
