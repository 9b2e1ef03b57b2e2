package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/payzap/payzap/internal/adapter/authorizer"
	httpAdapter "github.com/payzap/payzap/internal/adapter/http"
	"github.com/payzap/payzap/internal/adapter/http/handler"
	postgresRepo "github.com/payzap/payzap/internal/adapter/repository/postgres"
	redisRepo "github.com/payzap/payzap/internal/adapter/repository/redis"
	"github.com/payzap/payzap/internal/infrastructure/auth"
	"github.com/payzap/payzap/internal/infrastructure/config"
	"github.com/payzap/payzap/internal/infrastructure/logger"
	"github.com/payzap/payzap/internal/infrastructure/postgres"
	"github.com/payzap/payzap/internal/infrastructure/redis"
	"github.com/payzap/payzap/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger
	zerolog.SetGlobalLevel(appLogger.GetLevel())

	initialBalance, err := decimal.NewFromString(cfg.InitialBalance)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.InitialBalance).Msg("invalid INITIAL_BALANCE")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories and external clients
	accountRepo := postgresRepo.NewAccountRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	authorizerClient := authorizer.NewClient(cfg.AuthorizerURL, &http.Client{Timeout: cfg.AuthorizerTimeout})
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, initialBalance)
	transferUC := usecase.NewTransferUseCase(accountRepo, ledgerRepo, authorizerClient, idGen, appLogger)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	authHandler := handler.NewAuthHandler(accountUC, jwtManager)
	transferHandler := handler.NewTransferHandler(transferUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		AuthHandler:      authHandler,
		TransferHandler:  transferHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
