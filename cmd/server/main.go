package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/corebank/fdledger/internal/adapter/http"
	"github.com/corebank/fdledger/internal/adapter/http/handler"
	"github.com/corebank/fdledger/internal/adapter/http/middleware"
	postgresRepo "github.com/corebank/fdledger/internal/adapter/repository/postgres"
	redisRepo "github.com/corebank/fdledger/internal/adapter/repository/redis"
	"github.com/corebank/fdledger/internal/infrastructure/config"
	"github.com/corebank/fdledger/internal/infrastructure/logger"
	"github.com/corebank/fdledger/internal/infrastructure/metrics"
	"github.com/corebank/fdledger/internal/infrastructure/postgres"
	"github.com/corebank/fdledger/internal/infrastructure/redis"
	"github.com/corebank/fdledger/internal/scheduler"
	"github.com/corebank/fdledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.DefaultContextLogger = &log.Logger
	batchLogger := logger.NewBatch(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	fdRepo := postgresRepo.NewFixedDepositRepository(pool)
	seqRepo := postgresRepo.NewSequenceRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	clock := usecase.SystemClock{}

	// Use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, customerRepo, txRepo, seqRepo, idGen, clock, cache)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, txRepo, idGen, clock)
	fdUC := usecase.NewFixedDepositUseCase(txManager, accountRepo, fdRepo, txRepo, seqRepo, idGen, clock)
	accrualUC := usecase.NewAccrualUseCase(txManager, accountRepo, fdRepo, txRepo, idGen, clock, batchLogger)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, txRepo, clock)

	// Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC, ledgerUC),
		TransferHandler:       handler.NewTransferHandler(ledgerUC),
		FixedDepositHandler:   handler.NewFixedDepositHandler(fdUC),
		JobsHandler:           handler.NewJobsHandler(accrualUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		Logging:               middleware.NewLoggingMiddleware(log.Logger),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	schedCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()

	if cfg.SchedulerEnabled {
		sched := scheduler.New(scheduler.Config{
			AccrualUC:               accrualUC,
			Logger:                  batchLogger,
			Metrics:                 appMetrics,
			Retryer:                 postgresRepo.NewRetrier(),
			FDInterestInterval:      cfg.FDInterestInterval,
			MaturityInterval:        cfg.MaturityInterval,
			SavingsInterestInterval: cfg.SavingsInterestInterval,
		})

		go func() {
			if err := sched.Start(schedCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("scheduler stopped")
			}
		}()
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
