package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/corebank/fdledger/internal/adapter/http/handler"
	"github.com/corebank/fdledger/internal/adapter/http/middleware"
	"github.com/corebank/fdledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	TransferHandler       *handler.TransferHandler
	FixedDepositHandler   *handler.FixedDepositHandler
	JobsHandler           *handler.JobsHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	Logging               *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.EmployeeIdentity)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts and postings
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Open)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/transactions", cfg.AccountHandler.ListTransactions)
			r.Post("/{id}/deposit", cfg.AccountHandler.Deposit)
			r.Post("/{id}/withdraw", cfg.AccountHandler.Withdraw)
			r.Get("/{id}/fixed-deposits", cfg.FixedDepositHandler.ListByAccount)
			r.Get("/{id}/fixed-deposits/eligibility", cfg.FixedDepositHandler.Eligibility)
		})

		r.Get("/account-types", cfg.AccountHandler.ListTypes)

		// Transfers
		r.Post("/transfers", cfg.TransferHandler.Create)

		// Fixed deposits
		r.Route("/fixed-deposits", func(r chi.Router) {
			r.Post("/", cfg.FixedDepositHandler.Create)
			r.Get("/{id}", cfg.FixedDepositHandler.Get)
			r.Post("/{id}/renew", cfg.FixedDepositHandler.Renew)
			r.Post("/{id}/close", cfg.FixedDepositHandler.Close)
		})

		// Batch job triggers
		r.Route("/jobs", func(r chi.Router) {
			r.Post("/fd-interest", cfg.JobsHandler.RunFDInterest)
			r.Post("/fd-maturity", cfg.JobsHandler.RunMaturity)
			r.Post("/savings-interest", cfg.JobsHandler.RunSavingsInterest)
		})

		// Reconciliation
		r.Route("/reconciliation", func(r chi.Router) {
			r.Get("/report", cfg.ReconciliationHandler.Report)
			r.Get("/accounts/{id}", cfg.ReconciliationHandler.ReplayAccount)
		})
	})

	return r
}
