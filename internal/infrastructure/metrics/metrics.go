package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	PostingsCreated  *prometheus.CounterVec
	PostingErrors    *prometheus.CounterVec
	TransfersCreated prometheus.Counter
	PostingAmount    prometheus.Histogram

	// Account metrics
	AccountsOpened prometheus.Counter

	// Fixed deposit metrics
	FixedDepositsCreated prometheus.Counter
	FixedDepositsMatured prometheus.Counter
	FixedDepositsClosed  prometheus.Counter
	FixedDepositsRenewed prometheus.Counter

	// Accrual job metrics
	JobRuns          *prometheus.CounterVec
	JobDuration      *prometheus.HistogramVec
	InterestCredited *prometheus.CounterVec
	JobFailures      *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns    prometheus.Counter
	ReconciliationBroken  prometheus.Counter
	ReconciliationChecked prometheus.Counter

	// Database metrics
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		PostingsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fdledger_postings_created_total",
				Help: "Total number of ledger entries posted by type",
			},
			[]string{"type"},
		),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fdledger_posting_errors_total",
				Help: "Total number of posting errors by type",
			},
			[]string{"error_type"},
		),
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fdledger_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		PostingAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fdledger_posting_amount",
			Help:    "Posted amounts",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),

		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fdledger_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),

		FixedDepositsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fdledger_fixed_deposits_created_total",
			Help: "Total number of fixed deposits created",
		}),
		FixedDepositsMatured: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fdledger_fixed_deposits_matured_total",
			Help: "Total number of fixed deposits matured",
		}),
		FixedDepositsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fdledger_fixed_deposits_closed_total",
			Help: "Total number of fixed deposits closed early",
		}),
		FixedDepositsRenewed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fdledger_fixed_deposits_renewed_total",
			Help: "Total number of fixed deposits renewed",
		}),

		JobRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fdledger_job_runs_total",
				Help: "Total accrual job runs by job name",
			},
			[]string{"job"},
		),
		JobDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fdledger_job_duration_seconds",
				Help:    "Accrual job duration by job name",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job"},
		),
		InterestCredited: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fdledger_interest_credited_total",
				Help: "Total interest postings credited by job name",
			},
			[]string{"job"},
		),
		JobFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fdledger_job_failures_total",
				Help: "Total accrual job failures by job name",
			},
			[]string{"job"},
		),

		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fdledger_reconciliation_runs_total",
			Help: "Total reconciliation sweeps",
		}),
		ReconciliationBroken: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fdledger_reconciliation_discrepancies_total",
			Help: "Total accounts found with a broken or drifted entry chain",
		}),
		ReconciliationChecked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fdledger_reconciliation_accounts_checked_total",
			Help: "Total accounts replayed during reconciliation sweeps",
		}),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fdledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fdledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
	}
}
