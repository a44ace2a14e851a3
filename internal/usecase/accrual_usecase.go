package usecase

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/corebank/fdledger/internal/domain"
)

// AccrualUseCase runs the recurring interest and maturity batch jobs. Each
// entity is its own atomic unit: a failure crediting one deposit or account
// is logged and counted without aborting the rest of the batch, and every
// job gates itself so re-running inside the same window never double-pays.
type AccrualUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	fdRepo      FixedDepositRepository
	txRepo      TransactionRepository
	idGen       IDGenerator
	clock       Clock
	logger      *slog.Logger
}

// NewAccrualUseCase creates a new AccrualUseCase.
func NewAccrualUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	fdRepo FixedDepositRepository,
	txRepo TransactionRepository,
	idGen IDGenerator,
	clock Clock,
	logger *slog.Logger,
) *AccrualUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &AccrualUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		fdRepo:      fdRepo,
		txRepo:      txRepo,
		idGen:       idGen,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *AccrualUseCase) poster() poster {
	return poster{accountRepo: uc.accountRepo, txRepo: uc.txRepo, idGen: uc.idGen}
}

// RunReport summarizes one batch run.
type RunReport struct {
	Processed int
	Credited  int
	Matured   int64
	Skipped   int
	Failed    int
}

// RunFDInterestJob credits monthly interest to every ACTIVE fixed deposit
// whose last interest payment (or start date) is at least 30 days old.
func (uc *AccrualUseCase) RunFDInterestJob(ctx context.Context) (*RunReport, error) {
	ids, err := uc.fdRepo.ListActiveIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &RunReport{}

	for _, id := range ids {
		report.Processed++

		credited, err := uc.accrueFixedDeposit(ctx, id)
		if err != nil {
			report.Failed++
			uc.logger.Error("fd interest accrual failed",
				slog.String("fd_id", id),
				slog.String("error", err.Error()))

			continue
		}

		if credited {
			report.Credited++
		} else {
			report.Skipped++
		}
	}

	return report, nil
}

// accrueFixedDeposit processes one deposit in its own transaction. The FD
// row lock serializes against a concurrent Close and a concurrent second
// job run; the gate check re-reads under that lock.
func (uc *AccrualUseCase) accrueFixedDeposit(ctx context.Context, fdID string) (bool, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	fd, err := uc.fdRepo.GetByIDForUpdate(ctx, tx, fdID)
	if err != nil {
		return false, err
	}

	if fd.Status != domain.FDActive {
		return false, nil
	}

	last, err := uc.txRepo.LastByFixedDeposit(ctx, tx, fd.ID, domain.TxFDInterest)
	if err != nil {
		return false, err
	}

	since := fd.StartDate
	if last != nil {
		since = last.CreatedAt
	}

	now := uc.clock.Now()
	if int(now.Sub(since).Hours()/24) < InterestGateDays {
		return false, nil
	}

	monthly := fd.MonthlyInterest()
	if !monthly.IsPositive() {
		return false, nil
	}

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, fd.AccountID)
	if err != nil {
		return false, err
	}

	if !account.IsActive() {
		return false, domain.ErrAccountInactive
	}

	if _, err := uc.poster().post(ctx, tx, now, postingInput{
		Account:     account,
		Type:        domain.TxFDInterest,
		Amount:      monthly,
		Description: fmt.Sprintf("Monthly interest on %s", fd.ID),
		FDID:        &fd.ID,
	}); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// RunMaturityJob transitions every ACTIVE deposit past its maturity date to
// MATURED in bulk. Idempotent: a second run only sees rows still ACTIVE.
func (uc *AccrualUseCase) RunMaturityJob(ctx context.Context) (*RunReport, error) {
	matured, err := uc.fdRepo.MatureDue(ctx, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	return &RunReport{Matured: matured}, nil
}

// RunSavingsInterestJob credits monthly interest to every ACTIVE account
// whose type carries a positive rate, at most once per calendar month.
// Interest is floored, not rounded, so the bank never over-credits.
func (uc *AccrualUseCase) RunSavingsInterestJob(ctx context.Context) (*RunReport, error) {
	accounts, err := uc.accountRepo.ListActiveInterestBearing(ctx)
	if err != nil {
		return nil, err
	}

	types, err := uc.typeMap(ctx)
	if err != nil {
		return nil, err
	}

	report := &RunReport{}

	for _, account := range accounts {
		report.Processed++

		accountType, ok := types[account.TypeID]
		if !ok {
			report.Failed++
			uc.logger.Error("savings accrual: unknown account type",
				slog.String("account_id", account.ID),
				slog.Int("type_id", int(account.TypeID)))

			continue
		}

		credited, err := uc.accrueSavings(ctx, account.ID, accountType)
		if err != nil {
			report.Failed++
			uc.logger.Error("savings interest accrual failed",
				slog.String("account_id", account.ID),
				slog.String("error", err.Error()))

			continue
		}

		if credited {
			report.Credited++
		} else {
			report.Skipped++
		}
	}

	return report, nil
}

func (uc *AccrualUseCase) accrueSavings(ctx context.Context, accountID string, accountType *domain.AccountType) (bool, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return false, err
	}

	if !account.IsActive() {
		return false, nil
	}

	now := uc.clock.Now()

	paid, err := uc.txRepo.ExistsForAccountInMonth(ctx, tx, account.ID, domain.TxSavingsInterest, now)
	if err != nil {
		return false, err
	}

	if paid {
		return false, nil
	}

	interest := account.MonthlySavingsInterest(accountType)
	if !interest.IsPositive() {
		return false, nil
	}

	if _, err := uc.poster().post(ctx, tx, now, postingInput{
		Account:     account,
		Type:        domain.TxSavingsInterest,
		Amount:      interest,
		Description: fmt.Sprintf("Savings interest for %s", now.Format("2006-01")),
	}); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func (uc *AccrualUseCase) typeMap(ctx context.Context) (map[int32]*domain.AccountType, error) {
	types, err := uc.accountRepo.ListTypes(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[int32]*domain.AccountType, len(types))
	for _, t := range types {
		m[t.ID] = t
	}

	return m, nil
}
