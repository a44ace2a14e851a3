package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
)

// ReconciliationUseCase verifies the append-only ledger: replaying an
// account's entries in posting order from the first balance-before must
// reproduce every snapshot and land on the recorded balance.
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	txRepo      TransactionRepository
	clock       Clock
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(accountRepo AccountRepository, txRepo TransactionRepository, clock Clock) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		clock:       clock,
	}
}

// ReplayResult is the outcome of replaying one account's entry log.
type ReplayResult struct {
	AccountID       string
	RecordedBalance decimal.Decimal
	ReplayedBalance decimal.Decimal
	Difference      decimal.Decimal
	EntryCount      int
	IsReconciled    bool
	BrokenChainAt   string // entry ID of the first snapshot mismatch, if any
	CheckedAt       time.Time
}

// ReplayAccount replays the full entry log for an account.
func (uc *ReconciliationUseCase) ReplayAccount(ctx context.Context, accountID string) (*ReplayResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.txRepo.ListByAccountAsc(ctx, accountID)
	if err != nil {
		return nil, err
	}

	result := &ReplayResult{
		AccountID:       accountID,
		RecordedBalance: account.Balance,
		EntryCount:      len(entries),
		CheckedAt:       uc.clock.Now(),
	}

	running := decimal.Zero
	if len(entries) > 0 {
		running = entries[0].BalanceBefore
	}

	for _, entry := range entries {
		if !entry.BalanceBefore.Equal(running) {
			result.BrokenChainAt = entry.ID
			result.ReplayedBalance = running
			result.Difference = account.Balance.Sub(running)

			return result, nil
		}

		running = entry.BalanceAfter()
	}

	result.ReplayedBalance = running
	result.Difference = account.Balance.Sub(running)
	result.IsReconciled = account.Balance.Equal(running)

	return result, nil
}

// Report aggregates replay results across accounts.
type Report struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReplayResult
	CheckedAt          time.Time
}

// ReconcileAll replays every account's entry log.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) (*Report, error) {
	limit, offset := domain.ValidatePagination(1000, 0)

	report := &Report{CheckedAt: uc.clock.Now()}

	for {
		accounts, err := uc.accountRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, err
		}

		if len(accounts) == 0 {
			break
		}

		for _, account := range accounts {
			result, err := uc.ReplayAccount(ctx, account.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to replay account %s: %w", account.ID, err)
			}

			report.TotalAccounts++
			if result.IsReconciled {
				report.ReconciledAccounts++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		if len(accounts) < limit {
			break
		}

		offset += limit
	}

	return report, nil
}
