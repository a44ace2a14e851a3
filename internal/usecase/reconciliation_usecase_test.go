package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank/fdledger/internal/domain"
	"github.com/corebank/fdledger/internal/usecase"
	"github.com/corebank/fdledger/internal/usecase/mocks"
)

func newReconciliationFixture(t *testing.T) (*mocks.MockAccountRepository, *mocks.MockTransactionRepository, *usecase.ReconciliationUseCase) {
	t.Helper()

	accountRepo := mocks.NewMockAccountRepository()
	txRepo := mocks.NewMockTransactionRepository()
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	return accountRepo, txRepo, usecase.NewReconciliationUseCase(accountRepo, txRepo, clock)
}

func entry(id, accountID string, txType domain.TransactionType, amount, before int64) *domain.Transaction {
	return &domain.Transaction{
		ID:            id,
		AccountID:     accountID,
		Type:          txType,
		Amount:        decimal.NewFromInt(amount),
		BalanceBefore: decimal.NewFromInt(before),
	}
}

func TestReconciliationUseCase_ReplayAccount(t *testing.T) {
	t.Run("clean ledger reconciles", func(t *testing.T) {
		accountRepo, txRepo, uc := newReconciliationFixture(t)

		accountRepo.Seed(&domain.Account{
			ID:      "S-001-001-00001",
			Balance: decimal.NewFromInt(2500),
			Status:  domain.AccountActive,
		})
		txRepo.Create(context.Background(), nil, entry("e1", "S-001-001-00001", domain.TxInitial, 2000, 0))
		txRepo.Create(context.Background(), nil, entry("e2", "S-001-001-00001", domain.TxDeposit, 1000, 2000))
		txRepo.Create(context.Background(), nil, entry("e3", "S-001-001-00001", domain.TxWithdrawal, -500, 3000))

		result, err := uc.ReplayAccount(context.Background(), "S-001-001-00001")
		require.NoError(t, err)

		assert.True(t, result.IsReconciled)
		assert.Equal(t, 3, result.EntryCount)
		assert.True(t, result.ReplayedBalance.Equal(decimal.NewFromInt(2500)))
		assert.True(t, result.Difference.IsZero())
		assert.Empty(t, result.BrokenChainAt)
	})

	t.Run("detects a broken snapshot chain", func(t *testing.T) {
		accountRepo, txRepo, uc := newReconciliationFixture(t)

		accountRepo.Seed(&domain.Account{
			ID:      "S-001-001-00001",
			Balance: decimal.NewFromInt(3000),
			Status:  domain.AccountActive,
		})
		txRepo.Create(context.Background(), nil, entry("e1", "S-001-001-00001", domain.TxInitial, 2000, 0))
		// Snapshot says 2500 but the running balance is 2000.
		txRepo.Create(context.Background(), nil, entry("e2", "S-001-001-00001", domain.TxDeposit, 1000, 2500))

		result, err := uc.ReplayAccount(context.Background(), "S-001-001-00001")
		require.NoError(t, err)

		assert.False(t, result.IsReconciled)
		assert.Equal(t, "e2", result.BrokenChainAt)
		assert.True(t, result.ReplayedBalance.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("detects a recorded balance drift", func(t *testing.T) {
		accountRepo, txRepo, uc := newReconciliationFixture(t)

		accountRepo.Seed(&domain.Account{
			ID:      "S-001-001-00001",
			Balance: decimal.NewFromInt(9999),
			Status:  domain.AccountActive,
		})
		txRepo.Create(context.Background(), nil, entry("e1", "S-001-001-00001", domain.TxInitial, 2000, 0))

		result, err := uc.ReplayAccount(context.Background(), "S-001-001-00001")
		require.NoError(t, err)

		assert.False(t, result.IsReconciled)
		assert.Empty(t, result.BrokenChainAt)
		assert.True(t, result.Difference.Equal(decimal.NewFromInt(7999)))
	})

	t.Run("empty ledger reconciles a zero balance", func(t *testing.T) {
		accountRepo, _, uc := newReconciliationFixture(t)

		accountRepo.Seed(&domain.Account{
			ID:      "S-001-001-00001",
			Balance: decimal.Zero,
			Status:  domain.AccountActive,
		})

		result, err := uc.ReplayAccount(context.Background(), "S-001-001-00001")
		require.NoError(t, err)

		assert.True(t, result.IsReconciled)
		assert.Equal(t, 0, result.EntryCount)
	})
}

func TestReconciliationUseCase_ReconcileAll(t *testing.T) {
	accountRepo, txRepo, uc := newReconciliationFixture(t)

	accountRepo.Seed(&domain.Account{
		ID:      "S-001-001-00001",
		Balance: decimal.NewFromInt(2000),
		Status:  domain.AccountActive,
	})
	accountRepo.Seed(&domain.Account{
		ID:      "S-001-001-00002",
		Balance: decimal.NewFromInt(5000),
		Status:  domain.AccountActive,
	})
	txRepo.Create(context.Background(), nil, entry("e1", "S-001-001-00001", domain.TxInitial, 2000, 0))
	txRepo.Create(context.Background(), nil, entry("e2", "S-001-001-00002", domain.TxInitial, 4000, 0))

	report, err := uc.ReconcileAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalAccounts)
	assert.Equal(t, 1, report.ReconciledAccounts)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, "S-001-001-00002", report.Discrepancies[0].AccountID)
	assert.True(t, report.Discrepancies[0].Difference.Equal(decimal.NewFromInt(1000)))
}
