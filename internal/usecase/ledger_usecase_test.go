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

type ledgerFixture struct {
	accountRepo *mocks.MockAccountRepository
	txRepo      *mocks.MockTransactionRepository
	clock       *mocks.MockClock
	uc          *usecase.LedgerUseCase
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	f := &ledgerFixture{
		accountRepo: mocks.NewMockAccountRepository(),
		txRepo:      mocks.NewMockTransactionRepository(),
		clock:       mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
	}

	f.accountRepo.SeedType(&domain.AccountType{
		ID:             1,
		Name:           "Adult Savings",
		Code:           "S",
		MinimumBalance: decimal.NewFromInt(1000),
		InterestRate:   decimal.NewFromFloat(3.5),
	})

	f.uc = usecase.NewLedgerUseCase(
		mocks.NewMockTransactionManager(),
		f.accountRepo,
		f.txRepo,
		mocks.NewMockIDGenerator(),
		f.clock,
	)

	return f
}

func (f *ledgerFixture) seedAccount(id string, balance int64, status domain.AccountStatus) *domain.Account {
	acc := &domain.Account{
		ID:         id,
		CustomerID: "C000001",
		TypeID:     1,
		Balance:    decimal.NewFromInt(balance),
		Status:     status,
	}
	f.accountRepo.Seed(acc)

	return acc
}

func TestLedgerUseCase_Credit(t *testing.T) {
	t.Run("credits the account and records balance before", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)

		entry, err := f.uc.Credit(context.Background(), usecase.CreditInput{
			AccountID:   "S-001-001-00001",
			Amount:      decimal.NewFromInt(2500),
			Description: "Cash deposit",
			Type:        domain.TxDeposit,
		})

		require.NoError(t, err)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(2500)))
		assert.True(t, entry.BalanceBefore.Equal(decimal.NewFromInt(5000)))
		assert.True(t, entry.BalanceAfter().Equal(decimal.NewFromInt(7500)))
		assert.NotEmpty(t, entry.ID)
		assert.NotEmpty(t, entry.ReferenceNumber)

		acc, err := f.accountRepo.GetByID(context.Background(), "S-001-001-00001")
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(decimal.NewFromInt(7500)))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)

		_, err := f.uc.Credit(context.Background(), usecase.CreditInput{
			AccountID: "S-001-001-00001",
			Amount:    decimal.Zero,
			Type:      domain.TxDeposit,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("rejects debit types", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)

		_, err := f.uc.Credit(context.Background(), usecase.CreditInput{
			AccountID: "S-001-001-00001",
			Amount:    decimal.NewFromInt(100),
			Type:      domain.TxWithdrawal,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTransaction)
	})

	t.Run("rejects inactive accounts", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountInactive)

		_, err := f.uc.Credit(context.Background(), usecase.CreditInput{
			AccountID: "S-001-001-00001",
			Amount:    decimal.NewFromInt(100),
			Type:      domain.TxDeposit,
		})

		assert.ErrorIs(t, err, domain.ErrAccountInactive)
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.uc.Credit(context.Background(), usecase.CreditInput{
			AccountID: "S-001-001-99999",
			Amount:    decimal.NewFromInt(100),
			Type:      domain.TxDeposit,
		})

		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestLedgerUseCase_Debit(t *testing.T) {
	t.Run("debits the account", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)

		entry, err := f.uc.Debit(context.Background(), usecase.DebitInput{
			AccountID:   "S-001-001-00001",
			Amount:      decimal.NewFromInt(3000),
			Description: "Cash withdrawal",
			Type:        domain.TxWithdrawal,
		})

		require.NoError(t, err)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(-3000)))
		assert.True(t, entry.BalanceBefore.Equal(decimal.NewFromInt(5000)))
		assert.True(t, entry.BalanceAfter().Equal(decimal.NewFromInt(2000)))
	})

	t.Run("enforces the minimum balance", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)

		// 5000 - 4500 = 500, below the 1000 minimum.
		_, err := f.uc.Debit(context.Background(), usecase.DebitInput{
			AccountID: "S-001-001-00001",
			Amount:    decimal.NewFromInt(4500),
			Type:      domain.TxWithdrawal,
		})

		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		acc, err := f.accountRepo.GetByID(context.Background(), "S-001-001-00001")
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(decimal.NewFromInt(5000)), "failed debit must not move the balance")
	})

	t.Run("allows debiting exactly down to the minimum", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)

		_, err := f.uc.Debit(context.Background(), usecase.DebitInput{
			AccountID: "S-001-001-00001",
			Amount:    decimal.NewFromInt(4000),
			Type:      domain.TxWithdrawal,
		})

		require.NoError(t, err)

		acc, err := f.accountRepo.GetByID(context.Background(), "S-001-001-00001")
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("rejects credit types", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)

		_, err := f.uc.Debit(context.Background(), usecase.DebitInput{
			AccountID: "S-001-001-00001",
			Amount:    decimal.NewFromInt(100),
			Type:      domain.TxDeposit,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTransaction)
	})
}

func TestLedgerUseCase_Transfer(t *testing.T) {
	t.Run("moves funds and conserves the total", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)
		f.seedAccount("S-001-001-00002", 2000, domain.AccountActive)

		result, err := f.uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "S-001-001-00001",
			ToAccountID:   "S-001-001-00002",
			Amount:        decimal.NewFromInt(1500),
			Description:   "Rent",
		})

		require.NoError(t, err)
		assert.True(t, result.OutEntry.Amount.Equal(decimal.NewFromInt(-1500)))
		assert.True(t, result.InEntry.Amount.Equal(decimal.NewFromInt(1500)))
		assert.Equal(t, domain.TxTransferOut, result.OutEntry.Type)
		assert.Equal(t, domain.TxTransferIn, result.InEntry.Type)

		from, _ := f.accountRepo.GetByID(context.Background(), "S-001-001-00001")
		to, _ := f.accountRepo.GetByID(context.Background(), "S-001-001-00002")
		assert.True(t, from.Balance.Equal(decimal.NewFromInt(3500)))
		assert.True(t, to.Balance.Equal(decimal.NewFromInt(3500)))
		assert.True(t, from.Balance.Add(to.Balance).Equal(decimal.NewFromInt(7000)), "transfer must conserve the combined balance")
	})

	t.Run("rejects transfers to the same account", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)

		_, err := f.uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "S-001-001-00001",
			ToAccountID:   "S-001-001-00001",
			Amount:        decimal.NewFromInt(100),
		})

		assert.ErrorIs(t, err, domain.ErrSameAccount)
	})

	t.Run("rejects when the destination does not exist", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)

		_, err := f.uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "S-001-001-00001",
			ToAccountID:   "S-001-001-99999",
			Amount:        decimal.NewFromInt(100),
		})

		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("rejects when the source would breach the minimum", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 1200, domain.AccountActive)
		f.seedAccount("S-001-001-00002", 2000, domain.AccountActive)

		_, err := f.uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "S-001-001-00001",
			ToAccountID:   "S-001-001-00002",
			Amount:        decimal.NewFromInt(500),
		})

		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("rejects inactive counterparty", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.seedAccount("S-001-001-00001", 5000, domain.AccountActive)
		f.seedAccount("S-001-001-00002", 2000, domain.AccountInactive)

		_, err := f.uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "S-001-001-00001",
			ToAccountID:   "S-001-001-00002",
			Amount:        decimal.NewFromInt(100),
		})

		assert.ErrorIs(t, err, domain.ErrAccountInactive)
	})
}

func TestLedgerUseCase_ListTransactions(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedAccount("S-001-001-00001", 10000, domain.AccountActive)

	for i := 0; i < 3; i++ {
		_, err := f.uc.Credit(context.Background(), usecase.CreditInput{
			AccountID: "S-001-001-00001",
			Amount:    decimal.NewFromInt(int64(100 * (i + 1))),
			Type:      domain.TxDeposit,
		})
		require.NoError(t, err)
	}

	entries, err := f.uc.ListTransactions(context.Background(), usecase.ListTransactionsInput{
		AccountID: "S-001-001-00001",
		Limit:     10,
	})

	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest first.
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(300)))
	assert.True(t, entries[2].Amount.Equal(decimal.NewFromInt(100)))

	_, err = f.uc.ListTransactions(context.Background(), usecase.ListTransactionsInput{AccountID: "missing"})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
