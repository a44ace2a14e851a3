package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
)

// LedgerUseCase provides the atomic debit/credit/transfer primitives. Every
// successful call moves exactly one (or, for transfers, two) account
// balances and appends the matching ledger entries in a single database
// transaction.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txRepo      TransactionRepository
	idGen       IDGenerator
	clock       Clock
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	idGen IDGenerator,
	clock Clock,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

func (uc *LedgerUseCase) poster() poster {
	return poster{accountRepo: uc.accountRepo, txRepo: uc.txRepo, idGen: uc.idGen}
}

// CreditInput represents input for crediting an account.
type CreditInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Description string
	Type        domain.TransactionType
	EmployeeID  *string
	FDID        *string
}

// Credit increases the account balance by the amount and appends a ledger
// entry. The account row is locked for the duration of the posting.
func (uc *LedgerUseCase) Credit(ctx context.Context, input CreditInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if !input.Type.Valid() || !input.Type.IsCredit() {
		return nil, fmt.Errorf("%w: %s is not a credit type", domain.ErrInvalidTransaction, input.Type)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if !account.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	entry, err := uc.poster().post(ctx, tx, uc.clock.Now(), postingInput{
		Account:     account,
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
		EmployeeID:  input.EmployeeID,
		FDID:        input.FDID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// DebitInput represents input for debiting an account.
type DebitInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Description string
	Type        domain.TransactionType
	EmployeeID  *string
	FDID        *string
}

// Debit decreases the account balance by the amount, rejecting debits that
// would take the balance below the account type's minimum.
func (uc *LedgerUseCase) Debit(ctx context.Context, input DebitInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if !input.Type.Valid() || input.Type.IsCredit() {
		return nil, fmt.Errorf("%w: %s is not a debit type", domain.ErrInvalidTransaction, input.Type)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if !account.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	accountType, err := uc.accountRepo.GetType(ctx, account.TypeID)
	if err != nil {
		return nil, err
	}

	// The minimum-balance check runs against the post-lock balance.
	if err := account.ValidateDebit(input.Amount, accountType); err != nil {
		return nil, err
	}

	entry, err := uc.poster().post(ctx, tx, uc.clock.Now(), postingInput{
		Account:     account,
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
		EmployeeID:  input.EmployeeID,
		FDID:        input.FDID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// TransferInput represents input for a transfer between two accounts.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
	EmployeeID    *string
}

// TransferResult carries the pair of entries a transfer produced.
type TransferResult struct {
	OutEntry *domain.Transaction
	InEntry  *domain.Transaction
}

// Transfer moves the amount between two accounts as one atomic unit: either
// both the TRANSFER_OUT and TRANSFER_IN entries are durably recorded, or
// neither takes effect.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	// Lock accounts in sorted order (DEADLOCK PREVENTION).
	ids := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	var from, to *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.FromAccountID:
			from = a
		case input.ToAccountID:
			to = a
		}
	}

	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if !from.IsActive() || !to.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	fromType, err := uc.accountRepo.GetType(ctx, from.TypeID)
	if err != nil {
		return nil, err
	}

	if err := from.ValidateDebit(input.Amount, fromType); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	p := uc.poster()

	outEntry, err := p.post(ctx, tx, now, postingInput{
		Account:     from,
		Type:        domain.TxTransferOut,
		Amount:      input.Amount,
		Description: input.Description,
		EmployeeID:  input.EmployeeID,
	})
	if err != nil {
		return nil, err
	}

	inEntry, err := p.post(ctx, tx, now, postingInput{
		Account:     to,
		Type:        domain.TxTransferIn,
		Amount:      input.Amount,
		Description: input.Description,
		EmployeeID:  input.EmployeeID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransferResult{OutEntry: outEntry, InEntry: inEntry}, nil
}

// ListTransactionsInput represents input for listing ledger entries.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions lists ledger entries for an account, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	return uc.txRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
