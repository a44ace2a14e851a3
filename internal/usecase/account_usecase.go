package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
)

const accountTypeCacheKey = "account-types"

// AccountUseCase handles account opening and lookup.
type AccountUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	customerRepo CustomerRepository
	txRepo       TransactionRepository
	seqRepo      SequenceRepository
	idGen        IDGenerator
	clock        Clock
	cache        Cache
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	customerRepo CustomerRepository,
	txRepo TransactionRepository,
	seqRepo SequenceRepository,
	idGen IDGenerator,
	clock Clock,
	cache Cache,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		txRepo:       txRepo,
		seqRepo:      seqRepo,
		idGen:        idGen,
		clock:        clock,
		cache:        cache,
	}
}

// OpenAccountInput represents input for opening an account. Either
// CustomerID (existing customer) or CustomerName (new customer) is set.
type OpenAccountInput struct {
	CustomerID     string
	CustomerName   string
	TypeID         int32
	BranchID       string
	AgentSuffix    string
	InitialDeposit decimal.Decimal
	EmployeeID     *string
}

// OpenAccount mints the customer and account identifiers, inserts the
// account and records the opening deposit as an INITIAL ledger entry, all
// in one transaction. The initial deposit must cover the account type's
// minimum balance.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	accountType, err := uc.accountRepo.GetType(ctx, input.TypeID)
	if err != nil {
		return nil, err
	}

	if input.InitialDeposit.LessThan(accountType.MinimumBalance) {
		return nil, fmt.Errorf("%w: initial deposit below minimum balance %s",
			domain.ErrInvalidAmount, accountType.MinimumBalance)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := uc.clock.Now()

	customerID := input.CustomerID
	if customerID == "" {
		customerID, err = uc.seqRepo.NextCustomerID(ctx, tx)
		if err != nil {
			return nil, err
		}

		if err := uc.customerRepo.Create(ctx, tx, &domain.Customer{
			ID:        customerID,
			Name:      input.CustomerName,
			CreatedAt: now,
		}); err != nil {
			return nil, err
		}
	} else if _, err := uc.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	accountID, err := uc.seqRepo.NextAccountID(ctx, tx, accountType.Code, input.BranchID, input.AgentSuffix)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:         accountID,
		CustomerID: customerID,
		TypeID:     accountType.ID,
		Balance:    decimal.Zero,
		Status:     domain.AccountActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	p := poster{accountRepo: uc.accountRepo, txRepo: uc.txRepo, idGen: uc.idGen}
	if _, err := p.post(ctx, tx, now, postingInput{
		Account:     account,
		Type:        domain.TxInitial,
		Amount:      input.InitialDeposit,
		Description: "Account opening deposit",
		EmployeeID:  input.EmployeeID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}

// ListAccountTypes lists the account types, served from cache when warm.
func (uc *AccountUseCase) ListAccountTypes(ctx context.Context) ([]*domain.AccountType, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, accountTypeCacheKey); err == nil && raw != nil {
			var types []*domain.AccountType
			if err := json.Unmarshal(raw, &types); err == nil {
				return types, nil
			}
		}
	}

	types, err := uc.accountRepo.ListTypes(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(types); err == nil {
			_ = uc.cache.Set(ctx, accountTypeCacheKey, raw, AccountTypeCacheTTL)
		}
	}

	return types, nil
}
