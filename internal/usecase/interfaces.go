package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
)

// AccountRepository defines data access for accounts and account types.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListActiveInterestBearing(ctx context.Context) ([]*domain.Account, error)
	GetType(ctx context.Context, typeID int32) (*domain.AccountType, error)
	ListTypes(ctx context.Context) ([]*domain.AccountType, error)
}

// TransactionRepository defines data access for ledger entries. Entries are
// append-only; there are no update or delete operations.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	// ListByAccountAsc returns the full entry log for an account in posting
	// order, oldest first. Used for replay verification.
	ListByAccountAsc(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	// LastByFixedDeposit returns the most recent entry of the given type for
	// a fixed deposit, or nil if none exists.
	LastByFixedDeposit(ctx context.Context, tx Transaction, fdID string, txType domain.TransactionType) (*domain.Transaction, error)
	// ExistsForAccountInMonth reports whether the account already has an
	// entry of the given type in the calendar month containing at.
	ExistsForAccountInMonth(ctx context.Context, tx Transaction, accountID string, txType domain.TransactionType, at time.Time) (bool, error)
}

// FixedDepositRepository defines data access for fixed deposits.
type FixedDepositRepository interface {
	Create(ctx context.Context, tx Transaction, fd *domain.FixedDeposit) error
	GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.FixedDeposit, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.FixedDeposit, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	CountActiveByAccount(ctx context.Context, accountID string) (int, error)
	CountActiveByAccountTx(ctx context.Context, tx Transaction, accountID string) (int, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.FDStatus, updatedAt time.Time) error
	// MatureDue transitions every ACTIVE deposit whose maturity date is at or
	// before asOf to MATURED, returning the number of rows affected.
	MatureDue(ctx context.Context, asOf time.Time) (int64, error)
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, tx Transaction, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// SequenceRepository mints human-readable sequential identifiers. Each call
// reads the current maximum matching the pattern inside the caller's
// transaction, so the read-max-then-insert pair is race-free under row
// locking; a unique violation on insert surfaces as ErrDuplicateIdentifier.
type SequenceRepository interface {
	NextCustomerID(ctx context.Context, tx Transaction) (string, error)
	NextAccountID(ctx context.Context, tx Transaction, typeCode, branchID, agentSuffix string) (string, error)
	NextFixedDepositID(ctx context.Context, tx Transaction) (string, error)
	NextBranchID(ctx context.Context, tx Transaction) (string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique opaque IDs (ledger entry ids and reference
// numbers).
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time. Injectable so accrual gates can be tested
// without waiting on real timers.
type Clock interface {
	Now() time.Time
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
