package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
	"github.com/corebank/fdledger/internal/usecase"
)

const accountColumns = `id, customer_id, type_id, balance, status, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	q := tx.(*Tx).PgxTx()

	_, err := q.Exec(ctx, `
		INSERT INTO accounts (id, customer_id, type_id, balance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.ID,
		account.CustomerID,
		account.TypeID,
		decimalToNumeric(account.Balance),
		string(account.Status),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return wrapErr(err)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return r.getByID(ctx, tx.(*Tx).PgxTx(), id, " FOR UPDATE")
}

func (r *AccountRepository) getByID(ctx context.Context, q querier, id, suffix string) (*domain.Account, error) {
	row := q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`+suffix, id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, wrapErr(err)
	}

	return account, nil
}

// GetByIDsForUpdate retrieves multiple accounts with FOR UPDATE locks. The
// caller passes ids pre-sorted; ORDER BY id keeps the lock acquisition
// order stable even if it does not.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	q := tx.(*Tx).PgxTx()

	rows, err := q.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	q := tx.(*Tx).PgxTx()

	_, err := q.Exec(ctx, `
		UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))

	return wrapErr(err)
}

// List lists accounts with pagination, oldest first.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`, int32(limit), int32(offset))
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ListActiveInterestBearing lists ACTIVE accounts whose type carries a
// positive interest rate.
func (r *AccountRepository) ListActiveInterestBearing(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.customer_id, a.type_id, a.balance, a.status, a.created_at, a.updated_at
		FROM accounts a
		JOIN account_types t ON t.id = a.type_id
		WHERE a.status = 'ACTIVE' AND t.interest_rate > 0
		ORDER BY a.id`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// GetType retrieves an account type by ID.
func (r *AccountRepository) GetType(ctx context.Context, typeID int32) (*domain.AccountType, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, code, minimum_balance, interest_rate
		FROM account_types WHERE id = $1`, typeID)

	accountType, err := scanAccountType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, wrapErr(err)
	}

	return accountType, nil
}

// ListTypes lists all account types.
func (r *AccountRepository) ListTypes(ctx context.Context) ([]*domain.AccountType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, code, minimum_balance, interest_rate
		FROM account_types ORDER BY id`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var types []*domain.AccountType

	for rows.Next() {
		accountType, err := scanAccountType(rows)
		if err != nil {
			return nil, wrapErr(err)
		}

		types = append(types, accountType)
	}

	return types, wrapErr(rows.Err())
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		balance   pgtype.Numeric
		status    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(&account.ID, &account.CustomerID, &account.TypeID,
		&balance, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.Status = domain.AccountStatus(status)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

func scanAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, wrapErr(err)
		}

		accounts = append(accounts, account)
	}

	return accounts, wrapErr(rows.Err())
}

func scanAccountType(row pgx.Row) (*domain.AccountType, error) {
	var (
		accountType    domain.AccountType
		minimumBalance pgtype.Numeric
		interestRate   pgtype.Numeric
	)

	if err := row.Scan(&accountType.ID, &accountType.Name, &accountType.Code,
		&minimumBalance, &interestRate); err != nil {
		return nil, err
	}

	accountType.MinimumBalance = numericToDecimal(minimumBalance)
	accountType.InterestRate = numericToDecimal(interestRate)

	return &accountType, nil
}
