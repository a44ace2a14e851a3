package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corebank/fdledger/internal/domain"
	"github.com/corebank/fdledger/internal/usecase"
)

const transactionColumns = `id, account_id, type, amount, balance_before, description, reference_number, employee_id, fd_id, created_at`

// TransactionRepository implements usecase.TransactionRepository. The
// transactions table is append-only.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a ledger entry.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Transaction) error {
	q := tx.(*Tx).PgxTx()

	_, err := q.Exec(ctx, `
		INSERT INTO transactions (id, account_id, type, amount, balance_before, description, reference_number, employee_id, fd_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID,
		entry.AccountID,
		string(entry.Type),
		decimalToNumeric(entry.Amount),
		decimalToNumeric(entry.BalanceBefore),
		entry.Description,
		entry.ReferenceNumber,
		textOrNil(entry.EmployeeID),
		textOrNil(entry.FixedDepositID),
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return wrapErr(err)
}

// GetByID retrieves a ledger entry by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	entry, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, wrapErr(err)
	}

	return entry, nil
}

// ListByAccount lists entries for an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, accountID, int32(limit), int32(offset))
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByAccountAsc lists the full entry log for an account in posting
// order, oldest first.
func (r *TransactionRepository) ListByAccountAsc(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at, id`, accountID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// LastByFixedDeposit returns the most recent entry of the given type
// attributed to a fixed deposit, or nil if none exists.
func (r *TransactionRepository) LastByFixedDeposit(ctx context.Context, tx usecase.Transaction, fdID string, txType domain.TransactionType) (*domain.Transaction, error) {
	q := tx.(*Tx).PgxTx()

	row := q.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE fd_id = $1 AND type = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, fdID, string(txType))

	entry, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, wrapErr(err)
	}

	return entry, nil
}

// ExistsForAccountInMonth reports whether the account already has an entry
// of the given type in the calendar month containing at.
func (r *TransactionRepository) ExistsForAccountInMonth(ctx context.Context, tx usecase.Transaction, accountID string, txType domain.TransactionType, at time.Time) (bool, error) {
	q := tx.(*Tx).PgxTx()

	var exists bool

	// The month boundaries are computed here in UTC rather than with
	// date_trunc, which would truncate in the session timezone.
	from, to := monthWindowUTC(at)

	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE account_id = $1
			  AND type = $2
			  AND created_at >= $3
			  AND created_at < $4
		)`, accountID, string(txType), timeToPgTimestamptz(from), timeToPgTimestamptz(to)).Scan(&exists)
	if err != nil {
		return false, wrapErr(err)
	}

	return exists, nil
}

// monthWindowUTC returns the half-open UTC calendar-month interval
// containing at.
func monthWindowUTC(at time.Time) (time.Time, time.Time) {
	u := at.UTC()
	from := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)

	return from, from.AddDate(0, 1, 0)
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		entry         domain.Transaction
		txType        string
		amount        pgtype.Numeric
		balanceBefore pgtype.Numeric
		employeeID    pgtype.Text
		fdID          pgtype.Text
		createdAt     pgtype.Timestamptz
	)

	if err := row.Scan(&entry.ID, &entry.AccountID, &txType, &amount, &balanceBefore,
		&entry.Description, &entry.ReferenceNumber, &employeeID, &fdID, &createdAt); err != nil {
		return nil, err
	}

	entry.Type = domain.TransactionType(txType)
	entry.Amount = numericToDecimal(amount)
	entry.BalanceBefore = numericToDecimal(balanceBefore)
	entry.EmployeeID = textToPtr(employeeID)
	entry.FixedDepositID = textToPtr(fdID)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var entries []*domain.Transaction

	for rows.Next() {
		entry, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapErr(err)
		}

		entries = append(entries, entry)
	}

	return entries, wrapErr(rows.Err())
}
