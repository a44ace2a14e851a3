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

const fdColumns = `id, account_id, term, principal, rate, start_date, maturity_date, status, created_at, updated_at`

// FixedDepositRepository implements usecase.FixedDepositRepository. The
// partial unique index on (account_id) WHERE status = 'ACTIVE' is the
// database backstop for the one-active-deposit rule.
type FixedDepositRepository struct {
	pool *pgxpool.Pool
}

// NewFixedDepositRepository creates a new FixedDepositRepository.
func NewFixedDepositRepository(pool *pgxpool.Pool) *FixedDepositRepository {
	return &FixedDepositRepository{pool: pool}
}

// Create inserts a new fixed deposit.
func (r *FixedDepositRepository) Create(ctx context.Context, tx usecase.Transaction, fd *domain.FixedDeposit) error {
	q := tx.(*Tx).PgxTx()

	_, err := q.Exec(ctx, `
		INSERT INTO fixed_deposits (id, account_id, term, principal, rate, start_date, maturity_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		fd.ID,
		fd.AccountID,
		string(fd.Term),
		decimalToNumeric(fd.Principal),
		decimalToNumeric(fd.Rate),
		timeToPgTimestamptz(fd.StartDate),
		timeToPgTimestamptz(fd.MaturityDate),
		string(fd.Status),
		timeToPgTimestamptz(fd.CreatedAt),
		timeToPgTimestamptz(fd.UpdatedAt),
	)

	return wrapErr(err)
}

// GetByID retrieves a fixed deposit by ID.
func (r *FixedDepositRepository) GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves a fixed deposit by ID with a FOR UPDATE lock.
func (r *FixedDepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.FixedDeposit, error) {
	return r.getByID(ctx, tx.(*Tx).PgxTx(), id, " FOR UPDATE")
}

func (r *FixedDepositRepository) getByID(ctx context.Context, q querier, id, suffix string) (*domain.FixedDeposit, error) {
	row := q.QueryRow(ctx, `SELECT `+fdColumns+` FROM fixed_deposits WHERE id = $1`+suffix, id)

	fd, err := scanFixedDeposit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFDNotFound
		}

		return nil, wrapErr(err)
	}

	return fd, nil
}

// ListByAccount lists all fixed deposits ever held against an account.
func (r *FixedDepositRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.FixedDeposit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+fdColumns+`
		FROM fixed_deposits
		WHERE account_id = $1
		ORDER BY created_at, id`, accountID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	return scanFixedDeposits(rows)
}

// ListActiveIDs lists the IDs of all ACTIVE deposits. The accrual job
// fetches IDs only and re-reads each row under its own lock.
func (r *FixedDepositRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM fixed_deposits WHERE status = 'ACTIVE' ORDER BY id`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var ids []string

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr(err)
		}

		ids = append(ids, id)
	}

	return ids, wrapErr(rows.Err())
}

// CountActiveByAccount counts ACTIVE deposits held against an account.
func (r *FixedDepositRepository) CountActiveByAccount(ctx context.Context, accountID string) (int, error) {
	return r.countActive(ctx, r.pool, accountID)
}

// CountActiveByAccountTx counts ACTIVE deposits inside an open transaction.
func (r *FixedDepositRepository) CountActiveByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) (int, error) {
	return r.countActive(ctx, tx.(*Tx).PgxTx(), accountID)
}

func (r *FixedDepositRepository) countActive(ctx context.Context, q querier, accountID string) (int, error) {
	var count int

	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM fixed_deposits
		WHERE account_id = $1 AND status = 'ACTIVE'`, accountID).Scan(&count)
	if err != nil {
		return 0, wrapErr(err)
	}

	return count, nil
}

// UpdateStatus transitions a fixed deposit's status.
func (r *FixedDepositRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.FDStatus, updatedAt time.Time) error {
	q := tx.(*Tx).PgxTx()

	tag, err := q.Exec(ctx, `
		UPDATE fixed_deposits SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return wrapErr(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrFDNotFound
	}

	return nil
}

// MatureDue transitions every ACTIVE deposit whose maturity date is at or
// before asOf to MATURED in one statement.
func (r *FixedDepositRepository) MatureDue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE fixed_deposits
		SET status = 'MATURED', updated_at = $1
		WHERE status = 'ACTIVE' AND maturity_date <= $1`,
		timeToPgTimestamptz(asOf))
	if err != nil {
		return 0, wrapErr(err)
	}

	return tag.RowsAffected(), nil
}

func scanFixedDeposit(row pgx.Row) (*domain.FixedDeposit, error) {
	var (
		fd           domain.FixedDeposit
		term         string
		principal    pgtype.Numeric
		rate         pgtype.Numeric
		startDate    pgtype.Timestamptz
		maturityDate pgtype.Timestamptz
		status       string
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)

	if err := row.Scan(&fd.ID, &fd.AccountID, &term, &principal, &rate,
		&startDate, &maturityDate, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	fd.Term = domain.FDTerm(term)
	fd.Principal = numericToDecimal(principal)
	fd.Rate = numericToDecimal(rate)
	fd.StartDate = startDate.Time
	fd.MaturityDate = maturityDate.Time
	fd.Status = domain.FDStatus(status)
	fd.CreatedAt = createdAt.Time
	fd.UpdatedAt = updatedAt.Time

	return &fd, nil
}

func scanFixedDeposits(rows pgx.Rows) ([]*domain.FixedDeposit, error) {
	var deposits []*domain.FixedDeposit

	for rows.Next() {
		fd, err := scanFixedDeposit(rows)
		if err != nil {
			return nil, wrapErr(err)
		}

		deposits = append(deposits, fd)
	}

	return deposits, wrapErr(rows.Err())
}
