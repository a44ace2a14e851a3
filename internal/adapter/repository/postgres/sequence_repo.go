package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corebank/fdledger/internal/usecase"
)

// SequenceRepository implements usecase.SequenceRepository by reading the
// current maximum matching identifier inside the caller's transaction and
// incrementing it. Two concurrent mints of the same prefix serialize on the
// account row lock the caller already holds; the unique constraint on the
// target table is the backstop, surfacing as ErrDuplicateIdentifier.
type SequenceRepository struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository creates a new SequenceRepository.
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

// NextCustomerID mints the next customer identifier (C000001, C000002, ...).
func (r *SequenceRepository) NextCustomerID(ctx context.Context, tx usecase.Transaction) (string, error) {
	max, err := r.maxID(ctx, tx, `
		SELECT id FROM customers WHERE id ~ '^C[0-9]{6}$' ORDER BY id DESC LIMIT 1`)
	if err != nil {
		return "", err
	}

	next := 1
	if max != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(max, "C"))
		if err != nil {
			return "", fmt.Errorf("malformed customer id %q: %w", max, err)
		}

		next = n + 1
	}

	return fmt.Sprintf("C%06d", next), nil
}

// NextAccountID mints the next account identifier for a type/branch/agent
// prefix (S-001-001-00001, ...). The sequence is per prefix.
func (r *SequenceRepository) NextAccountID(ctx context.Context, tx usecase.Transaction, typeCode, branchID, agentSuffix string) (string, error) {
	prefix := fmt.Sprintf("%s-%s-%s-", typeCode, branchID, agentSuffix)

	max, err := r.maxID(ctx, tx, `
		SELECT id FROM accounts WHERE id LIKE $1 ORDER BY id DESC LIMIT 1`, prefix+"%")
	if err != nil {
		return "", err
	}

	next := 1
	if max != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(max, prefix))
		if err != nil {
			return "", fmt.Errorf("malformed account id %q: %w", max, err)
		}

		next = n + 1
	}

	return fmt.Sprintf("%s%05d", prefix, next), nil
}

// NextFixedDepositID mints the next fixed deposit identifier (FD-00001, ...).
func (r *SequenceRepository) NextFixedDepositID(ctx context.Context, tx usecase.Transaction) (string, error) {
	max, err := r.maxID(ctx, tx, `
		SELECT id FROM fixed_deposits WHERE id ~ '^FD-[0-9]{5}$' ORDER BY id DESC LIMIT 1`)
	if err != nil {
		return "", err
	}

	next := 1
	if max != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(max, "FD-"))
		if err != nil {
			return "", fmt.Errorf("malformed fixed deposit id %q: %w", max, err)
		}

		next = n + 1
	}

	return fmt.Sprintf("FD-%05d", next), nil
}

// NextBranchID mints the next branch identifier (001, 002, ...).
func (r *SequenceRepository) NextBranchID(ctx context.Context, tx usecase.Transaction) (string, error) {
	max, err := r.maxID(ctx, tx, `
		SELECT id FROM branches WHERE id ~ '^[0-9]{3}$' ORDER BY id DESC LIMIT 1`)
	if err != nil {
		return "", err
	}

	next := 1
	if max != "" {
		n, err := strconv.Atoi(max)
		if err != nil {
			return "", fmt.Errorf("malformed branch id %q: %w", max, err)
		}

		next = n + 1
	}

	return fmt.Sprintf("%03d", next), nil
}

func (r *SequenceRepository) maxID(ctx context.Context, tx usecase.Transaction, sql string, args ...any) (string, error) {
	q := tx.(*Tx).PgxTx()

	var id string

	err := q.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}

		return "", wrapErr(err)
	}

	return id, nil
}
