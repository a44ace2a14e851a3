package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corebank/fdledger/internal/domain"
	"github.com/corebank/fdledger/internal/usecase"
)

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a new customer.
func (r *CustomerRepository) Create(ctx context.Context, tx usecase.Transaction, customer *domain.Customer) error {
	q := tx.(*Tx).PgxTx()

	_, err := q.Exec(ctx, `
		INSERT INTO customers (id, name, created_at) VALUES ($1, $2, $3)`,
		customer.ID, customer.Name, timeToPgTimestamptz(customer.CreatedAt))

	return wrapErr(err)
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var (
		customer  domain.Customer
		createdAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM customers WHERE id = $1`, id).
		Scan(&customer.ID, &customer.Name, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}

		return nil, wrapErr(err)
	}

	customer.CreatedAt = createdAt.Time

	return &customer, nil
}
