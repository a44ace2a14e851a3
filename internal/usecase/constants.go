package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction.
	// This prevents long-running transactions from blocking tables.
	DefaultTransactionTimeout = 10 * time.Second

	// InterestGateDays is the minimum gap between interest payments on the
	// same fixed deposit. The accrual job pays at most once per window no
	// matter how often it runs.
	InterestGateDays = 30

	// AccountTypeCacheTTL is how long the account-type list is cached.
	AccountTypeCacheTTL = 10 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
