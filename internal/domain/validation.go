package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// MaxPostingAmount caps a single ledger posting.
	MaxPostingAmount = "1000000000" // 1 billion

	maxPageSize     = 1000
	defaultPageSize = 50
)

// ValidateAmount validates a ledger posting amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxPostingAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxPostingAmount)
	}

	return nil
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
