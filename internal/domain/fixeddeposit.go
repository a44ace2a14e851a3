package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FDStatus is the lifecycle status of a fixed deposit. ACTIVE transitions to
// MATURED (time-driven) or CLOSED (agent-driven); both are terminal.
type FDStatus string

const (
	FDActive  FDStatus = "ACTIVE"
	FDMatured FDStatus = "MATURED"
	FDClosed  FDStatus = "CLOSED"
)

// FDTerm is a fixed deposit term. Each term carries a fixed annual rate.
type FDTerm string

const (
	TermSixMonths  FDTerm = "6m"
	TermOneYear    FDTerm = "1y"
	TermThreeYears FDTerm = "3y"
)

var termRates = map[FDTerm]decimal.Decimal{
	TermSixMonths:  decimal.NewFromInt(13),
	TermOneYear:    decimal.NewFromInt(14),
	TermThreeYears: decimal.NewFromInt(15),
}

var termMonths = map[FDTerm]int{
	TermSixMonths:  6,
	TermOneYear:    12,
	TermThreeYears: 36,
}

// Rate returns the fixed annual rate percent for the term.
func (t FDTerm) Rate() (decimal.Decimal, error) {
	rate, ok := termRates[t]
	if !ok {
		return decimal.Zero, ErrInvalidTerm
	}

	return rate, nil
}

// Months returns the term length in months.
func (t FDTerm) Months() (int, error) {
	months, ok := termMonths[t]
	if !ok {
		return 0, ErrInvalidTerm
	}

	return months, nil
}

// ParseFDTerm converts a term expressed in years ("0.5", "1", "3") or as a
// term literal ("6m", "1y", "3y") into an FDTerm.
func ParseFDTerm(s string) (FDTerm, error) {
	switch strings.TrimSpace(s) {
	case "0.5", "6m":
		return TermSixMonths, nil
	case "1", "1y":
		return TermOneYear, nil
	case "3", "3y":
		return TermThreeYears, nil
	default:
		return "", ErrInvalidTerm
	}
}

// FixedDeposit is a time-boxed principal sub-ledger earning a fixed rate,
// tied to exactly one account. Principal and maturity date are immutable
// once created.
type FixedDeposit struct {
	ID           string
	AccountID    string
	Term         FDTerm
	Principal    decimal.Decimal
	Rate         decimal.Decimal
	StartDate    time.Time
	MaturityDate time.Time
	Status       FDStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MonthlyInterest returns principal * rate / 100 / 12 rounded to two decimal
// places. Exact decimal arithmetic keeps repeated monthly runs drift-free
// over a full three-year term.
func (fd *FixedDeposit) MonthlyInterest() decimal.Decimal {
	return fd.Principal.Mul(fd.Rate).
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(12)).
		Round(2)
}

// IsMature reports whether the deposit has reached its maturity date.
func (fd *FixedDeposit) IsMature(now time.Time) bool {
	return !now.Before(fd.MaturityDate)
}

// eligibleTypeNames are matched case-insensitively as substrings against the
// account type name. A loose rule, but it is the one the bank runs on.
var eligibleTypeNames = []string{"adult", "teen", "senior", "joint"}

// EligibleAccountType reports whether an account type may hold fixed
// deposits.
func EligibleAccountType(typeName string) bool {
	lower := strings.ToLower(typeName)
	for _, name := range eligibleTypeNames {
		if strings.Contains(lower, name) {
			return true
		}
	}

	return false
}
