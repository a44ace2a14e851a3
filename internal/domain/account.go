package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// AccountType describes a product class of accounts. The code is the single
// letter embedded in account identifiers; the minimum balance is the floor
// enforced on debits; the interest rate is the annual savings rate percent
// (zero for non-interest-bearing types).
type AccountType struct {
	ID             int32
	Name           string
	Code           string
	MinimumBalance decimal.Decimal
	InterestRate   decimal.Decimal
}

// Account represents a customer account holding a balance. The balance is
// only ever mutated through ledger posting, never directly.
type Account struct {
	ID         string
	CustomerID string
	TypeID     int32
	Balance    decimal.Decimal
	Status     AccountStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive reports whether the account accepts ledger postings.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}

// ValidateDebit checks whether the account can be debited by amount without
// dropping below the type's minimum balance.
func (a *Account) ValidateDebit(amount decimal.Decimal, accountType *AccountType) error {
	newBalance := a.Balance.Sub(amount)
	if newBalance.LessThan(accountType.MinimumBalance) {
		return ErrInsufficientFunds
	}

	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// MonthlySavingsInterest returns the interest a savings account earns for one
// month, floored to two decimal places so the bank never over-credits.
func (a *Account) MonthlySavingsInterest(accountType *AccountType) decimal.Decimal {
	if accountType.InterestRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	monthly := a.Balance.Mul(accountType.InterestRate).
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(12))

	return monthly.RoundFloor(2)
}

// Customer is the minimal customer record backing account opening.
type Customer struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Branch identifies a bank branch. Branch IDs are 3-digit zero-padded
// sequences minted by the sequence generator.
type Branch struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
