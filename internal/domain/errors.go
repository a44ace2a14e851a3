package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is not active")
	ErrInsufficientFunds = errors.New("insufficient funds for this operation")
	ErrCustomerNotFound  = errors.New("customer not found")

	// Ledger errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrSameAccount         = errors.New("cannot transfer to same account")
	ErrInvalidTransaction  = errors.New("invalid transaction type")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Fixed deposit errors
	ErrFDNotFound         = errors.New("fixed deposit not found")
	ErrIneligibleAccount  = errors.New("account is not eligible for a fixed deposit")
	ErrInvalidTerm        = errors.New("invalid fixed deposit term")
	ErrDuplicateActiveFD  = errors.New("account already has an active fixed deposit")

	// Identifier errors
	ErrDuplicateIdentifier = errors.New("identifier already exists")

	// Storage errors
	ErrStorageTimeout      = errors.New("storage operation timed out")
	ErrConcurrencyConflict = errors.New("concurrent modification, retry the operation")
)
