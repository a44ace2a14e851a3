package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates the kinds of ledger entries.
type TransactionType string

const (
	TxInitial         TransactionType = "INITIAL"
	TxDeposit         TransactionType = "DEPOSIT"
	TxWithdrawal      TransactionType = "WITHDRAWAL"
	TxTransferIn      TransactionType = "TRANSFER_IN"
	TxTransferOut     TransactionType = "TRANSFER_OUT"
	TxFDInterest      TransactionType = "FD_INTEREST"
	TxSavingsInterest TransactionType = "SAVINGS_INTEREST"
)

// IsCredit reports whether the type increases the account balance.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TxInitial, TxDeposit, TxTransferIn, TxFDInterest, TxSavingsInterest:
		return true
	default:
		return false
	}
}

// Valid reports whether the type is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TxInitial, TxDeposit, TxWithdrawal, TxTransferIn, TxTransferOut,
		TxFDInterest, TxSavingsInterest:
		return true
	default:
		return false
	}
}

// Transaction is an immutable ledger entry. Amount is signed: negative for
// debits, positive for credits. BalanceBefore snapshots the account balance
// prior to the posting, so replaying entries in order reproduces every
// balance the account has ever held.
//
// EmployeeID is nil for system-generated entries (interest credits).
// FixedDepositID ties interest and principal movements back to a specific
// fixed deposit; accounts and deposits are not 1:1 over time.
type Transaction struct {
	ID              string
	AccountID       string
	Type            TransactionType
	Amount          decimal.Decimal
	BalanceBefore   decimal.Decimal
	Description     string
	ReferenceNumber string
	EmployeeID      *string
	FixedDepositID  *string
	CreatedAt       time.Time
}

// BalanceAfter returns the account balance after this entry.
func (t *Transaction) BalanceAfter() decimal.Decimal {
	return t.BalanceBefore.Add(t.Amount)
}
