package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
)

// postingInput describes one ledger entry to append inside an open database
// transaction. Amount is the unsigned magnitude; the sign is derived from
// the transaction type.
type postingInput struct {
	Account     *domain.Account
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description string
	EmployeeID  *string
	FDID        *string
}

// poster bundles the repositories every posting needs. LedgerUseCase,
// FixedDepositUseCase and AccrualUseCase all append entries through the same
// code path so the balance-before chain is written identically everywhere.
type poster struct {
	accountRepo AccountRepository
	txRepo      TransactionRepository
	idGen       IDGenerator
}

// post appends one entry and moves the account balance, mutating
// in.Account.Balance so follow-up postings in the same transaction see the
// new balance. The caller owns locking and commit.
func (p poster) post(ctx context.Context, dbTx Transaction, now time.Time, in postingInput) (*domain.Transaction, error) {
	signed := in.Amount
	if !in.Type.IsCredit() {
		signed = signed.Neg()
	}

	entry := &domain.Transaction{
		ID:              p.idGen.Generate(),
		AccountID:       in.Account.ID,
		Type:            in.Type,
		Amount:          signed,
		BalanceBefore:   in.Account.Balance,
		Description:     in.Description,
		ReferenceNumber: p.idGen.Generate(),
		EmployeeID:      in.EmployeeID,
		FixedDepositID:  in.FDID,
		CreatedAt:       now,
	}

	if err := p.txRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, err
	}

	newBalance := entry.BalanceAfter()
	if err := p.accountRepo.UpdateBalance(ctx, dbTx, in.Account.ID, newBalance, now); err != nil {
		return nil, err
	}

	in.Account.Balance = newBalance

	return entry, nil
}
