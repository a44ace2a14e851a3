package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
)

// FixedDepositUseCase manages the fixed deposit lifecycle: eligibility,
// creation, renewal and closure. All mutations re-validate inside the same
// database transaction that applies them, with the account row locked, so
// the check/create race cannot mint two ACTIVE deposits for one account.
type FixedDepositUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	fdRepo      FixedDepositRepository
	txRepo      TransactionRepository
	seqRepo     SequenceRepository
	idGen       IDGenerator
	clock       Clock
}

// NewFixedDepositUseCase creates a new FixedDepositUseCase.
func NewFixedDepositUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	fdRepo FixedDepositRepository,
	txRepo TransactionRepository,
	seqRepo SequenceRepository,
	idGen IDGenerator,
	clock Clock,
) *FixedDepositUseCase {
	return &FixedDepositUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		fdRepo:      fdRepo,
		txRepo:      txRepo,
		seqRepo:     seqRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

func (uc *FixedDepositUseCase) poster() poster {
	return poster{accountRepo: uc.accountRepo, txRepo: uc.txRepo, idGen: uc.idGen}
}

// Eligibility is the result of an eligibility check.
type Eligibility struct {
	Eligible bool
	Reason   string
}

// CheckEligibility reports whether the account may open a fixed deposit:
// it must be ACTIVE, of an eligible type, and hold no ACTIVE deposit.
// Advisory only; Create re-validates under lock.
func (uc *FixedDepositUseCase) CheckEligibility(ctx context.Context, accountID string) (*Eligibility, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	accountType, err := uc.accountRepo.GetType(ctx, account.TypeID)
	if err != nil {
		return nil, err
	}

	if reason := eligibilityReason(account, accountType); reason != "" {
		return &Eligibility{Eligible: false, Reason: reason}, nil
	}

	active, err := uc.fdRepo.CountActiveByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if active > 0 {
		return &Eligibility{Eligible: false, Reason: "account already has an active fixed deposit"}, nil
	}

	return &Eligibility{Eligible: true}, nil
}

func eligibilityReason(account *domain.Account, accountType *domain.AccountType) string {
	if !account.IsActive() {
		return "account is not active"
	}

	if !domain.EligibleAccountType(accountType.Name) {
		return fmt.Sprintf("account type %q is not eligible for fixed deposits", accountType.Name)
	}

	return ""
}

// CreateInput represents input for opening a fixed deposit.
type CreateInput struct {
	AccountID  string
	Principal  decimal.Decimal
	Term       domain.FDTerm
	EmployeeID *string
}

// Create opens a fixed deposit: it debits the principal from the account
// (type WITHDRAWAL, attributed to the new deposit) and inserts the deposit
// row, atomically.
func (uc *FixedDepositUseCase) Create(ctx context.Context, input CreateInput) (*domain.FixedDeposit, error) {
	if err := domain.ValidateAmount(input.Principal); err != nil {
		return nil, err
	}

	rate, err := input.Term.Rate()
	if err != nil {
		return nil, err
	}

	months, err := input.Term.Months()
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	accountType, err := uc.accountRepo.GetType(ctx, account.TypeID)
	if err != nil {
		return nil, err
	}

	// Re-validate eligibility under the account lock. A concurrent Create on
	// the same account serializes here; the partial unique index on
	// (account_id) WHERE status = 'ACTIVE' is the backstop.
	if reason := eligibilityReason(account, accountType); reason != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrIneligibleAccount, reason)
	}

	active, err := uc.fdRepo.CountActiveByAccountTx(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if active > 0 {
		return nil, fmt.Errorf("%w: account already has an active fixed deposit", domain.ErrIneligibleAccount)
	}

	if input.Principal.GreaterThan(account.Balance) {
		return nil, domain.ErrInsufficientFunds
	}

	if err := account.ValidateDebit(input.Principal, accountType); err != nil {
		return nil, err
	}

	fdID, err := uc.seqRepo.NextFixedDepositID(ctx, tx)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	fd := &domain.FixedDeposit{
		ID:           fdID,
		AccountID:    account.ID,
		Term:         input.Term,
		Principal:    input.Principal,
		Rate:         rate,
		StartDate:    now,
		MaturityDate: now.AddDate(0, months, 0),
		Status:       domain.FDActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := uc.poster().post(ctx, tx, now, postingInput{
		Account:     account,
		Type:        domain.TxWithdrawal,
		Amount:      input.Principal,
		Description: fmt.Sprintf("Fixed deposit %s opened, term %s", fd.ID, fd.Term),
		EmployeeID:  input.EmployeeID,
		FDID:        &fd.ID,
	}); err != nil {
		return nil, err
	}

	if err := uc.fdRepo.Create(ctx, tx, fd); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return fd, nil
}

// Get retrieves a fixed deposit by ID.
func (uc *FixedDepositUseCase) Get(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	return uc.fdRepo.GetByID(ctx, id)
}

// ListByAccount lists all fixed deposits ever held against an account.
func (uc *FixedDepositUseCase) ListByAccount(ctx context.Context, accountID string) ([]*domain.FixedDeposit, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.fdRepo.ListByAccount(ctx, accountID)
}

// Renew matures the existing deposit and opens a replacement with the same
// principal at today's date and the new term's rate. No funds move: the
// principal stays inside the deposit sub-ledger.
//
// Renewal is allowed on a deposit row of any status. Legacy behavior,
// carried over unchanged.
func (uc *FixedDepositUseCase) Renew(ctx context.Context, fdID string, newTerm domain.FDTerm) (*domain.FixedDeposit, error) {
	rate, err := newTerm.Rate()
	if err != nil {
		return nil, err
	}

	months, err := newTerm.Months()
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	old, err := uc.fdRepo.GetByIDForUpdate(ctx, tx, fdID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	if err := uc.fdRepo.UpdateStatus(ctx, tx, old.ID, domain.FDMatured, now); err != nil {
		return nil, err
	}

	newID, err := uc.seqRepo.NextFixedDepositID(ctx, tx)
	if err != nil {
		return nil, err
	}

	renewed := &domain.FixedDeposit{
		ID:           newID,
		AccountID:    old.AccountID,
		Term:         newTerm,
		Principal:    old.Principal,
		Rate:         rate,
		StartDate:    now,
		MaturityDate: now.AddDate(0, months, 0),
		Status:       domain.FDActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.fdRepo.Create(ctx, tx, renewed); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return renewed, nil
}

// CloseResult reports what a closure returned to the account.
type CloseResult struct {
	FDID                string
	PrincipalReturned   decimal.Decimal
	PendingInterestPaid decimal.Decimal
	TotalReturned       decimal.Decimal
}

// Close terminates an ACTIVE deposit early: pending interest (full 30-day
// periods since the last payment) and the principal are credited back to
// the account and the deposit is marked CLOSED, all atomically. A deposit
// that is already MATURED or CLOSED reports ErrFDNotFound.
func (uc *FixedDepositUseCase) Close(ctx context.Context, fdID string, employeeID *string) (*CloseResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	fd, err := uc.fdRepo.GetByIDForUpdate(ctx, tx, fdID)
	if err != nil {
		return nil, err
	}

	if fd.Status != domain.FDActive {
		return nil, domain.ErrFDNotFound
	}

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, fd.AccountID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	last, err := uc.txRepo.LastByFixedDeposit(ctx, tx, fd.ID, domain.TxFDInterest)
	if err != nil {
		return nil, err
	}

	since := fd.StartDate
	if last != nil {
		since = last.CreatedAt
	}

	pending := pendingInterest(fd, since, now)
	p := uc.poster()

	if pending.IsPositive() {
		if _, err := p.post(ctx, tx, now, postingInput{
			Account:     account,
			Type:        domain.TxFDInterest,
			Amount:      pending,
			Description: fmt.Sprintf("Pending interest on closure of %s", fd.ID),
			EmployeeID:  employeeID,
			FDID:        &fd.ID,
		}); err != nil {
			return nil, err
		}
	}

	if _, err := p.post(ctx, tx, now, postingInput{
		Account:     account,
		Type:        domain.TxDeposit,
		Amount:      fd.Principal,
		Description: fmt.Sprintf("Principal returned on closure of %s", fd.ID),
		EmployeeID:  employeeID,
		FDID:        &fd.ID,
	}); err != nil {
		return nil, err
	}

	if err := uc.fdRepo.UpdateStatus(ctx, tx, fd.ID, domain.FDClosed, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &CloseResult{
		FDID:                fd.ID,
		PrincipalReturned:   fd.Principal,
		PendingInterestPaid: pending,
		TotalReturned:       fd.Principal.Add(pending),
	}, nil
}

// pendingInterest pays one monthly interest amount per completed 30-day
// period between since and now.
func pendingInterest(fd *domain.FixedDeposit, since, now time.Time) decimal.Decimal {
	days := int(now.Sub(since).Hours() / 24)
	periods := days / InterestGateDays
	if periods <= 0 {
		return decimal.Zero
	}

	return fd.MonthlyInterest().Mul(decimal.NewFromInt(int64(periods)))
}
