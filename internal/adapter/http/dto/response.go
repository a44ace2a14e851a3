package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
	"github.com/corebank/fdledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	TypeID     int32           `json:"type_id"`
	Balance    decimal.Decimal `json:"balance"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		TypeID:     a.TypeID,
		Balance:    a.Balance,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// AccountTypeResponse represents an account type in API responses.
type AccountTypeResponse struct {
	ID             int32           `json:"id"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	MinimumBalance decimal.Decimal `json:"minimum_balance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
}

// AccountTypesFromDomain converts domain account types to responses.
func AccountTypesFromDomain(types []*domain.AccountType) []*AccountTypeResponse {
	result := make([]*AccountTypeResponse, len(types))
	for i, t := range types {
		result[i] = &AccountTypeResponse{
			ID:             t.ID,
			Name:           t.Name,
			Code:           t.Code,
			MinimumBalance: t.MinimumBalance,
			InterestRate:   t.InterestRate,
		}
	}
	return result
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceBefore   decimal.Decimal `json:"balance_before"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Description     string          `json:"description,omitempty"`
	ReferenceNumber string          `json:"reference_number"`
	EmployeeID      *string         `json:"employee_id,omitempty"`
	FixedDepositID  *string         `json:"fixed_deposit_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain ledger entry to a response.
func TransactionFromDomain(e *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              e.ID,
		AccountID:       e.AccountID,
		Type:            string(e.Type),
		Amount:          e.Amount,
		BalanceBefore:   e.BalanceBefore,
		BalanceAfter:    e.BalanceAfter(),
		Description:     e.Description,
		ReferenceNumber: e.ReferenceNumber,
		EmployeeID:      e.EmployeeID,
		FixedDepositID:  e.FixedDepositID,
		CreatedAt:       e.CreatedAt,
	}
}

// TransactionsFromDomain converts domain ledger entries to responses.
func TransactionsFromDomain(entries []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(entries))
	for i, e := range entries {
		result[i] = TransactionFromDomain(e)
	}
	return result
}

// TransferResponse represents the entry pair a transfer produced.
type TransferResponse struct {
	OutEntry *TransactionResponse `json:"out_entry"`
	InEntry  *TransactionResponse `json:"in_entry"`
}

// TransferFromResult converts a transfer result to a response.
func TransferFromResult(r *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		OutEntry: TransactionFromDomain(r.OutEntry),
		InEntry:  TransactionFromDomain(r.InEntry),
	}
}

// FixedDepositResponse represents a fixed deposit in API responses.
type FixedDepositResponse struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Term         string          `json:"term"`
	Principal    decimal.Decimal `json:"principal"`
	Rate         decimal.Decimal `json:"rate"`
	StartDate    time.Time       `json:"start_date"`
	MaturityDate time.Time       `json:"maturity_date"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FixedDepositFromDomain converts a domain fixed deposit to a response.
func FixedDepositFromDomain(fd *domain.FixedDeposit) *FixedDepositResponse {
	return &FixedDepositResponse{
		ID:           fd.ID,
		AccountID:    fd.AccountID,
		Term:         string(fd.Term),
		Principal:    fd.Principal,
		Rate:         fd.Rate,
		StartDate:    fd.StartDate,
		MaturityDate: fd.MaturityDate,
		Status:       string(fd.Status),
		CreatedAt:    fd.CreatedAt,
		UpdatedAt:    fd.UpdatedAt,
	}
}

// FixedDepositsFromDomain converts domain fixed deposits to responses.
func FixedDepositsFromDomain(deposits []*domain.FixedDeposit) []*FixedDepositResponse {
	result := make([]*FixedDepositResponse, len(deposits))
	for i, fd := range deposits {
		result[i] = FixedDepositFromDomain(fd)
	}
	return result
}

// EligibilityResponse represents an eligibility check result.
type EligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// CloseFixedDepositResponse represents a closure result.
type CloseFixedDepositResponse struct {
	ID                  string          `json:"id"`
	PrincipalReturned   decimal.Decimal `json:"principal_returned"`
	PendingInterestPaid decimal.Decimal `json:"pending_interest_paid"`
	TotalReturned       decimal.Decimal `json:"total_returned"`
}

// CloseFromResult converts a closure result to a response.
func CloseFromResult(r *usecase.CloseResult) *CloseFixedDepositResponse {
	return &CloseFixedDepositResponse{
		ID:                  r.FDID,
		PrincipalReturned:   r.PrincipalReturned,
		PendingInterestPaid: r.PendingInterestPaid,
		TotalReturned:       r.TotalReturned,
	}
}

// RunReportResponse represents a batch job run summary.
type RunReportResponse struct {
	Processed int   `json:"processed"`
	Credited  int   `json:"credited"`
	Matured   int64 `json:"matured"`
	Skipped   int   `json:"skipped"`
	Failed    int   `json:"failed"`
}

// RunReportFromUseCase converts a job report to a response.
func RunReportFromUseCase(r *usecase.RunReport) *RunReportResponse {
	return &RunReportResponse{
		Processed: r.Processed,
		Credited:  r.Credited,
		Matured:   r.Matured,
		Skipped:   r.Skipped,
		Failed:    r.Failed,
	}
}

// ReplayResponse represents a single-account replay verification.
type ReplayResponse struct {
	AccountID       string          `json:"account_id"`
	RecordedBalance decimal.Decimal `json:"recorded_balance"`
	ReplayedBalance decimal.Decimal `json:"replayed_balance"`
	Difference      decimal.Decimal `json:"difference"`
	EntryCount      int             `json:"entry_count"`
	IsReconciled    bool            `json:"is_reconciled"`
	BrokenChainAt   string          `json:"broken_chain_at,omitempty"`
	CheckedAt       time.Time       `json:"checked_at"`
}

// ReplayFromResult converts a replay result to a response.
func ReplayFromResult(r *usecase.ReplayResult) *ReplayResponse {
	return &ReplayResponse{
		AccountID:       r.AccountID,
		RecordedBalance: r.RecordedBalance,
		ReplayedBalance: r.ReplayedBalance,
		Difference:      r.Difference,
		EntryCount:      r.EntryCount,
		IsReconciled:    r.IsReconciled,
		BrokenChainAt:   r.BrokenChainAt,
		CheckedAt:       r.CheckedAt,
	}
}

// ReconciliationReportResponse represents a full reconciliation report.
type ReconciliationReportResponse struct {
	TotalAccounts      int               `json:"total_accounts"`
	ReconciledAccounts int               `json:"reconciled_accounts"`
	Discrepancies      []*ReplayResponse `json:"discrepancies,omitempty"`
	CheckedAt          time.Time         `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a reconciliation report.
func ReconciliationReportFromUseCase(r *usecase.Report) *ReconciliationReportResponse {
	discrepancies := make([]*ReplayResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReplayFromResult(d)
	}

	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		CheckedAt:          r.CheckedAt,
	}
}
