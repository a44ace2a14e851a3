package dto

import (
	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
	"github.com/corebank/fdledger/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	CustomerID     string          `json:"customer_id,omitempty"`
	CustomerName   string          `json:"customer_name,omitempty"`
	TypeID         int32           `json:"type_id"`
	BranchID       string          `json:"branch_id"`
	AgentSuffix    string          `json:"agent_suffix"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput(employeeID *string) usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		CustomerID:     r.CustomerID,
		CustomerName:   r.CustomerName,
		TypeID:         r.TypeID,
		BranchID:       r.BranchID,
		AgentSuffix:    r.AgentSuffix,
		InitialDeposit: r.InitialDeposit,
		EmployeeID:     employeeID,
	}
}

// PostingRequest represents a deposit or withdrawal request.
type PostingRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// TransferRequest represents a request to transfer between accounts.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(employeeID *string) usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Description:   r.Description,
		EmployeeID:    employeeID,
	}
}

// CreateFixedDepositRequest represents a request to open a fixed deposit.
// Term accepts either the year form ("0.5", "1", "3") or the literal form
// ("6m", "1y", "3y").
type CreateFixedDepositRequest struct {
	AccountID string          `json:"account_id"`
	Principal decimal.Decimal `json:"principal"`
	Term      string          `json:"term"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateFixedDepositRequest) ToUseCaseInput(employeeID *string) (usecase.CreateInput, error) {
	term, err := domain.ParseFDTerm(r.Term)
	if err != nil {
		return usecase.CreateInput{}, err
	}

	return usecase.CreateInput{
		AccountID:  r.AccountID,
		Principal:  r.Principal,
		Term:       term,
		EmployeeID: employeeID,
	}, nil
}

// RenewFixedDepositRequest represents a request to renew a fixed deposit.
type RenewFixedDepositRequest struct {
	Term string `json:"term"`
}
