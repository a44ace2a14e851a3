package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corebank/fdledger/internal/adapter/http/dto"
	"github.com/corebank/fdledger/internal/adapter/http/middleware"
	"github.com/corebank/fdledger/internal/domain"
	"github.com/corebank/fdledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	ListAccountTypes(ctx context.Context) ([]*domain.AccountType, error)
}

// LedgerService defines the posting behavior needed by AccountHandler.
type LedgerService interface {
	Credit(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error)
	Debit(ctx context.Context, input usecase.DebitInput) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	ledgerUC  LedgerService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, ledgerUC LedgerService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, ledgerUC: ledgerUC}
}

// Open opens a new account for a new or existing customer.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.OpenAccount(r.Context(), req.ToUseCaseInput(middleware.EmployeeID(r.Context())))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// ListTypes lists the available account types.
func (h *AccountHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.accountUC.ListAccountTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list account types", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountTypesFromDomain(types))
}

// ListTransactions lists ledger entries for an account, newest first.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	entries, err := h.ledgerUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountID: id,
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(entries))
}

// Deposit credits funds to an account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, domain.TxDeposit)
}

// Withdraw debits funds from an account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, domain.TxWithdrawal)
}

func (h *AccountHandler) post(w http.ResponseWriter, r *http.Request, txType domain.TransactionType) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.PostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	employeeID := middleware.EmployeeID(r.Context())

	var (
		entry *domain.Transaction
		err   error
	)

	if txType.IsCredit() {
		entry, err = h.ledgerUC.Credit(r.Context(), usecase.CreditInput{
			AccountID:   id,
			Amount:      req.Amount,
			Description: req.Description,
			Type:        txType,
			EmployeeID:  employeeID,
		})
	} else {
		entry, err = h.ledgerUC.Debit(r.Context(), usecase.DebitInput{
			AccountID:   id,
			Amount:      req.Amount,
			Description: req.Description,
			Type:        txType,
			EmployeeID:  employeeID,
		})
	}

	if err != nil {
		writeError(w, mapDomainError(err), "failed to post transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(entry))
}
