package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/adapter/http/dto"
	"github.com/corebank/fdledger/internal/domain"
	"github.com/corebank/fdledger/internal/usecase"
)

type accountServiceStub struct {
	openFn      func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error)
	getFn       func(ctx context.Context, id string) (*domain.Account, error)
	listFn      func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	listTypesFn func(ctx context.Context) ([]*domain.AccountType, error)
}

func (s *accountServiceStub) OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
	return s.openFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func (s *accountServiceStub) ListAccountTypes(ctx context.Context) ([]*domain.AccountType, error) {
	return s.listTypesFn(ctx)
}

type ledgerServiceStub struct {
	creditFn func(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error)
	debitFn  func(ctx context.Context, input usecase.DebitInput) (*domain.Transaction, error)
	listFn   func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

func (s *ledgerServiceStub) Credit(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error) {
	return s.creditFn(ctx, input)
}

func (s *ledgerServiceStub) Debit(ctx context.Context, input usecase.DebitInput) (*domain.Transaction, error) {
	return s.debitFn(ctx, input)
}

func (s *ledgerServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAccountHandler_Open_Success(t *testing.T) {
	account := &domain.Account{
		ID:         "S-001-001-00001",
		CustomerID: "C000001",
		TypeID:     1,
		Balance:    decimal.NewFromInt(5000),
		Status:     domain.AccountActive,
	}

	var captured usecase.OpenAccountInput
	h := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	}, &ledgerServiceStub{})

	body, _ := json.Marshal(dto.OpenAccountRequest{
		CustomerName:   "Jordan Blake",
		TypeID:         1,
		BranchID:       "001",
		AgentSuffix:    "001",
		InitialDeposit: decimal.NewFromInt(5000),
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.CustomerName != "Jordan Blake" || captured.TypeID != 1 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "S-001-001-00001" {
		t.Fatalf("expected account ID S-001-001-00001, got %s", resp.ID)
	}
}

func TestAccountHandler_Open_InvalidJSON(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
			t.Fatal("OpenAccount should not be called for invalid payload")
			return nil, nil
		},
	}, &ledgerServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Open_BelowMinimum(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error) {
			return nil, domain.ErrInvalidAmount
		},
	}, &ledgerServiceStub{})

	body, _ := json.Marshal(dto.OpenAccountRequest{TypeID: 1, InitialDeposit: decimal.NewFromInt(10)})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, &ledgerServiceStub{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Withdraw_InsufficientFunds(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{}, &ledgerServiceStub{
		debitFn: func(ctx context.Context, input usecase.DebitInput) (*domain.Transaction, error) {
			return nil, domain.ErrInsufficientFunds
		},
	})

	body, _ := json.Marshal(dto.PostingRequest{Amount: decimal.NewFromInt(99999)})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/accounts/S-001-001-00001/withdraw", bytes.NewReader(body)), "id", "S-001-001-00001")
	rec := httptest.NewRecorder()

	h.Withdraw(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAccountHandler_Deposit_Success(t *testing.T) {
	entry := &domain.Transaction{
		ID:            "01ABC",
		AccountID:     "S-001-001-00001",
		Type:          domain.TxDeposit,
		Amount:        decimal.NewFromInt(1000),
		BalanceBefore: decimal.NewFromInt(500),
	}

	var captured usecase.CreditInput
	h := NewAccountHandler(&accountServiceStub{}, &ledgerServiceStub{
		creditFn: func(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error) {
			captured = input
			return entry, nil
		},
	})

	body, _ := json.Marshal(dto.PostingRequest{Amount: decimal.NewFromInt(1000), Description: "Cash deposit"})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/accounts/S-001-001-00001/deposit", bytes.NewReader(body)), "id", "S-001-001-00001")
	rec := httptest.NewRecorder()

	h.Deposit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Type != domain.TxDeposit || captured.AccountID != "S-001-001-00001" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.BalanceAfter.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected balance_after 1500, got %s", resp.BalanceAfter)
	}
}
