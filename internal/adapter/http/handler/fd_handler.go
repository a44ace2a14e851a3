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

// FixedDepositService defines the behavior needed by FixedDepositHandler.
type FixedDepositService interface {
	CheckEligibility(ctx context.Context, accountID string) (*usecase.Eligibility, error)
	Create(ctx context.Context, input usecase.CreateInput) (*domain.FixedDeposit, error)
	Get(ctx context.Context, id string) (*domain.FixedDeposit, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.FixedDeposit, error)
	Renew(ctx context.Context, fdID string, newTerm domain.FDTerm) (*domain.FixedDeposit, error)
	Close(ctx context.Context, fdID string, employeeID *string) (*usecase.CloseResult, error)
}

// FixedDepositHandler handles fixed deposit HTTP requests.
type FixedDepositHandler struct {
	fdUC FixedDepositService
}

// NewFixedDepositHandler creates a new FixedDepositHandler.
func NewFixedDepositHandler(fdUC FixedDepositService) *FixedDepositHandler {
	return &FixedDepositHandler{fdUC: fdUC}
}

// Create opens a fixed deposit against an account.
func (h *FixedDepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFixedDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(middleware.EmployeeID(r.Context()))
	if err != nil {
		writeError(w, mapDomainError(err), "invalid term", err.Error())
		return
	}

	fd, err := h.fdUC.Create(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create fixed deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.FixedDepositFromDomain(fd))
}

// Get retrieves a fixed deposit by ID.
func (h *FixedDepositHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing fixed deposit ID", "")
		return
	}

	fd, err := h.fdUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get fixed deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FixedDepositFromDomain(fd))
}

// ListByAccount lists all fixed deposits for an account.
func (h *FixedDepositHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	deposits, err := h.fdUC.ListByAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list fixed deposits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FixedDepositsFromDomain(deposits))
}

// Eligibility reports whether an account may open a fixed deposit.
func (h *FixedDepositHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	result, err := h.fdUC.CheckEligibility(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check eligibility", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EligibilityResponse{
		Eligible: result.Eligible,
		Reason:   result.Reason,
	})
}

// Renew matures a deposit and opens a replacement on a new term.
func (h *FixedDepositHandler) Renew(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing fixed deposit ID", "")
		return
	}

	var req dto.RenewFixedDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	term, err := domain.ParseFDTerm(req.Term)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid term", err.Error())
		return
	}

	fd, err := h.fdUC.Renew(r.Context(), id, term)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to renew fixed deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.FixedDepositFromDomain(fd))
}

// Close terminates an active deposit early, returning principal and pending
// interest to the account.
func (h *FixedDepositHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing fixed deposit ID", "")
		return
	}

	result, err := h.fdUC.Close(r.Context(), id, middleware.EmployeeID(r.Context()))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close fixed deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CloseFromResult(result))
}
