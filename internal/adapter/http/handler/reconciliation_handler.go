package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corebank/fdledger/internal/adapter/http/dto"
	"github.com/corebank/fdledger/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	ReplayAccount(ctx context.Context, accountID string) (*usecase.ReplayResult, error)
	ReconcileAll(ctx context.Context) (*usecase.Report, error)
}

// ReconciliationHandler handles ledger replay verification requests.
type ReconciliationHandler struct {
	reconciliationUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// ReplayAccount replays one account's entry log.
func (h *ReconciliationHandler) ReplayAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	result, err := h.reconciliationUC.ReplayAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to replay account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReplayFromResult(result))
}

// Report replays every account's entry log.
func (h *ReconciliationHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.ReconcileAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reconcile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}
