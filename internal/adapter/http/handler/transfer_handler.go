package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/corebank/fdledger/internal/adapter/http/dto"
	"github.com/corebank/fdledger/internal/adapter/http/middleware"
	"github.com/corebank/fdledger/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
}

// TransferHandler handles transfer HTTP requests.
type TransferHandler struct {
	ledgerUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(ledgerUC TransferService) *TransferHandler {
	return &TransferHandler{ledgerUC: ledgerUC}
}

// Create moves funds between two accounts atomically.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerUC.Transfer(r.Context(), req.ToUseCaseInput(middleware.EmployeeID(r.Context())))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromResult(result))
}
