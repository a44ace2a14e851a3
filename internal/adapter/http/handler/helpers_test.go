package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corebank/fdledger/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrCustomerNotFound, http.StatusNotFound},
		{domain.ErrFDNotFound, http.StatusNotFound},
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrSameAccount, http.StatusBadRequest},
		{domain.ErrInvalidTransaction, http.StatusBadRequest},
		{domain.ErrInvalidTerm, http.StatusBadRequest},
		{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{domain.ErrAccountInactive, http.StatusUnprocessableEntity},
		{domain.ErrIneligibleAccount, http.StatusUnprocessableEntity},
		{domain.ErrDuplicateActiveFD, http.StatusConflict},
		{domain.ErrDuplicateIdentifier, http.StatusConflict},
		{domain.ErrConcurrencyConflict, http.StatusConflict},
		{domain.ErrStorageTimeout, http.StatusGatewayTimeout},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestMapDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("debit S-001-001-00001: %w", domain.ErrInsufficientFunds)
	if got := mapDomainError(wrapped); got != http.StatusUnprocessableEntity {
		t.Errorf("expected wrapped error to map to 422, got %d", got)
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=25&offset=abc", nil)

	if got := parseIntQuery(req, "limit", 20); got != 25 {
		t.Errorf("expected limit 25, got %d", got)
	}
	if got := parseIntQuery(req, "offset", 0); got != 0 {
		t.Errorf("expected malformed offset to fall back to 0, got %d", got)
	}
	if got := parseIntQuery(req, "missing", 50); got != 50 {
		t.Errorf("expected missing param to fall back to 50, got %d", got)
	}
}
