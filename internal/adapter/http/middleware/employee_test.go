package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmployeeIdentity(t *testing.T) {
	var got *string
	h := EmployeeIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = EmployeeID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/accounts", nil)
	req.Header.Set(EmployeeIDHeader, "EMP-042")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || *got != "EMP-042" {
		t.Fatalf("expected employee EMP-042 in context, got %v", got)
	}
}

func TestEmployeeIdentityAbsent(t *testing.T) {
	var got *string
	h := EmployeeIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = EmployeeID(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/accounts", nil))

	if got != nil {
		t.Fatalf("expected nil employee without header, got %q", *got)
	}
}
