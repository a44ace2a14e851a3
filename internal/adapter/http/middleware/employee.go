package middleware

import (
	"context"
	"net/http"
)

// EmployeeIDHeader carries the acting branch employee. Authentication is an
// upstream concern; the ledger only stamps the identity onto postings.
const EmployeeIDHeader = "X-Employee-ID"

type employeeIDKey struct{}

// EmployeeIdentity extracts the employee header into the request context.
func EmployeeIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(EmployeeIDHeader); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), employeeIDKey{}, id))
		}

		next.ServeHTTP(w, r)
	})
}

// EmployeeID returns the acting employee ID, or nil if the header was absent.
func EmployeeID(ctx context.Context) *string {
	if id, ok := ctx.Value(employeeIDKey{}).(string); ok {
		return &id
	}

	return nil
}
