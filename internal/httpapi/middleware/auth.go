package middleware

import (
	"context"
	"net/http"
	"strings"

	"upwatch/internal/domain"
)

type ctxKey int

const userKey ctxKey = 0

// Verifier checks a bearer token and yields the caller's user id.
type Verifier interface {
	Verify(token string) (domain.UserID, error)
}

func readBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireUser rejects requests without a valid bearer token and stores the
// authenticated user id on the request context.
func RequireUser(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := readBearer(r)
			if token == "" {
				unauthorized(w)
				return
			}
			uid, err := v.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, uid)))
		})
	}
}

// UserID returns the authenticated user id set by RequireUser, or "" when
// the request never passed the middleware.
func UserID(ctx context.Context) domain.UserID {
	uid, _ := ctx.Value(userKey).(domain.UserID)
	return uid
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
