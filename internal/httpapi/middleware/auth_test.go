package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"upwatch/internal/domain"
)

type fakeVerifier struct {
	uid domain.UserID
	err error
}

func (f *fakeVerifier) Verify(token string) (domain.UserID, error) { return f.uid, f.err }

func TestRequireUser(t *testing.T) {
	var seen domain.UserID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		v      Verifier
		want   int
	}{
		{"missing header", "", &fakeVerifier{uid: "u1"}, http.StatusUnauthorized},
		{"not bearer", "Basic abc", &fakeVerifier{uid: "u1"}, http.StatusUnauthorized},
		{"bad token", "Bearer xyz", &fakeVerifier{err: errors.New("nope")}, http.StatusUnauthorized},
		{"valid", "Bearer xyz", &fakeVerifier{uid: "u1"}, http.StatusOK},
	}
	for _, c := range cases {
		seen = ""
		h := RequireUser(c.v)(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Fatalf("%s: want %d, got %d", c.name, c.want, rec.Code)
		}
		if c.want == http.StatusOK && seen != "u1" {
			t.Fatalf("%s: user id not on context, got %q", c.name, seen)
		}
	}
}
