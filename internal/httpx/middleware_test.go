package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lendledger/internal/auth"
)

const testSecret = "middleware-test-secret"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Error("request ID missing from context")
	}
	if got := w.Header().Get("X-Request-Id"); got != seen {
		t.Errorf("header %q != context %q", got, seen)
	}
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	h := RequestIDMiddleware(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "req-abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get("X-Request-Id"); got != "req-abc" {
		t.Errorf("request ID = %q, want req-abc", got)
	}
}

func TestAuthMiddleware(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, "acct-1", auth.RoleStaff, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var gotAccount, gotRole string
	h := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount = AccountIDFrom(r)
		gotRole = RoleFrom(r)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}

	if gotAccount != "acct-1" || gotRole != auth.RoleStaff {
		t.Errorf("context account=%q role=%q", gotAccount, gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(auth.RoleStaff)(okHandler())

	r := httptest.NewRequest(http.MethodPost, "/loans", nil)
	r = r.WithContext(ContextWithAccount(r.Context(), "acct-2", auth.RoleAuditor))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("auditor on staff route: status = %d, want 403", w.Code)
	}

	r = httptest.NewRequest(http.MethodPost, "/loans", nil)
	r = r.WithContext(ContextWithAccount(r.Context(), "acct-1", auth.RoleStaff))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("staff on staff route: status = %d, want 200", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimitMiddleware(1, 2)
	h := rl.Middleware(okHandler())

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("burst requests should pass, got %v", statuses)
	}
	if statuses[3] != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %v", statuses)
	}
}
