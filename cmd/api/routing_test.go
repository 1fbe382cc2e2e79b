package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendledger/internal/auth"
	apphttp "lendledger/internal/http"
	"lendledger/internal/ledger"
	"lendledger/internal/report"
)

const routingTestSecret = "routing-test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	store := ledger.NewMemoryStore()
	require.NoError(t, store.AddBook(ctx, ledger.Book{ID: "bk-001", Title: "Dune", Author: "Herbert", TotalCopies: 2, AvailableCopies: 2}))
	require.NoError(t, store.AddMember(ctx, ledger.Member{ID: "m-001", Name: "Ada", Category: "STUDENT"}))

	accounts := auth.NewMemoryAccounts()
	hash, err := auth.HashPassword("Desk-Password-1")
	require.NoError(t, err)
	require.NoError(t, accounts.Create(ctx, auth.Account{ID: "acct-1", Username: "desk", PasswordHash: hash, Role: auth.RoleStaff}))

	return newRouter(routerDeps{
		lending:   apphttp.NewLendingHandler(ledger.NewService(store)),
		reports:   apphttp.NewReportHandler(report.NewMemoryReader(store)),
		login:     apphttp.NewAuthHandler(auth.NewService(accounts, routingTestSecret, time.Hour)),
		jwtSecret: routingTestSecret,
	})
}

func TestRouting_HealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouting_ProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/loans"},
		{http.MethodGet, "/loans/1"},
		{http.MethodGet, "/reports/overdue"},
		{http.MethodGet, "/reports/top-books"},
		{http.MethodGet, "/reports/fines"},
		{http.MethodGet, "/members/m-001/loans"},
	}

	for _, p := range paths {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestRouting_LoginThenIssueAndReturn(t *testing.T) {
	router := newTestRouter(t)

	// Login.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"desk","password":"Desk-Password-1"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Data.Token)
	bearer := "Bearer " + loginResp.Data.Token

	// Issue.
	r := httptest.NewRequest(http.MethodPost, "/loans",
		strings.NewReader(`{"member_id":"m-001","book_id":"bk-001"}`))
	r.Header.Set("Authorization", bearer)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	// Return.
	r = httptest.NewRequest(http.MethodPost, "/loans/1/return", nil)
	r.Header.Set("Authorization", bearer)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	// Member history shows the round trip.
	r = httptest.NewRequest(http.MethodGet, "/members/m-001/loans", nil)
	r.Header.Set("Authorization", bearer)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var historyResp struct {
		Data []report.MemberLoan `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &historyResp))
	require.Len(t, historyResp.Data, 1)
	assert.Equal(t, string(ledger.StatusReturned), historyResp.Data[0].Status)
}

func TestRouting_BadLogin(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"desk","password":"Wrong-Password-1"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
