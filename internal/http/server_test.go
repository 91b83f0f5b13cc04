package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duit/internal/auth"
	"duit/internal/services"
	"duit/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	accounts := services.NewAccountService(repo, tokens)
	settings := services.NewSettingsService(repo)
	txns := services.NewTransactionService(repo, nil)

	return NewServer(":0", accounts, settings, txns, tokens)
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set(AuthTokenHeader, token)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, srv *Server) string {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Budi", "email": "budi@example.com", "password": "rahasia123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "budi@example.com", "password": "rahasia123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	assert.Equal(t, resp["token"], rec.Header().Get(AuthTokenHeader))
	assert.Equal(t, "Budi", resp["name"])
	return resp["token"]
}

func TestRegister(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Budi", "email": "budi@example.com", "password": "rahasia123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["user"])
	assert.Equal(t, "Budi", resp["name"])
	assert.Empty(t, resp["token"], "registration must not issue a token")

	// same email again
	rec = doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Budi Dua", "email": "budi@example.com", "password": "lain456",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.c", "password": "x"}},
		{"missing email", map[string]string{"name": "A", "password": "x"}},
		{"missing password", map[string]string{"name": "A", "email": "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginFailures(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "budi@example.com", "password": "salah",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "apapun",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthGate(t *testing.T) {
	srv := newTestServer(t)

	protected := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/transactions"},
		{http.MethodPost, "/api/transactions"},
		{http.MethodGet, "/api/user"},
		{http.MethodPut, "/api/user"},
		{http.MethodGet, "/api/report"},
	}

	for _, ep := range protected {
		t.Run("missing "+ep.method+" "+ep.path, func(t *testing.T) {
			rec := doJSON(t, srv, ep.method, ep.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
		t.Run("garbage "+ep.method+" "+ep.path, func(t *testing.T) {
			rec := doJSON(t, srv, ep.method, ep.path, "not-a-token", nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestTransactionsCreateAndList(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions", token, map[string]any{
		"type": "income", "amount": 5000.0, "category": "salary",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions", token, map[string]any{
		"type": "expense", "amount": 120.5, "category": "food", "note": "lunch",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	// newest first
	assert.Equal(t, "expense", list[0]["type"])
	assert.Equal(t, "lunch", list[0]["note"])
	assert.Equal(t, "income", list[1]["type"])
}

func TestTransactionValidation(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"bad type", map[string]any{"type": "transfer", "amount": 10.0}},
		{"zero amount", map[string]any{"type": "expense", "amount": 0.0}},
		{"missing type", map[string]any{"amount": 10.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/transactions", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Budi", user["name"])
	assert.Equal(t, "budi@example.com", user["email"])
	assert.Equal(t, 0.0, user["monthlyTarget"])
	assert.Equal(t, 0.0, user["dailyLimit"])

	rec = doJSON(t, srv, http.MethodPut, "/api/user", token, map[string]any{
		"monthlyTarget": 1000.0, "dailyLimit": 50.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, 1000.0, user["monthlyTarget"])
	assert.Equal(t, 50.0, user["dailyLimit"])
}

func TestSettingsCoercion(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	// non-numeric values land as 0, not an error
	rec := doJSON(t, srv, http.MethodPut, "/api/user", token, map[string]any{
		"monthlyTarget": "abc", "dailyLimit": "75.5",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var settings map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, 0.0, settings["monthlyTarget"])
	assert.Equal(t, 75.5, settings["dailyLimit"])
}

func TestSettingsPartialUpdate(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec := doJSON(t, srv, http.MethodPut, "/api/user", token, map[string]any{
		"monthlyTarget": 800.0, "dailyLimit": 40.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// only dailyLimit in the body; target keeps its value
	rec = doJSON(t, srv, http.MethodPut, "/api/user", token, map[string]any{
		"dailyLimit": 60.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var settings map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, 800.0, settings["monthlyTarget"])
	assert.Equal(t, 60.0, settings["dailyLimit"])
}

func TestReport(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec := doJSON(t, srv, http.MethodPut, "/api/user", token, map[string]any{
		"monthlyTarget": 100.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	for _, txn := range []map[string]any{
		{"type": "income", "amount": 100.0, "category": "salary"},
		{"type": "expense", "amount": 30.0, "category": "food"},
		{"type": "expense", "amount": 20.0, "category": "transport"},
	} {
		rec = doJSON(t, srv, http.MethodPost, "/api/transactions", token, txn)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/report", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 100.0, report["totalIncome"])
	assert.Equal(t, 50.0, report["totalExpense"])
	assert.Equal(t, 50.0, report["currentSavings"])
	assert.Equal(t, 50.0, report["percentOfTarget"])
}

func TestUserIsolation(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions", token, map[string]any{
		"type": "expense", "amount": 25.0, "category": "food",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// second account sees none of the first account's data
	rec = doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Siti", "email": "siti@example.com", "password": "kata456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "siti@example.com", "password": "kata456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = doJSON(t, srv, http.MethodGet, "/api/transactions", login["token"], nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
