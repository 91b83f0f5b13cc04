// Package http exposes the JSON REST surface: account registration and
// login, the authenticated transaction and settings endpoints, and the
// monthly report.
package http

import (
	"context"
	"net/http"
	"sync"

	"duit/internal/auth"
	"duit/internal/ratelimit"
	"duit/internal/services"
)

type Server struct {
	http.Server

	accounts *services.AccountService
	settings *services.SettingsService
	txns     *services.TransactionService
	tokens   *auth.TokenManager
	limiter  *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server. Every request is traced; protected routes go through the
// auth gate.
func NewServer(addr string, accounts *services.AccountService, settings *services.SettingsService, txns *services.TransactionService, tokens *auth.TokenManager) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		accounts: accounts,
		settings: settings,
		txns:     txns,
		tokens:   tokens,
		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	// the credential endpoints are rate limited to slow down guessing
	mux.HandleFunc("POST /api/auth/register", s.trace(s.rateLimit(s.handleRegister)))
	mux.HandleFunc("POST /api/auth/login", s.trace(s.rateLimit(s.handleLogin)))

	mux.HandleFunc("GET /api/transactions", s.trace(s.requireAuth(s.handleListTransactions)))
	mux.HandleFunc("POST /api/transactions", s.trace(s.requireAuth(s.handleCreateTransaction)))
	mux.HandleFunc("GET /api/user", s.trace(s.requireAuth(s.handleGetSettings)))
	mux.HandleFunc("PUT /api/user", s.trace(s.requireAuth(s.handleUpdateSettings)))
	mux.HandleFunc("GET /api/report", s.trace(s.requireAuth(s.handleReport)))

	return s
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
