package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"duit/internal/core"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates an account. The response identifies the new
// user but carries no token; the client logs in separately.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, core.ErrDuplicateEmail.Error())
		case errors.Is(err, core.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"user": user.ID,
		"name": user.Name,
	})
}

// handleLogin verifies credentials and issues a token, returned both in
// the auth-token header and the response body.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, name, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUserNotFound), errors.Is(err, core.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, core.ErrInvalidCredentials.Error())
		default:
			writeError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	w.Header().Set(AuthTokenHeader, token)
	writeJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"name":  name,
	})
}
