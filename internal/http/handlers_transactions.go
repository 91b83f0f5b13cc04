package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"duit/internal/core"
)

type createTransactionRequest struct {
	Type     core.TransactionType `json:"type"`
	Amount   float64              `json:"amount"`
	Category string               `json:"category"`
	Note     string               `json:"note"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, core.ErrUnauthorized.Error())
		return
	}

	txns, err := s.txns.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, core.ErrUnauthorized.Error())
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := s.txns.Create(r.Context(), userID, req.Type, req.Amount, req.Category, req.Note)
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	writeJSON(w, http.StatusOK, txn)
}
