package http

import (
	"errors"
	"net/http"
	"time"

	"duit/internal/core"
)

// handleReport aggregates the caller's full transaction history into
// the monthly report, anchored to the current server time.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, core.ErrUnauthorized.Error())
		return
	}

	user, err := s.settings.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, core.ErrUserNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	txns, err := s.txns.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	report := core.BuildReport(txns, core.Settings{
		MonthlyTarget: user.MonthlyTarget,
		DailyLimit:    user.DailyLimit,
	}, time.Now().UTC())

	writeJSON(w, http.StatusOK, report)
}
