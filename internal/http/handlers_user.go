package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"duit/internal/core"
	"duit/internal/services"
)

type userResponse struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	MonthlyTarget float64 `json:"monthlyTarget"`
	DailyLimit    float64 `json:"dailyLimit"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, userResponse{
		Name:          user.Name,
		Email:         user.Email,
		MonthlyTarget: user.MonthlyTarget,
		DailyLimit:    user.DailyLimit,
	})
}

// handleUpdateSettings accepts a partial body; absent fields keep their
// stored value, present fields are coerced leniently so a non-numeric
// value lands as 0 rather than an error.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, core.ErrUnauthorized.Error())
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var patch services.SettingsPatch
	if v, present := body["monthlyTarget"]; present {
		n := coerceNumber(v)
		patch.MonthlyTarget = &n
	}
	if v, present := body["dailyLimit"]; present {
		n := coerceNumber(v)
		patch.DailyLimit = &n
	}

	updated, err := s.settings.Update(r.Context(), userID, patch)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, core.ErrUserNotFound.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
