package services

import (
	"context"

	"duit/internal/core"
)

// SettingsPatch carries the fields a settings update provides. A nil field
// was absent from the request and leaves the stored value unchanged.
type SettingsPatch struct {
	MonthlyTarget *float64
	DailyLimit    *float64
}

// SettingsService reads and writes per-user numeric preferences.
type SettingsService struct {
	users UserStore
}

func NewSettingsService(users UserStore) *SettingsService {
	return &SettingsService{users: users}
}

// Get returns the user's profile and settings. A token may outlive its
// account, so an unknown id surfaces as core.ErrUserNotFound.
func (s *SettingsService) Get(ctx context.Context, userID string) (*core.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// Update applies the provided fields and returns the resulting pair.
// Concurrent updates are last-write-wins.
func (s *SettingsService) Update(ctx context.Context, userID string, patch SettingsPatch) (core.Settings, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return core.Settings{}, err
	}

	settings := core.Settings{
		MonthlyTarget: u.MonthlyTarget,
		DailyLimit:    u.DailyLimit,
	}
	if patch.MonthlyTarget != nil {
		settings.MonthlyTarget = *patch.MonthlyTarget
	}
	if patch.DailyLimit != nil {
		settings.DailyLimit = *patch.DailyLimit
	}

	if err := s.users.UpdateSettings(ctx, userID, settings); err != nil {
		return core.Settings{}, err
	}
	return settings, nil
}
