package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"duit/internal/auth"
	"duit/internal/core"
)

// AccountService handles registration and login.
type AccountService struct {
	users  UserStore
	tokens *auth.TokenManager
}

func NewAccountService(users UserStore, tokens *auth.TokenManager) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

// Register creates a new account with settings defaulted to 0. It returns
// the stored user, never a token; the caller logs in separately.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*core.User, error) {
	u := &core.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, core.ErrValidation
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, core.ErrDuplicateEmail
	}
	if !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Account registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// Login verifies credentials and issues an identity token. The token and
// the user's display name come back together so the client can greet them.
func (s *AccountService) Login(ctx context.Context, email, password string) (token, name string, err error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return "", "", core.ErrUserNotFound
		}
		return "", "", fmt.Errorf("look up email: %w", err)
	}

	if !auth.CheckPassword(password, u.PasswordHash) {
		return "", "", core.ErrInvalidCredentials
	}

	token, err = s.tokens.Issue(u.ID)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}

	slog.InfoContext(ctx, "User logged in", "user_id", u.ID)
	return token, u.Name, nil
}
