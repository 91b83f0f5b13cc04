package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// User is a registered account. Email is unique, case-sensitive as stored.
	// MonthlyTarget and DailyLimit default to 0 until the user sets them.
	User struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		Email         string    `json:"email"`
		PasswordHash  string    `json:"-"`
		MonthlyTarget float64   `json:"monthlyTarget"`
		DailyLimit    float64   `json:"dailyLimit"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	// Settings are the per-user numeric preferences.
	Settings struct {
		MonthlyTarget float64 `json:"monthlyTarget"`
		DailyLimit    float64 `json:"dailyLimit"`
	}

	// Transaction is a single income or expense entry. The owning user is
	// always the authenticated identity at creation time and the date is
	// server-assigned; both are immutable afterwards.
	Transaction struct {
		ID       string          `json:"id"`
		UserID   string          `json:"user"`
		Type     TransactionType `json:"type"`
		Amount   float64         `json:"amount"`
		Category string          `json:"category"`
		Note     string          `json:"note,omitempty"`
		Date     time.Time       `json:"date"`
	}
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failed")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Validate enforces only type and amount presence. Category stays a
// free-form string and the amount sign is accepted as given.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrValidation
	}
	if t.Amount == 0 {
		return ErrValidation
	}
	return nil
}

// Validate checks the fields required to create an account.
func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrValidation
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrValidation
	}
	return nil
}
