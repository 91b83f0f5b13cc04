// Package services holds the use-case layer between the HTTP surface and
// storage: account registration and login, per-user settings, and
// transaction recording.
package services

import (
	"context"

	"duit/internal/core"
)

// UserStore is the slice of storage the account and settings services need.
type UserStore interface {
	CreateUser(ctx context.Context, u *core.User) error
	GetUserByEmail(ctx context.Context, email string) (*core.User, error)
	GetUserByID(ctx context.Context, id string) (*core.User, error)
	UpdateSettings(ctx context.Context, userID string, s core.Settings) error
}

// TransactionStore is the slice of storage the transaction service needs.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *core.Transaction) error
	ListTransactionsByUser(ctx context.Context, userID string) ([]core.Transaction, error)
}

// EventPublisher publishes transaction-created events. Implemented by the
// AMQP client; a nil publisher disables eventing.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, transactionID, userID string) error
}
