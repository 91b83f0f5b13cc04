package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"duit/internal/core"
)

// TransactionService records and lists transactions. The owning user is
// always the authenticated identity, never a client-supplied value.
type TransactionService struct {
	store     TransactionStore
	publisher EventPublisher
}

func NewTransactionService(store TransactionStore, publisher EventPublisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

// Create persists a new transaction dated now. Only type and amount
// presence are validated; category stays free-form and the amount is
// accepted as given. A configured publisher gets a transaction-created
// event after the save; publish failures never fail the request.
func (s *TransactionService) Create(ctx context.Context, userID string, typ core.TransactionType, amount float64, category, note string) (*core.Transaction, error) {
	t := &core.Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Type:     typ,
		Amount:   amount,
		Category: category,
		Note:     note,
		Date:     time.Now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionCreated(ctx, t.ID, t.UserID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish transaction event",
				"transaction_id", t.ID, "error", err)
		}
	}

	return t, nil
}

// List returns all of the user's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userID string) ([]core.Transaction, error) {
	return s.store.ListTransactionsByUser(ctx, userID)
}
