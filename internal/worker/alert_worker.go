// Package worker holds the background consumer that watches the
// transaction event stream and reports budget breaches.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"duit/internal/amqp"
	"duit/internal/core"
)

// Store is the slice of the storage layer the worker needs.
type Store interface {
	GetUserByID(ctx context.Context, id string) (*core.User, error)
	GetTransaction(ctx context.Context, id string) (*core.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID string) ([]core.Transaction, error)
}

// AlertWorker rebuilds a user's report after every recorded transaction
// and logs when a daily limit is exceeded, savings go negative, or the
// monthly target is reached. It observes only; nothing is written back.
type AlertWorker struct {
	store Store
}

func NewAlertWorker(store Store) *AlertWorker {
	return &AlertWorker{store: store}
}

// HandleTransactionCreated processes a single transaction event.
func (w *AlertWorker) HandleTransactionCreated(ctx context.Context, msg *amqp.TransactionCreatedMessage) error {
	slog.InfoContext(ctx, "Processing transaction event",
		"transaction_id", msg.TransactionID,
		"user_id", msg.UserID)

	txn, err := w.store.GetTransaction(ctx, msg.TransactionID)
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	user, err := w.store.GetUserByID(ctx, txn.UserID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	txns, err := w.store.ListTransactionsByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	settings := core.Settings{
		MonthlyTarget: user.MonthlyTarget,
		DailyLimit:    user.DailyLimit,
	}
	now := time.Now().UTC()
	report := core.BuildReport(txns, settings, now)

	w.checkAlerts(ctx, user, report, now)
	return nil
}

func (w *AlertWorker) checkAlerts(ctx context.Context, user *core.User, report core.Report, now time.Time) {
	if user.DailyLimit > 0 {
		spentToday := report.DailyTotals[now.Day()-1]
		if spentToday > user.DailyLimit {
			slog.WarnContext(ctx, "Daily limit exceeded",
				"user_id", user.ID,
				"spent_today", spentToday,
				"daily_limit", user.DailyLimit)
		}
	}

	if report.CurrentSavings < 0 {
		slog.WarnContext(ctx, "Savings are negative",
			"user_id", user.ID,
			"current_savings", report.CurrentSavings)
	}

	if user.MonthlyTarget > 0 && report.PercentOfTarget >= 100 {
		slog.InfoContext(ctx, "Monthly target reached",
			"user_id", user.ID,
			"current_savings", report.CurrentSavings,
			"monthly_target", user.MonthlyTarget)
	}
}
