// Package storage persists users and transactions in SQLite. Writes are
// single-row statements; the store's per-statement atomicity is the only
// concurrency guarantee the service model needs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"duit/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser inserts a new user record. A duplicate email maps to
// core.ErrDuplicateEmail so callers can treat the unique index as the
// source of truth even under concurrent registrations.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u *core.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, monthly_target, daily_limit, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.MonthlyTarget, u.DailyLimit, u.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return core.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "id", u.ID, "email", u.Email)
	return nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	query := `
		SELECT id, name, email, password_hash, monthly_target, daily_limit, created_at
		FROM users WHERE email = ?`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	query := `
		SELECT id, name, email, password_hash, monthly_target, daily_limit, created_at
		FROM users WHERE id = ?`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) scanUser(row *sql.Row) (*core.User, error) {
	u := &core.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.MonthlyTarget, &u.DailyLimit, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// UpdateSettings overwrites both settings values for a user. Concurrent
// updates are last-write-wins; there is no optimistic concurrency control.
func (r *SQLiteRepository) UpdateSettings(ctx context.Context, userID string, s core.Settings) error {
	query := `UPDATE users SET monthly_target = ?, daily_limit = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, s.MonthlyTarget, s.DailyLimit, userID)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrUserNotFound
	}

	slog.InfoContext(ctx, "Settings updated",
		"user_id", userID,
		"monthly_target", s.MonthlyTarget,
		"daily_limit", s.DailyLimit)
	return nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t *core.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, category, note, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, string(t.Type), t.Amount, t.Category, t.Note, t.Date)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"user_id", t.UserID,
		"type", string(t.Type),
		"amount", t.Amount,
		"category", t.Category)
	return nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, category, note, date
		FROM transactions WHERE id = ?`

	t := &core.Transaction{}
	var typ string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.UserID, &typ, &t.Amount, &t.Category, &t.Note, &t.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, sql.ErrNoRows)
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	t.Type = core.TransactionType(typ)
	return t, nil
}

// ListTransactionsByUser returns all of a user's transactions, newest first.
func (r *SQLiteRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]core.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, category, note, date
		FROM transactions WHERE user_id = ?
		ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txns := []core.Transaction{}
	for rows.Next() {
		var t core.Transaction
		var typ string
		var date time.Time
		if err := rows.Scan(&t.ID, &t.UserID, &typ, &t.Amount, &t.Category, &t.Note, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = core.TransactionType(typ)
		t.Date = date
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txns, nil
}
