package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the SubscriptionRepository
// interface, used for the on-device database.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (and if necessary creates) the SQLite database
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS subscriptions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price REAL NOT NULL,
			currency TEXT,
			billing_cycle TEXT,
			category TEXT,
			next_billing_date TEXT,
			is_active BOOLEAN,
			notes TEXT,
			created_at TEXT,
			provider TEXT,
			source_email TEXT,
			email_date TEXT,
			raw_subject TEXT,
			seq INTEGER
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Create stores a new subscription
func (s *SQLiteStore) Create(ctx context.Context, sub *core.Subscription) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (
			id, name, price, currency, billing_cycle, category,
			next_billing_date, is_active, notes, created_at,
			provider, source_email, email_date, raw_subject, seq
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM subscriptions))
	`,
		sub.ID, sub.Name, sub.Price, sub.Currency, string(sub.BillingCycle),
		string(sub.Category), formatTime(sub.NextBillingDate), sub.IsActive,
		sub.Notes, formatTime(sub.CreatedAt), sub.Provider, sub.SourceEmail,
		sub.EmailDate, sub.RawSubject)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

// GetByID retrieves a subscription by its ID
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*core.Subscription, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM subscriptions WHERE id = ?`, id)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return sub, err
}

// List returns all subscriptions in insertion order
func (s *SQLiteStore) List(ctx context.Context) ([]*core.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` FROM subscriptions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*core.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			s.logger.Error("Failed to scan subscription row", zap.Error(err))
			continue
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Update replaces the stored subscription with the same ID
func (s *SQLiteStore) Update(ctx context.Context, sub *core.Subscription) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE subscriptions SET
			name = ?, price = ?, currency = ?, billing_cycle = ?,
			category = ?, next_billing_date = ?, is_active = ?, notes = ?,
			provider = ?, source_email = ?, email_date = ?, raw_subject = ?
		WHERE id = ?
	`,
		sub.Name, sub.Price, sub.Currency, string(sub.BillingCycle),
		string(sub.Category), formatTime(sub.NextBillingDate), sub.IsActive,
		sub.Notes, sub.Provider, sub.SourceEmail, sub.EmailDate,
		sub.RawSubject, sub.ID)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return requireRow(res)
}

// Delete removes a subscription by its ID
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return requireRow(res)
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectColumns = `
	SELECT id, name, price, currency, billing_cycle, category,
		next_billing_date, is_active, notes, created_at,
		provider, source_email, email_date, raw_subject`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*core.Subscription, error) {
	var sub core.Subscription
	var cycle, category, nextBilling, createdAt string

	err := row.Scan(&sub.ID, &sub.Name, &sub.Price, &sub.Currency, &cycle,
		&category, &nextBilling, &sub.IsActive, &sub.Notes, &createdAt,
		&sub.Provider, &sub.SourceEmail, &sub.EmailDate, &sub.RawSubject)
	if err != nil {
		return nil, err
	}

	sub.BillingCycle = core.BillingCycle(cycle)
	sub.Category = core.Category(category)
	sub.NextBillingDate = parseTime(nextBilling)
	sub.CreatedAt = parseTime(createdAt)
	return &sub, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
