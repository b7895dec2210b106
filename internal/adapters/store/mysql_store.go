package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the SubscriptionRepository
// interface, for deployments backing the app with a shared database.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL and prepares the schema
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS subscriptions (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DOUBLE NOT NULL,
			currency VARCHAR(8),
			billing_cycle VARCHAR(16),
			category VARCHAR(32),
			next_billing_date VARCHAR(64),
			is_active BOOLEAN,
			notes TEXT,
			created_at VARCHAR(64),
			provider VARCHAR(32),
			source_email VARCHAR(255),
			email_date VARCHAR(64),
			raw_subject TEXT,
			seq BIGINT AUTO_INCREMENT,
			KEY (seq)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// Create stores a new subscription
func (s *MySQLStore) Create(ctx context.Context, sub *core.Subscription) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (
			id, name, price, currency, billing_cycle, category,
			next_billing_date, is_active, notes, created_at,
			provider, source_email, email_date, raw_subject
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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
func (s *MySQLStore) GetByID(ctx context.Context, id string) (*core.Subscription, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM subscriptions WHERE id = ?`, id)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return sub, err
}

// List returns all subscriptions in insertion order
func (s *MySQLStore) List(ctx context.Context) ([]*core.Subscription, error) {
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
func (s *MySQLStore) Update(ctx context.Context, sub *core.Subscription) error {
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
func (s *MySQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return requireRow(res)
}

// Close closes the underlying database
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
