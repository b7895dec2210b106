package core

import (
	"context"
)

// SubscriptionRepository defines the interface for persisting subscriptions
type SubscriptionRepository interface {
	// Create stores a new subscription
	Create(ctx context.Context, sub *Subscription) error

	// GetByID retrieves a subscription by its ID
	GetByID(ctx context.Context, id string) (*Subscription, error)

	// List returns all stored subscriptions in insertion order
	List(ctx context.Context) ([]*Subscription, error)

	// Update replaces the stored subscription with the same ID
	Update(ctx context.Context, sub *Subscription) error

	// Delete removes a subscription by its ID
	Delete(ctx context.Context, id string) error
}

// MailSource defines the interface for fetching raw billing mails
type MailSource interface {
	// Search fetches up to maxResults mails matching the query
	Search(ctx context.Context, query string, maxResults int64) ([]*RawMail, error)
}

// MailExtractor turns raw mails into subscription records
type MailExtractor interface {
	// Extract pulls a subscription out of one mail, nil if none found
	Extract(raw *RawMail) *Subscription

	// ExtractAll maps Extract over the input, dropping failures
	ExtractAll(raws []*RawMail) []*Subscription
}

// StatisticsEngine aggregates a snapshot of subscription records
type StatisticsEngine interface {
	// Compute recalculates all statistics from the given records
	Compute(subs []*Subscription) *Statistics
}
