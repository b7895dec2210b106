package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"go.uber.org/zap"
)

// SubscriptionService is the core service tying the mail source, the
// extraction pipeline, the repository and the statistics engine together.
type SubscriptionService struct {
	repo      SubscriptionRepository
	source    MailSource
	extractor MailExtractor
	stats     StatisticsEngine
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	repo SubscriptionRepository,
	source MailSource,
	extractor MailExtractor,
	stats StatisticsEngine,
	logger *zap.Logger,
	now func() time.Time,
) *SubscriptionService {
	if now == nil {
		now = time.Now
	}
	return &SubscriptionService{
		repo:      repo,
		source:    source,
		extractor: extractor,
		stats:     stats,
		logger:    logger,
		now:       now,
	}
}

// Add validates and stores a new subscription, filling in the ID and
// creation timestamp.
func (s *SubscriptionService) Add(ctx context.Context, sub *Subscription) (*Subscription, error) {
	v := validate.Struct(sub)
	if !v.Validate() {
		return nil, fmt.Errorf("invalid subscription: %w", v.Errors.OneError())
	}

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	sub.CreatedAt = s.now()

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	s.logger.Info("Added subscription",
		zap.String("id", sub.ID),
		zap.String("name", sub.Name))
	return sub, nil
}

// Update replaces a stored subscription
func (s *SubscriptionService) Update(ctx context.Context, sub *Subscription) error {
	v := validate.Struct(sub)
	if !v.Validate() {
		return fmt.Errorf("invalid subscription: %w", v.Errors.OneError())
	}
	return s.repo.Update(ctx, sub)
}

// Delete removes a subscription by ID
func (s *SubscriptionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Get retrieves one subscription by ID
func (s *SubscriptionService) Get(ctx context.Context, id string) (*Subscription, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all stored subscriptions
func (s *SubscriptionService) List(ctx context.Context) ([]*Subscription, error) {
	return s.repo.List(ctx)
}

// Statistics recomputes the aggregate statistics from the stored records
func (s *SubscriptionService) Statistics(ctx context.Context) (*Statistics, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return s.stats.Compute(subs), nil
}

// SyncMail fetches billing mails, runs the extraction pipeline and stores
// the records not seen before. Returns the newly added subscriptions.
func (s *SubscriptionService) SyncMail(ctx context.Context, query string, maxResults int64) ([]*Subscription, error) {
	raws, err := s.source.Search(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mails: %w", err)
	}

	extracted := s.extractor.ExtractAll(raws)
	if len(extracted) == 0 {
		return nil, nil
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, sub := range existing {
		seen[dedupeKey(sub)] = true
	}

	added := make([]*Subscription, 0, len(extracted))
	for _, sub := range extracted {
		key := dedupeKey(sub)
		if seen[key] {
			s.logger.Debug("Skipping already tracked subscription",
				zap.String("name", sub.Name))
			continue
		}
		seen[key] = true

		sub.ID = uuid.NewString()
		sub.CreatedAt = s.now()
		if err := s.repo.Create(ctx, sub); err != nil {
			s.logger.Error("Failed to store extracted subscription",
				zap.Error(err),
				zap.String("name", sub.Name))
			continue
		}
		added = append(added, sub)
	}

	s.logger.Info("Mail sync finished",
		zap.Int("mails", len(raws)),
		zap.Int("extracted", len(extracted)),
		zap.Int("added", len(added)))
	return added, nil
}

// LoadSampleData seeds the repository with the built-in sample
// subscriptions. Existing records are left alone.
func (s *SubscriptionService) LoadSampleData(ctx context.Context) error {
	for _, sub := range SampleSubscriptions(s.now()) {
		if err := s.repo.Create(ctx, sub); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}
	s.logger.Info("Loaded sample subscriptions")
	return nil
}

// dedupeKey identifies a subscription across syncs. Mail-extracted records
// carry no stable upstream ID, so provider plus canonical name is the best
// available identity.
func dedupeKey(sub *Subscription) string {
	return strings.ToLower(sub.Provider) + "/" + strings.ToLower(sub.Name)
}
