package core_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/berkanunver-maker/subwatch-ai/internal/adapters/store"
	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	"github.com/berkanunver-maker/subwatch-ai/internal/mailparse"
	"github.com/berkanunver-maker/subwatch-ai/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// fakeMailSource hands back canned mails without touching the network
type fakeMailSource struct {
	mails []*core.RawMail
	err   error
}

func (f *fakeMailSource) Search(ctx context.Context, query string, maxResults int64) ([]*core.RawMail, error) {
	return f.mails, f.err
}

func billingMail(from, subject, body string) *core.RawMail {
	return &core.RawMail{
		Headers: []core.Header{
			{Name: "From", Value: from},
			{Name: "Subject", Value: subject},
		},
		Payload: &core.MailPart{
			MimeType: "text/plain",
			Body:     &core.MailBody{Data: base64.URLEncoding.EncodeToString([]byte(body))},
		},
	}
}

func newService(source core.MailSource) (*core.SubscriptionService, *store.MemoryStore) {
	logger := zap.NewNop()
	repo := store.NewMemoryStore(logger)
	svc := core.NewSubscriptionService(
		repo,
		source,
		mailparse.NewExtractor(logger, fixedClock),
		stats.NewEngine(fixedClock),
		logger,
		fixedClock,
	)
	return svc, repo
}

func TestAdd_AssignsIDAndCreatedAt(t *testing.T) {
	svc, _ := newService(&fakeMailSource{})

	sub, err := svc.Add(context.Background(), &core.Subscription{
		Name:         "Netflix",
		Price:        149.99,
		Currency:     "TRY",
		BillingCycle: core.CycleMonthly,
		Category:     core.CategoryStreaming,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, testNow, sub.CreatedAt)
}

func TestAdd_RejectsInvalidSubscription(t *testing.T) {
	svc, _ := newService(&fakeMailSource{})

	_, err := svc.Add(context.Background(), &core.Subscription{Name: "", Price: 10})
	assert.Error(t, err)

	_, err = svc.Add(context.Background(), &core.Subscription{Name: "Bad", Price: -5})
	assert.Error(t, err)
}

func TestSyncMail_StoresExtractedSubscriptions(t *testing.T) {
	source := &fakeMailSource{mails: []*core.RawMail{
		billingMail("billing@netflix.com", "Your Netflix receipt", "₺149,99"),
		billingMail("unknown@example.com", "Hello", "nothing in here"),
		billingMail("no-reply@spotify.com", "Receipt", "₺59,99"),
	}}
	svc, _ := newService(source)
	ctx := context.Background()

	added, err := svc.SyncMail(ctx, "", 50)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "Netflix", added[0].Name)
	assert.Equal(t, "Spotify", added[1].Name)

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSyncMail_DeduplicatesByProviderAndName(t *testing.T) {
	source := &fakeMailSource{mails: []*core.RawMail{
		billingMail("billing@netflix.com", "Receipt April", "₺149,99"),
		billingMail("billing@netflix.com", "Receipt May", "₺169,99"),
	}}
	svc, _ := newService(source)
	ctx := context.Background()

	added, err := svc.SyncMail(ctx, "", 50)
	require.NoError(t, err)
	assert.Len(t, added, 1)

	// A second sync over the same mailbox adds nothing
	added, err = svc.SyncMail(ctx, "", 50)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestStatistics_OverSeededData(t *testing.T) {
	svc, _ := newService(&fakeMailSource{})
	ctx := context.Background()

	require.NoError(t, svc.LoadSampleData(ctx))

	statistics, err := svc.Statistics(ctx)
	require.NoError(t, err)

	// All five samples are monthly and active
	assert.Equal(t, 5, statistics.ActiveCount)
	assert.Equal(t, 5, statistics.TotalCount)
	assert.InDelta(t, 149.99+59.99+89.99+699.99+29.99, statistics.TotalMonthly, 0.001)
	assert.Equal(t, statistics.TotalMonthly*12, statistics.TotalYearly)
	assert.Len(t, statistics.TopSubscriptions, 5)
	assert.Equal(t, "Adobe Creative Cloud", statistics.TopSubscriptions[0].Name)
	// Sample renewal offsets all fall inside the 30-day window
	assert.Len(t, statistics.UpcomingRenewals, 5)
	assert.Equal(t, "Spotify", statistics.UpcomingRenewals[0].Name)
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _ := newService(&fakeMailSource{})
	ctx := context.Background()

	sub, err := svc.Add(ctx, &core.Subscription{
		Name:         "Spotify",
		Price:        59.99,
		Currency:     "TRY",
		BillingCycle: core.CycleMonthly,
		Category:     core.CategoryMusic,
		IsActive:     true,
	})
	require.NoError(t, err)

	sub.IsActive = false
	require.NoError(t, svc.Update(ctx, sub))

	got, err := svc.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, svc.Delete(ctx, sub.ID))
	_, err = svc.Get(ctx, sub.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
