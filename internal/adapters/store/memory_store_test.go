package store

import (
	"context"
	"testing"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore() *MemoryStore {
	return NewMemoryStore(zap.NewNop())
}

func testSub(id, name string) *core.Subscription {
	return &core.Subscription{
		ID:           id,
		Name:         name,
		Price:        99.99,
		Currency:     "TRY",
		BillingCycle: core.CycleMonthly,
		Category:     core.CategoryStreaming,
		IsActive:     true,
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSub("1", "Netflix")))

	got, err := s.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Netflix", got.Name)
}

func TestMemoryStore_CreateDuplicateID(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSub("1", "Netflix")))
	assert.ErrorIs(t, s.Create(ctx, testSub("1", "Spotify")), ErrDuplicateID)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := newStore()

	_, err := s.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListKeepsInsertionOrder(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSub("1", "Netflix")))
	require.NoError(t, s.Create(ctx, testSub("2", "Spotify")))
	require.NoError(t, s.Create(ctx, testSub("3", "YouTube Premium")))

	subs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "Netflix", subs[0].Name)
	assert.Equal(t, "Spotify", subs[1].Name)
	assert.Equal(t, "YouTube Premium", subs[2].Name)
}

func TestMemoryStore_Update(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSub("1", "Netflix")))

	updated := testSub("1", "Netflix")
	updated.Price = 199.99
	updated.IsActive = false
	require.NoError(t, s.Update(ctx, updated))

	got, err := s.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 199.99, got.Price)
	assert.False(t, got.IsActive)
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	s := newStore()
	assert.ErrorIs(t, s.Update(context.Background(), testSub("nope", "X")), ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSub("1", "Netflix")))
	require.NoError(t, s.Create(ctx, testSub("2", "Spotify")))
	require.NoError(t, s.Delete(ctx, "1"))

	subs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Spotify", subs[0].Name)

	assert.ErrorIs(t, s.Delete(ctx, "1"), ErrNotFound)
}

func TestMemoryStore_ListReturnsCopies(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSub("1", "Netflix")))

	subs, err := s.List(ctx)
	require.NoError(t, err)
	subs[0].Name = "mutated"

	got, err := s.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Netflix", got.Name)
}
