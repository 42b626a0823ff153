package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerbankroll/sessioncore/pkg/session"
)

func newRedisStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr := newRedisStore(t)

	stored := newStoredSession(t)
	require.NoError(t, store.Create(ctx, "user-1", stored, time.Hour))

	// The record lives under the namespaced key with the active TTL.
	assert.True(t, mr.Exists("user:user-1"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("user:user-1").Seconds(), 1)

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, stored.Version, got.Version)
	assert.Equal(t, stored.GameType, got.GameType)
	assert.True(t, got.BuyIn.Equal(stored.BuyIn))

	cash, ok := got.Stake.Cash()
	require.True(t, ok)
	assert.Equal(t, int64(50), cash.SmallBlindCents)
}

func TestRedisStoreCreateIsExclusive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _ := newRedisStore(t)

	require.NoError(t, store.Create(ctx, "user-1", newStoredSession(t), time.Hour))
	err := store.Create(ctx, "user-1", newStoredSession(t), time.Hour)
	assert.ErrorIs(t, err, session.ErrSessionExists)
}

func TestRedisStoreUpdateCAS(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Create(ctx, "user-1", newStoredSession(t), time.Hour))

	s, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, s.AddHandNote("note", time.Now(), time.Now()))

	require.NoError(t, store.Update(ctx, "user-1", s, 1, 30*time.Minute))
	assert.InDelta(t, (30 * time.Minute).Seconds(), mr.TTL("user:user-1").Seconds(), 1)

	// Stale expected version: the write must be rejected, not applied.
	err = store.Update(ctx, "user-1", s, 1, time.Hour)
	assert.ErrorIs(t, err, session.ErrVersionConflict)

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
}

func TestRedisStoreUpdateMissingRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _ := newRedisStore(t)

	err := store.Update(ctx, "ghost", newStoredSession(t), 1, time.Hour)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisStoreCorruptRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, mr.Set("user:user-1", "not json at all"))

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, session.ErrCorruptRecord)

	err = store.Update(ctx, "user-1", newStoredSession(t), 1, time.Hour)
	assert.ErrorIs(t, err, session.ErrCorruptRecord)
}

func TestRedisStoreDeleteIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _ := newRedisStore(t)

	require.NoError(t, store.Create(ctx, "user-1", newStoredSession(t), time.Hour))

	existed, err := store.Delete(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Delete(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Create(ctx, "user-1", newStoredSession(t), 30*time.Minute))
	mr.FastForward(31 * time.Minute)

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisStoreUnavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewRedisStore(client)
	mr.Close()

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)

	err = store.Create(ctx, "user-1", newStoredSession(t), time.Hour)
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)
}
