package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the shared get/set/remove contract against s.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	// removing an absent key is not an error
	require.NoError(t, s.Remove(ctx, "healthcareUser"))
	_, err := s.Get(ctx, "healthcareUser")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "healthcareUser", `{"id":"1"}`))
	got, err := s.Get(ctx, "healthcareUser")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, got)

	require.NoError(t, s.Set(ctx, "healthcareUser", `{"id":"2"}`))
	got, err = s.Get(ctx, "healthcareUser")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"2"}`, got, "latest write wins")

	require.NoError(t, s.Remove(ctx, "healthcareUser"))
	_, err = s.Get(ctx, "healthcareUser")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Ping(context.Background()))
	exerciseStore(t, s)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "healthcareUser", "persisted"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Get(ctx, "healthcareUser")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Ping(context.Background()))
	exerciseStore(t, s)
}

func TestRedisStore_NoExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(context.Background(), "healthcareUser", "x"))
	got, err := mr.Get("healthcareUser")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
	assert.Zero(t, mr.TTL("healthcareUser"))
}

func TestOpenRedisFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	s, err := OpenPostgres(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}
