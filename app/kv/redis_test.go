package kv

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisInvalidURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}

func TestRedis(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	store, err := NewRedis(ctx, redisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	key := "wotd-test:" + uuid.NewString()

	var r record
	found, err := store.Get(ctx, key, &r)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, key, record{Word: "lexicon"}))

	found, err = store.Get(ctx, key, &r)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "lexicon", r.Word)

	require.NoError(t, store.client.Del(ctx, key).Err())
}
