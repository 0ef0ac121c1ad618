package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/cache"
	"github.com/pkordes/tripweaver/testutil"
)

// Integration test: skipped unless TEST_REDIS_URL is set.
func TestRedis_RoundTrip(t *testing.T) {
	client := testutil.NewRedis(t)
	store := cache.NewRedis(client, "test:")
	ctx := context.Background()

	_, err := store.Get(ctx, "drag")
	assert.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, store.Set(ctx, "drag", []byte(`{"id":"x"}`), time.Minute))

	got, err := store.Get(ctx, "drag")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x"}`, string(got))

	ttl, err := client.TTL(ctx, "test:drag").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, store.Delete(ctx, "drag"))
	_, err = store.Get(ctx, "drag")
	assert.ErrorIs(t, err, cache.ErrMiss)
}
