package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAd struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mr
}

func TestCache_Aside_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	fetchCalls := 0
	fetch := func(dest *testAd) func() error {
		return func() error {
			fetchCalls++
			dest.ID = 7
			dest.Title = "Monstera cutting"
			return nil
		}
	}

	var first testAd
	require.NoError(t, c.Aside(ctx, AdKey(7), &first, AdTTL, fetch(&first)))
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "Monstera cutting", first.Title)

	// Second read must come from the cache.
	var second testAd
	require.NoError(t, c.Aside(ctx, AdKey(7), &second, AdTTL, fetch(&second)))
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, first, second)
}

func TestCache_Aside_FetchError(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	wantErr := errors.New("db down")
	var dest testAd
	err := c.Aside(ctx, AdKey(1), &dest, AdTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	// Nothing cached on failure.
	found, err := c.GetJSON(ctx, AdKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, AdKey(3), testAd{ID: 3}, time.Minute))
	c.Invalidate(ctx, AdKey(3))

	var dest testAd
	found, err := c.GetJSON(ctx, AdKey(3), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_NilClientIsNoop(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	var dest testAd
	found, err := c.GetJSON(ctx, AdKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, c.SetJSON(ctx, AdKey(1), testAd{}, time.Minute))

	calls := 0
	require.NoError(t, c.Aside(ctx, AdKey(1), &dest, time.Minute, func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
}
