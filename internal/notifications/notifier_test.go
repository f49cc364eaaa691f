package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan AdResponseEvent, 1)
	require.NoError(t, n.StartAdResponseSubscriber(ctx, func(e AdResponseEvent) {
		received <- e
	}))

	// Give the subscriber a moment to register.
	time.Sleep(50 * time.Millisecond)

	event := AdResponseEvent{
		AdID:        42,
		AdTitle:     "Monstera cutting",
		SellerEmail: "ida@x.com",
		ReplyTo:     "buyer@y.com",
		Message:     "Is it still available?",
	}
	require.NoError(t, n.PublishAdResponse(ctx, event))

	select {
	case got := <-received:
		assert.Equal(t, uint(42), got.AdID)
		assert.Equal(t, "ida@x.com", got.SellerEmail)
		assert.Equal(t, "buyer@y.com", got.ReplyTo)
		assert.NotEmpty(t, got.ID)
		assert.False(t, got.CreatedAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ad response event")
	}
}

func TestNotifier_NilRedisDropsEvent(t *testing.T) {
	n := NewNotifier(nil)
	err := n.PublishAdResponse(context.Background(), AdResponseEvent{AdID: 1})
	assert.NoError(t, err)
}
