// Package notifications publishes domain events into Redis channels.
//
// The server never sends email itself: responding to an ad publishes an
// AdResponseEvent that an external mail worker subscribes to and turns into
// an outbound message.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"loppis/internal/middleware"
	"loppis/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AdResponseChannel is the Redis channel carrying ad-response events.
const AdResponseChannel = "mail:ad_response"

// AdResponseEvent is the payload handed to the mail pipeline when someone
// responds to an ad.
type AdResponseEvent struct {
	ID          string    `json:"id"`
	AdID        uint      `json:"ad_id"`
	AdTitle     string    `json:"ad_title"`
	SellerEmail string    `json:"seller_email"`
	ReplyTo     string    `json:"reply_to"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notifier provides helpers to publish events into Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishAdResponse publishes an ad-response event. With no Redis available
// the event is logged and dropped.
func (n *Notifier) PublishAdResponse(ctx context.Context, event AdResponseEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ad response event: %w", err)
	}

	if n == nil || n.rdb == nil {
		middleware.Logger.WarnContext(ctx, "no redis, dropping ad response event",
			slog.Uint64("ad_id", uint64(event.AdID)))
		return nil
	}

	if err := n.rdb.Publish(ctx, AdResponseChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish ad response event: %w", err)
	}

	observability.AdResponsesPublished.Inc()
	return nil
}

// StartAdResponseSubscriber subscribes to the ad-response channel and calls
// onEvent for each decoded event until ctx is cancelled. Used by the mail
// worker and by tests.
func (n *Notifier) StartAdResponseSubscriber(ctx context.Context, onEvent func(AdResponseEvent)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, AdResponseChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event AdResponseEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					middleware.Logger.Warn("dropping malformed ad response event",
						slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in ad response subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())))
						}
					}()
					onEvent(event)
				}()
			}
		}
	}()

	return nil
}
