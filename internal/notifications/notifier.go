// Package notifications provides real-time notification delivery and management.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"tribuna/internal/middleware"
	"tribuna/internal/models"

	"github.com/redis/go-redis/v9"
)

// Event is the envelope pushed over the websocket stream. Payload shape
// depends on Type; for "notification" it is the full notification row.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishNotification marshals a stored notification into an Event envelope
// and publishes it to the recipient's channel. The database row is the source
// of truth; a failed publish only costs the live push, the recipient still
// sees the notification on their next fetch.
func (n *Notifier) PublishNotification(ctx context.Context, notification *models.Notification) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(Event{Type: "notification", Payload: notification})
	if err != nil {
		return fmt.Errorf("marshal notification event: %w", err)
	}
	if err := n.rdb.Publish(ctx, UserChannel(notification.RecipientID), string(payload)).Err(); err != nil {
		middleware.RedisErrors.WithLabelValues("publish").Inc()
		return err
	}
	return nil
}

// PublishUser sends a raw payload to a user's channel.
func (n *Notifier) PublishUser(
	ctx context.Context, userID uint, payload string,
) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast sends a notification payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, "notifications:broadcast", payload).Err()
}

// StartPatternSubscriber subscribes to pattern `notifications:user:*` and calls onMessage
// for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*", "notifications:broadcast")
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
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}
