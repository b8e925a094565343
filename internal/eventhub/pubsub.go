package eventhub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
)

// DefaultEventChannel is the Redis pub/sub channel complaint events travel on.
const DefaultEventChannel = "complaints:events"

// RedisBroker bridges complaint events through Redis pub/sub so every running
// instance sees every event.
type RedisBroker struct {
	client  *redis.Client
	channel string
	log     *logging.Logger
}

// NewRedisBroker wraps client. channel falls back to DefaultEventChannel.
func NewRedisBroker(client *redis.Client, channel string, log *logging.Logger) *RedisBroker {
	if channel == "" {
		channel = DefaultEventChannel
	}
	return &RedisBroker{client: client, channel: channel, log: log}
}

func (b *RedisBroker) Publish(ctx context.Context, event models.ComplaintEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context) (<-chan models.ComplaintEvent, error) {
	sub := b.client.Subscribe(ctx, b.channel)
	out := make(chan models.ComplaintEvent)

	go func() {
		defer close(out)
		defer sub.Close()

		for msg := range sub.Channel() {
			var event models.ComplaintEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.log.Error("unmarshal broker event", "error", err)
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
