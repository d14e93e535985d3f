package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

const DefaultChannel = "tresenlinea:rounds"

var ErrChannelIsEmpty = errors.New("channel name is empty")

// Publisher sends concluded rounds to a Redis pub/sub channel.
type Publisher struct {
	client  *redis.Client
	channel string
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Publisher{
		client:  client,
		channel: channel,
	}
}

func (that *Publisher) Channel() string {
	return that.channel
}

// PublishRound - publishes the event as JSON.
func (that *Publisher) PublishRound(ctx context.Context, event *entity.RoundEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal round event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish round event: %w", err)
	}

	return nil
}

// Subscribe - streams round events until ctx is done. Undecodable messages are skipped.
func Subscribe(ctx context.Context, client *redis.Client, channel string) (<-chan entity.RoundEvent, error) {
	if channel == "" {
		return nil, ErrChannelIsEmpty
	}

	pubsub := client.Subscribe(ctx, channel)

	// wait for the subscription confirmation so no event published afterwards is lost
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	events := make(chan entity.RoundEvent)

	go func() {
		defer close(events)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var event entity.RoundEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}

				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
