package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher publishes events over redis pub/sub.
type RedisPublisher struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewRedisPublisher creates a publisher on the given client.
func NewRedisPublisher(client redis.UniversalClient) (*RedisPublisher, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for RedisPublisher")
	}
	return &RedisPublisher{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// PublishTestCompleted sends the event as JSON on the completion channel.
func (p *RedisPublisher) PublishTestCompleted(event TestCompletedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling test completed event: %w", err)
	}
	return p.client.Publish(p.ctx, ChannelTestCompleted, payload).Err()
}
