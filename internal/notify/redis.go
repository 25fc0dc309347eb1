package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is used when no Redis channel is configured.
const DefaultChannel = "deusexludus:chat"

// Redis publishes chat lines as JSON on a pub/sub channel so other table
// services can follow the roll log.
type Redis struct {
	client  *redis.Client
	channel string
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, addr, password string, db int, channel string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if channel == "" {
		channel = DefaultChannel
	}
	return &Redis{client: client, channel: channel}, nil
}

func (r *Redis) Channel() string { return r.channel }

func (r *Redis) Publish(ctx context.Context, m Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe returns a subscription on the chat channel. Callers must Close it.
func (r *Redis) Subscribe(ctx context.Context) *redis.PubSub {
	return r.client.Subscribe(ctx, r.channel)
}

func (r *Redis) Close() error { return r.client.Close() }
