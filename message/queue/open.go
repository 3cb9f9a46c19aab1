package queue

import (
	"context"
	"fmt"
	"net/url"

	"github.com/anahihull/sd-api-ordenes/config"

	"github.com/redis/go-redis/v9"
)

// Open picks a backend from the scheme of cfg.URL: redis:// and rediss://
// use a Redis stream, memory:// keeps messages in the process, anything else
// is treated as an SQS queue URL.
func Open(ctx context.Context, cfg config.Queue) (Client, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid queue url: %w", err)
	}

	switch u.Scheme {
	case "redis", "rediss":
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis queue url: %w", err)
		}
		return NewRedisStream(redis.NewClient(opts), cfg.Stream, cfg.ConsumerGroup, cfg.ConsumerName), nil
	case "memory":
		return NewMemory(), nil
	default:
		return NewSQS(ctx, cfg.Region, cfg.URL, cfg.Endpoint)
	}
}
