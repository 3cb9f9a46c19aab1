package message

import (
	observability "github.com/anahihull/sd-api-ordenes/trace"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// NewPublisher returns the publisher domain events go out on: Redis streams
// when rdb is set, an in-process channel otherwise.
func NewPublisher(rdb *redis.Client, watermillLogger watermill.LoggerAdapter) (message.Publisher, error) {
	var pub message.Publisher

	if rdb != nil {
		redisPub, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: rdb,
		}, watermillLogger)
		if err != nil {
			return nil, err
		}
		pub = redisPub
	} else {
		pub = gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	}

	pub = log.CorrelationPublisherDecorator{Publisher: pub}
	pub = observability.TracingPublisherDecorator{Publisher: pub}

	return pub, nil
}
