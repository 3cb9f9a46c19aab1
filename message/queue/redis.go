package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

const redisBodyField = "body"

// RedisStream consumes a Redis stream through a consumer group. Entries
// delivered but not acknowledged stay pending; once they have been idle for
// longer than the visibility timeout they are claimed again.
type RedisStream struct {
	rdb      *redis.Client
	stream   string
	group    string
	consumer string

	groupMu      sync.Mutex
	groupCreated bool
}

func NewRedisStream(rdb *redis.Client, stream, group, consumer string) *RedisStream {
	return &RedisStream{
		rdb:      rdb,
		stream:   stream,
		group:    group,
		consumer: consumer,
	}
}

func (q *RedisStream) Receive(ctx context.Context, params ReceiveParams) ([]Message, error) {
	if err := q.ensureGroup(ctx); err != nil {
		return nil, err
	}

	count := int64(params.MaxMessages)

	if params.VisibilityTimeout > 0 {
		claimed, _, err := q.rdb.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   q.stream,
			Group:    q.group,
			Consumer: q.consumer,
			MinIdle:  params.VisibilityTimeout,
			Start:    "0-0",
			Count:    count,
		}).Result()
		if err != nil {
			return nil, fmt.Errorf("could not claim expired deliveries: %w", err)
		}
		if len(claimed) > 0 {
			return q.toMessages(claimed), nil
		}
	}

	block := params.WaitTime
	if block <= 0 {
		// go-redis treats 0 as "block forever"; a negative value omits BLOCK.
		block = -1
	}

	streams, err := q.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.group,
		Consumer: q.consumer,
		Streams:  []string{q.stream, ">"},
		Count:    count,
		Block:    block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read from stream %s: %w", q.stream, err)
	}

	var messages []Message
	for _, s := range streams {
		messages = append(messages, q.toMessages(s.Messages)...)
	}

	return messages, nil
}

func (q *RedisStream) Delete(ctx context.Context, handle string) error {
	var acked *redis.IntCmd
	_, err := q.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		acked = pipe.XAck(ctx, q.stream, q.group, handle)
		pipe.XDel(ctx, q.stream, handle)
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not acknowledge %s: %w", handle, err)
	}
	if acked.Val() == 0 {
		return fmt.Errorf("could not acknowledge %s: %w", handle, ErrHandleNotFound)
	}
	return nil
}

func (q *RedisStream) Send(ctx context.Context, body []byte, attributes map[string]string) error {
	values := make(map[string]interface{}, len(attributes)+1)
	for name, value := range attributes {
		values[name] = value
	}
	values[redisBodyField] = string(body)

	err := q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("could not add message to stream %s: %w", q.stream, err)
	}
	return nil
}

func (q *RedisStream) ensureGroup(ctx context.Context) error {
	q.groupMu.Lock()
	defer q.groupMu.Unlock()

	if q.groupCreated {
		return nil
	}

	err := q.rdb.XGroupCreateMkStream(ctx, q.stream, q.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("could not create consumer group %s: %w", q.group, err)
	}
	q.groupCreated = true

	return nil
}

func (q *RedisStream) toMessages(entries []redis.XMessage) []Message {
	messages := make([]Message, 0, len(entries))
	for _, entry := range entries {
		msg := Message{
			ID:         entry.ID,
			Handle:     entry.ID,
			Attributes: map[string]string{},
		}
		for field, value := range entry.Values {
			if field == redisBodyField {
				msg.Body = []byte(fmt.Sprint(value))
				continue
			}
			msg.Attributes[field] = fmt.Sprint(value)
		}
		messages = append(messages, msg)
	}
	return messages
}
