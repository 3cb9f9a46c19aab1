package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryMessage struct {
	id             string
	body           []byte
	attributes     map[string]string
	handle         string
	invisibleUntil time.Time
}

// Memory is a queue held in process memory. It honors visibility windows
// and long polling, which makes it a stand-in for SQS in tests and local runs.
type Memory struct {
	mu       sync.Mutex
	messages []*memoryMessage
	notify   chan struct{}
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		notify: make(chan struct{}),
		now:    time.Now,
	}
}

const memoryRecheckInterval = 20 * time.Millisecond

func (q *Memory) Receive(ctx context.Context, params ReceiveParams) ([]Message, error) {
	deadline := q.now().Add(params.WaitTime)

	for {
		q.mu.Lock()
		messages := q.takeVisible(params)
		notify := q.notify
		q.mu.Unlock()

		if len(messages) > 0 {
			return messages, nil
		}

		remaining := deadline.Sub(q.now())
		if remaining <= 0 {
			return nil, nil
		}

		// Hidden messages reappear without a Send, so recheck periodically.
		wait := min(remaining, memoryRecheckInterval)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-notify:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// takeVisible must be called with mu held.
func (q *Memory) takeVisible(params ReceiveParams) []Message {
	now := q.now()

	var messages []Message
	for _, m := range q.messages {
		if len(messages) >= params.MaxMessages {
			break
		}
		if now.Before(m.invisibleUntil) {
			continue
		}

		m.handle = uuid.NewString()
		m.invisibleUntil = now.Add(params.VisibilityTimeout)

		attributes := make(map[string]string, len(m.attributes))
		for k, v := range m.attributes {
			attributes[k] = v
		}
		messages = append(messages, Message{
			ID:         m.id,
			Body:       m.body,
			Handle:     m.handle,
			Attributes: attributes,
		})
	}

	return messages
}

func (q *Memory) Delete(ctx context.Context, handle string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, m := range q.messages {
		if m.handle != "" && m.handle == handle {
			q.messages = append(q.messages[:i], q.messages[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("could not delete message: %w", ErrHandleNotFound)
}

func (q *Memory) Send(ctx context.Context, body []byte, attributes map[string]string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	copied := make(map[string]string, len(attributes))
	for k, v := range attributes {
		copied[k] = v
	}

	q.messages = append(q.messages, &memoryMessage{
		id:         uuid.NewString(),
		body:       body,
		attributes: copied,
	})

	close(q.notify)
	q.notify = make(chan struct{})

	return nil
}

// Len returns the number of messages not yet deleted, hidden ones included.
func (q *Memory) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.messages)
}
