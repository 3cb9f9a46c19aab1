package event

import (
	"context"
	"sync"
)

type BusMock struct {
	mock   sync.Mutex
	Events []any
	Err    error
}

func (b *BusMock) Publish(ctx context.Context, event any) error {
	b.mock.Lock()
	defer b.mock.Unlock()

	if b.Err != nil {
		return b.Err
	}
	b.Events = append(b.Events, event)
	return nil
}

func (b *BusMock) Published() []any {
	b.mock.Lock()
	defer b.mock.Unlock()

	events := make([]any, len(b.Events))
	copy(events, b.Events)
	return events
}
