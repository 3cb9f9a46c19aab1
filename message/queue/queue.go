// Package queue provides clients for the external queue the students
// service consumes create-student commands from.
//
// Every backend follows the same contract: Receive long-polls for at most
// MaxMessages messages, hides every returned message for VisibilityTimeout,
// and Delete acknowledges one delivery by its handle. A delivery that is not
// deleted becomes visible again once its visibility window expires.
package queue

import (
	"context"
	"errors"
	"time"
)

var ErrHandleNotFound = errors.New("delivery handle not found")

type Message struct {
	ID   string
	Body []byte
	// Handle identifies this delivery of the message. Empty when the backend
	// did not return one.
	Handle     string
	Attributes map[string]string
}

type ReceiveParams struct {
	MaxMessages       int
	WaitTime          time.Duration
	VisibilityTimeout time.Duration
}

type Client interface {
	Receive(ctx context.Context, params ReceiveParams) ([]Message, error)
	Delete(ctx context.Context, handle string) error
	Send(ctx context.Context, body []byte, attributes map[string]string) error
}
