package message

import (
	"context"
	"errors"
	"time"

	"github.com/anahihull/sd-api-ordenes/message/command"
	"github.com/anahihull/sd-api-ordenes/message/queue"
	"github.com/anahihull/sd-api-ordenes/metrics"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type PollerConfig struct {
	Receive queue.ReceiveParams
	// Interval is the pause after every iteration, whatever its outcome.
	Interval time.Duration
	// AckMalformed deletes messages failing with command.ErrMalformedMessage
	// instead of leaving them for redelivery.
	AckMalformed bool
}

func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Receive: queue.ReceiveParams{
			MaxMessages:       5,
			WaitTime:          10 * time.Second,
			VisibilityTimeout: 30 * time.Second,
		},
		Interval:     5 * time.Second,
		AckMalformed: true,
	}
}

// Poller receives batches from the queue and hands every message to the
// handler, one at a time. Handled messages are deleted from the queue
// whether or not the handler succeeded; only malformed messages may be kept,
// depending on AckMalformed.
type Poller struct {
	client  queue.Client
	handler HandlerFunc
	config  PollerConfig
	metrics *metrics.Ingest
}

func NewPoller(
	client queue.Client,
	handler HandlerFunc,
	config PollerConfig,
	ingestMetrics *metrics.Ingest,
	middlewares ...Middleware,
) *Poller {
	if client == nil {
		panic("client is required")
	}
	if handler == nil {
		panic("handler is required")
	}
	if ingestMetrics == nil {
		panic("ingestMetrics is required")
	}

	return &Poller{
		client:  client,
		handler: chain(handler, middlewares...),
		config:  config,
		metrics: ingestMetrics,
	}
}

// Run polls until ctx is cancelled. Errors never stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	logger := log.FromContext(ctx)
	logger.WithFields(logrus.Fields{
		"max_messages":       p.config.Receive.MaxMessages,
		"wait_time":          p.config.Receive.WaitTime,
		"visibility_timeout": p.config.Receive.VisibilityTimeout,
		"interval":           p.config.Interval,
	}).Info("Starting queue poller")

	for {
		p.Poll(ctx)

		timer := time.NewTimer(p.config.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Queue poller stopped")
			return nil
		case <-timer.C:
		}
	}
}

// Poll runs one receive, handle and acknowledge iteration and returns the
// number of messages received.
func (p *Poller) Poll(ctx context.Context) int {
	ctx, span := otel.Tracer("").Start(ctx, "queue: poll")
	defer span.End()

	logger := log.FromContext(ctx)

	messages, err := p.client.Receive(ctx, p.config.Receive)
	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		p.metrics.ReceiveErrors.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.WithError(err).Error("Failed to receive messages")
		return 0
	}

	span.SetAttributes(attribute.Int("messages.count", len(messages)))
	if len(messages) == 0 {
		return 0
	}

	p.metrics.Received.Add(float64(len(messages)))
	logger.WithField("count", len(messages)).Debug("Received messages")

	// a received batch is finished even when shutdown starts midway, so
	// handled messages still get acknowledged
	batchCtx := context.WithoutCancel(ctx)
	for _, msg := range messages {
		p.process(batchCtx, msg)
	}

	return len(messages)
}

func (p *Poller) process(ctx context.Context, msg queue.Message) {
	logger := log.FromContext(ctx).WithField("message_id", msg.ID)

	err := p.handler(ctx, msg)
	malformed := errors.Is(err, command.ErrMalformedMessage)

	switch {
	case err == nil:
		p.metrics.Handled.WithLabelValues(metrics.OutcomeProcessed).Inc()
	case malformed:
		p.metrics.Handled.WithLabelValues(metrics.OutcomeMalformed).Inc()
		logger.WithError(err).Warn("Dropping malformed message")
	default:
		p.metrics.Handled.WithLabelValues(metrics.OutcomeFailed).Inc()
	}

	if malformed && !p.config.AckMalformed {
		logger.Info("Leaving malformed message on the queue")
		return
	}

	if msg.Handle == "" {
		logger.Warn("Message has no delivery handle, can't acknowledge it")
		return
	}

	if err := p.client.Delete(ctx, msg.Handle); err != nil {
		p.metrics.AckErrors.Inc()
		logger.WithError(err).Error("Failed to acknowledge message")
		return
	}
	p.metrics.Acknowledged.Inc()
}
