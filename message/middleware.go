package message

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/anahihull/sd-api-ordenes/message/queue"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// CorrelationIDAttribute is the message attribute carrying the correlation id.
const CorrelationIDAttribute = "correlation_id"

// HandlerFunc handles a single received queue message.
type HandlerFunc func(ctx context.Context, msg queue.Message) error

type Middleware func(h HandlerFunc) HandlerFunc

// DefaultMiddlewares are applied outermost first.
func DefaultMiddlewares() []Middleware {
	return []Middleware{
		Recoverer,
		CorrelationID,
		Tracing,
		LogMessage,
	}
}

func chain(h HandlerFunc, middlewares ...Middleware) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func Recoverer(h HandlerFunc) HandlerFunc {
	return func(ctx context.Context, msg queue.Message) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred while handling message %s: %v\n%s", msg.ID, r, debug.Stack())
			}
		}()

		return h(ctx, msg)
	}
}

func CorrelationID(h HandlerFunc) HandlerFunc {
	return func(ctx context.Context, msg queue.Message) error {
		correlationID := msg.Attributes[CorrelationIDAttribute]
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		ctx = log.ToContext(ctx, logrus.WithFields(logrus.Fields{"correlation_id": correlationID}))
		ctx = log.ContextWithCorrelationID(ctx, correlationID)

		return h(ctx, msg)
	}
}

func Tracing(h HandlerFunc) HandlerFunc {
	return func(ctx context.Context, msg queue.Message) error {
		ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Attributes))

		ctx, span := otel.Tracer("").Start(
			ctx,
			"queue: handle message",
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(attribute.String("message.id", msg.ID)),
		)
		defer span.End()

		err := h(ctx, msg)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		return err
	}
}

func LogMessage(h HandlerFunc) HandlerFunc {
	return func(ctx context.Context, msg queue.Message) error {
		logger := log.FromContext(ctx).WithFields(logrus.Fields{
			"message_id": msg.ID,
			"payload":    string(msg.Body),
		})

		logger.Info("Handling a message")

		err := h(ctx, msg)
		if err != nil {
			logger.WithError(err).Error("Error while handling a message")
		}

		return err
	}
}
