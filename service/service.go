package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/anahihull/sd-api-ordenes/db"
	ordersHttp "github.com/anahihull/sd-api-ordenes/http"
	"github.com/anahihull/sd-api-ordenes/message"
	"github.com/anahihull/sd-api-ordenes/message/command"
	"github.com/anahihull/sd-api-ordenes/message/event"
	"github.com/anahihull/sd-api-ordenes/message/queue"
	"github.com/anahihull/sd-api-ordenes/metrics"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	echoRouter *echo.Echo
	publisher  watermillMessage.Publisher
	poller     *message.Poller
	addr       string
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewOrders builds the orders service. Events go to Redis when redisClient
// is set.
func NewOrders(
	port string,
	redisClient *redis.Client,
	orderRepo *db.OrderRepository,
) (Service, error) {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	publisher, err := message.NewPublisher(redisClient, watermillLogger)
	if err != nil {
		return Service{}, err
	}
	eventBus := event.NewBus(publisher)

	reg := newRegistry()

	echoRouter := ordersHttp.NewOrdersRouter(
		orderRepo,
		eventBus,
		metrics.NewHTTP(reg),
		reg,
	)

	return Service{
		echoRouter: echoRouter,
		publisher:  publisher,
		addr:       ":" + port,
	}, nil
}

// NewStudents builds the students service: the HTTP surface plus the poller
// feeding create-student commands from queueClient into the same repository.
func NewStudents(
	port string,
	redisClient *redis.Client,
	queueClient queue.Client,
	pollerConfig message.PollerConfig,
) (Service, error) {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	publisher, err := message.NewPublisher(redisClient, watermillLogger)
	if err != nil {
		return Service{}, err
	}
	eventBus := event.NewBus(publisher)

	reg := newRegistry()

	studentRepo := db.NewStudentRepository()
	commandsHandler := command.NewHandler(studentRepo, eventBus)

	poller := message.NewPoller(
		queueClient,
		func(ctx context.Context, msg queue.Message) error {
			return commandsHandler.Handle(ctx, msg.Body)
		},
		pollerConfig,
		metrics.NewIngest(reg),
		message.DefaultMiddlewares()...,
	)

	echoRouter := ordersHttp.NewStudentsRouter(
		studentRepo,
		eventBus,
		metrics.NewHTTP(reg),
		reg,
	)

	return Service{
		echoRouter: echoRouter,
		publisher:  publisher,
		poller:     poller,
		addr:       ":" + port,
	}, nil
}

func (s Service) Run(
	ctx context.Context,
) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	if s.poller != nil {
		errgrp.Go(func() error {
			return s.poller.Run(ctx)
		})
	}

	errgrp.Go(func() error {
		log.FromContext(ctx).WithField("addr", s.addr).Info("Starting HTTP server")

		err := s.echoRouter.Start(s.addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()

		err := s.echoRouter.Shutdown(context.Background())
		return errors.Join(err, s.publisher.Close())
	})

	return errgrp.Wait()
}
