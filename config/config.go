// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Common struct {
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	RedisAddr      string `envconfig:"REDIS_ADDR"`
	JaegerEndpoint string `envconfig:"JAEGER_ENDPOINT"`
}

func (c Common) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

type Orders struct {
	Common

	Port string `envconfig:"PORT" default:"4000"`
}

type Queue struct {
	Region   string `envconfig:"QUEUE_REGION" required:"true"`
	URL      string `envconfig:"QUEUE_URL" required:"true"`
	Endpoint string `envconfig:"QUEUE_ENDPOINT"`

	MaxMessages       int           `envconfig:"QUEUE_MAX_MESSAGES" default:"5"`
	WaitTime          time.Duration `envconfig:"QUEUE_WAIT_TIME" default:"10s"`
	VisibilityTimeout time.Duration `envconfig:"QUEUE_VISIBILITY_TIMEOUT" default:"30s"`
	PollInterval      time.Duration `envconfig:"QUEUE_POLL_INTERVAL" default:"5s"`

	// AckMalformed decides whether messages that cannot be parsed or carry
	// a mistyped payload are deleted (true) or left for redelivery.
	AckMalformed bool `envconfig:"QUEUE_ACK_MALFORMED" default:"true"`

	// Redis stream backend only.
	Stream        string `envconfig:"QUEUE_STREAM" default:"students"`
	ConsumerGroup string `envconfig:"QUEUE_CONSUMER_GROUP" default:"svc-students"`
	ConsumerName  string `envconfig:"QUEUE_CONSUMER_NAME" default:"svc-students-1"`
}

type Students struct {
	Common
	Queue

	Port string `envconfig:"PORT" default:"3001"`
}

func LoadOrders() (Orders, error) {
	var cfg Orders
	if err := envconfig.Process("", &cfg); err != nil {
		return Orders{}, fmt.Errorf("could not load orders config: %w", err)
	}
	return cfg, nil
}

func LoadStudents() (Students, error) {
	var cfg Students
	if err := envconfig.Process("", &cfg); err != nil {
		return Students{}, fmt.Errorf("could not load students config: %w", err)
	}
	if err := cfg.Queue.Validate(); err != nil {
		return Students{}, err
	}
	return cfg, nil
}

// LoadQueue loads only the queue settings, for commands that talk to the
// queue without running a service.
func LoadQueue() (Queue, error) {
	var cfg Queue
	if err := envconfig.Process("", &cfg); err != nil {
		return Queue{}, fmt.Errorf("could not load queue config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Queue{}, err
	}
	return cfg, nil
}

func (q Queue) Validate() error {
	if q.Region == "" {
		return fmt.Errorf("QUEUE_REGION is required")
	}
	if q.URL == "" {
		return fmt.Errorf("QUEUE_URL is required")
	}
	if q.MaxMessages < 1 || q.MaxMessages > 10 {
		return fmt.Errorf("QUEUE_MAX_MESSAGES must be between 1 and 10, got %d", q.MaxMessages)
	}
	if q.WaitTime < 0 || q.VisibilityTimeout < 0 || q.PollInterval < 0 {
		return fmt.Errorf("queue durations must not be negative")
	}
	return nil
}
