package cmd

import (
	"context"

	"github.com/anahihull/sd-api-ordenes/config"
	"github.com/anahihull/sd-api-ordenes/message"
	"github.com/anahihull/sd-api-ordenes/message/queue"
	"github.com/anahihull/sd-api-ordenes/service"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newStudentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "students",
		Short: "Run the students HTTP service and queue consumer",
		Long: `Runs the students API (default port 3001) and the poller creating
students from queue messages.

ENV: QUEUE_REGION and QUEUE_URL are required. QUEUE_URL selects the backend:
redis:// or rediss:// for a Redis stream, memory:// for an in-process queue,
an SQS queue URL otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadStudents()
			if err != nil {
				return err
			}

			return runService("students", cfg.Common, func(ctx context.Context, rdb *redis.Client) (service.Service, error) {
				queueClient, err := queue.Open(ctx, cfg.Queue)
				if err != nil {
					return service.Service{}, err
				}

				return service.NewStudents(cfg.Port, rdb, queueClient, pollerConfig(cfg.Queue))
			})
		},
	}
}

func pollerConfig(cfg config.Queue) message.PollerConfig {
	return message.PollerConfig{
		Receive: queue.ReceiveParams{
			MaxMessages:       cfg.MaxMessages,
			WaitTime:          cfg.WaitTime,
			VisibilityTimeout: cfg.VisibilityTimeout,
		},
		Interval:     cfg.PollInterval,
		AckMalformed: cfg.AckMalformed,
	}
}
