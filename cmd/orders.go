package cmd

import (
	"context"

	"github.com/anahihull/sd-api-ordenes/config"
	"github.com/anahihull/sd-api-ordenes/db"
	"github.com/anahihull/sd-api-ordenes/service"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Run the orders HTTP service",
		Long: `Runs the orders CRUD API (default port 4000) with two preloaded orders.

ENV: PORT, LOG_LEVEL, REDIS_ADDR, JAEGER_ENDPOINT`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrders()
			if err != nil {
				return err
			}

			return runService("orders", cfg.Common, func(_ context.Context, rdb *redis.Client) (service.Service, error) {
				return service.NewOrders(cfg.Port, rdb, db.NewOrderRepository(db.SeedOrders()...))
			})
		},
	}
}
