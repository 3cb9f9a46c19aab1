package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anahihull/sd-api-ordenes/config"
	"github.com/anahihull/sd-api-ordenes/entities"
	"github.com/anahihull/sd-api-ordenes/message"
	"github.com/anahihull/sd-api-ordenes/message/command"
	"github.com/anahihull/sd-api-ordenes/message/queue"

	"github.com/lithammer/shortuuid/v3"
	"github.com/spf13/cobra"
)

type createStudentMessage struct {
	Action  string                 `json:"action"`
	Payload entities.CreateStudent `json:"payload"`
}

func newEnqueueStudentCmd() *cobra.Command {
	var payload entities.CreateStudent

	cmd := &cobra.Command{
		Use:   "enqueue-student",
		Short: "Send a create-student message to the configured queue",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if payload.Name == "" {
				return fmt.Errorf("--name is required")
			}

			cfg, err := config.LoadQueue()
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := queue.Open(ctx, cfg)
			if err != nil {
				return err
			}

			body, err := json.Marshal(createStudentMessage{
				Action:  command.ActionCreate,
				Payload: payload,
			})
			if err != nil {
				return err
			}

			correlationID := shortuuid.New()
			err = client.Send(ctx, body, map[string]string{
				message.CorrelationIDAttribute: correlationID,
			})
			if err != nil {
				return fmt.Errorf("could not send message: %w", err)
			}

			fmt.Fprintf(c.OutOrStdout(), "sent %s (correlation_id %s)\n", body, correlationID)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload.Name, "name", "", "student name")
	cmd.Flags().Float64Var(&payload.BirthDate, "birth-date", 0, "birth date as a number, e.g. a unix timestamp")
	cmd.Flags().IntVar(&payload.CourseID, "course-id", 0, "course id")

	return cmd
}
