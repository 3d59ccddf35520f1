package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	transports "github.com/midani-47/Message-Queues/internal/cmd/client/transports"
)

// NewQueueCommand constructs the `queue` command group and subcommands.
func NewQueueCommand(baseURL BaseURLFunc) *cobra.Command {
	queueCmd := &cobra.Command{Use: "queue", Short: "Queue operations"}

	queueCmd.AddCommand(
		newQueueCreateCommand(baseURL),
		newQueueDeleteCommand(baseURL),
		newQueueListCommand(baseURL),
		newQueueInfoCommand(baseURL),
		newQueuePushCommand(baseURL),
		newQueuePullCommand(baseURL),
	)

	return queueCmd
}

// printJSON renders v as indented JSON on the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

// newQueueCreateCommand constructs the `queue create` subcommand.
func newQueueCreateCommand(baseURL BaseURLFunc) *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a queue (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			typ, _ := cmd.Flags().GetString("type")
			max, _ := cmd.Flags().GetInt("max-messages")
			interval, _ := cmd.Flags().GetInt("persist-interval-seconds")

			info, err := newTransport(baseURL).Create(cmd.Context(), name, transports.QueueConfig{
				Type:                   typ,
				MaxMessages:            max,
				PersistIntervalSeconds: interval,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
	createCmd.Flags().String("name", "", "Queue name (alphanumeric)")
	createCmd.Flags().String("type", "", "Queue type: transaction|prediction")
	createCmd.Flags().Int("max-messages", 0, "Capacity bound (0 = server default)")
	createCmd.Flags().Int("persist-interval-seconds", 0, "Snapshot cadence (0 = server default)")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("type")
	return createCmd
}

// newQueueDeleteCommand constructs the `queue delete` subcommand.
func newQueueDeleteCommand(baseURL BaseURLFunc) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a queue and all its messages (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			msg, err := newTransport(baseURL).Delete(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	deleteCmd.Flags().String("name", "", "Queue name")
	_ = deleteCmd.MarkFlagRequired("name")
	return deleteCmd
}

// newQueueListCommand constructs the `queue list` subcommand.
func newQueueListCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queues",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := newTransport(baseURL).List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"queues": list})
		},
	}
}

// newQueueInfoCommand constructs the `queue info` subcommand.
func newQueueInfoCommand(baseURL BaseURLFunc) *cobra.Command {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show one queue's name, type, depth, and timestamps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			info, err := newTransport(baseURL).Info(cmd.Context(), name)
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
	infoCmd.Flags().String("name", "", "Queue name")
	_ = infoCmd.MarkFlagRequired("name")
	return infoCmd
}

// newQueuePushCommand constructs the `queue push` subcommand.
func newQueuePushCommand(baseURL BaseURLFunc) *cobra.Command {
	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Push a message (agent or admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			queue, _ := cmd.Flags().GetString("queue")
			typ, _ := cmd.Flags().GetString("type")
			data, _ := cmd.Flags().GetString("data")

			if !json.Valid([]byte(data)) {
				return fmt.Errorf("--data must be a JSON object")
			}
			id, err := newTransport(baseURL).Push(cmd.Context(), queue, typ, json.RawMessage(data))
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"message_id": id})
		},
	}
	pushCmd.Flags().String("queue", "", "Queue name")
	pushCmd.Flags().String("type", "", "Declared message type: transaction|prediction")
	pushCmd.Flags().String("data", "", "Message content as a JSON object")
	_ = pushCmd.MarkFlagRequired("queue")
	_ = pushCmd.MarkFlagRequired("type")
	_ = pushCmd.MarkFlagRequired("data")
	return pushCmd
}

// newQueuePullCommand constructs the `queue pull` subcommand.
func newQueuePullCommand(baseURL BaseURLFunc) *cobra.Command {
	pullCmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull the oldest message (agent or admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			queue, _ := cmd.Flags().GetString("queue")
			msg, ok, err := newTransport(baseURL).Pull(cmd.Context(), queue)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "queue is empty")
				return nil
			}
			return printJSON(cmd, msg)
		},
	}
	pullCmd.Flags().String("queue", "", "Queue name")
	_ = pullCmd.MarkFlagRequired("queue")
	return pullCmd
}
