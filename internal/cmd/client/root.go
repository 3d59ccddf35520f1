package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the broker client.
// It registers the login command and the queue command group.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "mq",
		Short: "Message queue client commands",
	}
	root.AddCommand(NewLoginCommand(baseURL))
	root.AddCommand(NewQueueCommand(baseURL))
	return root
}
