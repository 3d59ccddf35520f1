package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	transports "github.com/midani-47/Message-Queues/internal/cmd/client/transports"
)

// NewLoginCommand constructs the `login` command. It exchanges credentials
// for a bearer token and caches it for the queue commands.
func NewLoginCommand(baseURL BaseURLFunc) *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain and cache an access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			tok, err := transports.NewHTTPTransport(baseURL(), "").Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			path, err := saveToken(tok.AccessToken)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token cached at %s (expires %s)\n",
				path, tok.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}
	loginCmd.Flags().StringP("username", "u", "", "Username")
	loginCmd.Flags().StringP("password", "p", "", "Password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
	return loginCmd
}
