package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clientcmd "github.com/midani-47/Message-Queues/internal/cmd/client"
	serverrun "github.com/midani-47/Message-Queues/internal/cmd/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mq",
		Short: "Message queue broker CLI",
		Long:  "mq is a single-binary message queue broker. This CLI runs the server and drives its HTTP API.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the broker (HTTP API)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			httpAddr, _ := cmd.Flags().GetString("http")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			if err := serverrun.Run(context.Background(), serverrun.Options{
				ConfigPath:      configPath,
				HTTPAddr:        httpAddr,
				DataDir:         dataDir,
				Fsync:           fsyncMode,
				FsyncIntervalMs: fsyncIntervalMs,
				LogLevel:        logLevel,
				LogFormat:       logFormat,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	serverStartCmd.Flags().String("config", "", "Config file path (JSON or YAML; also MQ_CONFIG_PATH)")
	serverStartCmd.Flags().String("http", "", "HTTP listen address (default from config, 0.0.0.0:7500)")
	serverStartCmd.Flags().String("data-dir", "", "Storage directory (default from config, ./queue_data)")
	serverStartCmd.Flags().String("fsync", "", "Fsync mode: always|interval|never (default from config)")
	serverStartCmd.Flags().Int("fsync-interval-ms", 0, "When fsync=interval, group-commit window in ms")
	serverStartCmd.Flags().String("log-level", "", "Log level: debug|info|warn|error (default from config)")
	serverStartCmd.Flags().String("log-format", "", "Log format: text|json (default from config)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// client commands against the HTTP API
	rootCmd.AddCommand(clientcmd.NewLoginCommand(clientcmd.BaseURLFromEnv))
	rootCmd.AddCommand(clientcmd.NewQueueCommand(clientcmd.BaseURLFromEnv))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
