// Package serverrun exposes the shared Run entrypoint the CLI uses to start
// a broker process: config loading, logger setup, runtime recovery, HTTP
// serving, and the flush-then-close shutdown sequence.
//
// Example:
//
//	opts := serverrun.Options{ConfigPath: "./mq.yaml", HTTPAddr: ":7500"}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = serverrun.Run(ctx, opts)
package serverrun
