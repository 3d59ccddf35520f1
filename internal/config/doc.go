// Package config loads the broker configuration. Precedence is built-in
// defaults, then one JSON or YAML file, then MQ_* environment variables.
//
// Example:
//
//	cfg, err := config.Load("/etc/mq/config.yaml")
//	if err != nil { /* handle */ }
//	rt, _ := runtime.Open(runtime.Options{Config: cfg, Logger: logger})
//	defer rt.Close(context.Background())
//
// The file path may also come from MQ_CONFIG_PATH. Individual keys are
// overridable through the environment, e.g. MQ_SERVER_PORT=8500 or
// MQ_STORAGE_FSYNC=interval.
package config
