// Package runtime wires storage, config, recovery, and facades into a
// single-node broker instance. It exposes Open/Close, a basic health
// check, and the queue and auth facades the transport layers use.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(ctx, runtime.Options{Config: cfg, Logger: logger})
//	defer rt.Close(ctx)
//	_ = rt.CheckHealth(ctx)
//	info, _ := rt.Queues().Create(ctx, "orders", queue.Config{Type: message.TypeTransaction})
package runtime
