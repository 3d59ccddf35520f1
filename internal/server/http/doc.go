// Package httpserver provides the broker's REST gateway: token issuance,
// health and metrics probes, and the authenticated queue endpoints for
// management and message movement.
//
// Example:
//
//	rt, _ := runtime.Open(ctx, runtime.Options{Config: config.Default()})
//	s := httpserver.New(rt, logger)
//	_ = s.ListenAndServe(ctx, ":7500")
package httpserver
