// Package log builds the process-wide zap logger.
//
// # Overview
//
// Every component receives a *zap.Logger from here, scoped with
// With(zap.String("component", ...)). Two encoders are supported: "text"
// (console encoder, human-oriented) and "json" (machine-oriented, one
// object per line). Level and format come from configuration.
//
// Quick start
//
//	logger, err := log.New(log.Config{Level: "info", Format: "text"})
//	if err != nil { /* handle */ }
//	defer logger.Sync()
//	logger.Info("server started", zap.Int("port", 7500))
//
// # Interop
//
// Pebble and other libraries write through the standard library's log
// package. RedirectStdLog routes that output through the zap logger so the
// process emits a single stream.
package log
