// Package logger provides a structured logging facility based on Zap.
//
// New builds a logger from Config: the "debug" level selects Zap's development
// preset, every other level the production preset. Format chooses between JSON
// (default) and colored console output.
//
// WithRayID extracts the request ray ID placed in Fiber locals by the rayid
// middleware, so every entry logged while serving a request can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
