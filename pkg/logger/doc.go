// Package logger provides a small factory around Go's slog package: a
// single New function configured by functional options for format, level,
// output and static attributes.
//
// The session engine, the Redis store and the JWKS cache all log through
// *slog.Logger handles produced here, so a service embedding them gets
// one consistent structured-log stream.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithProduction("session-core"),
//	)
//	logger.SetAsDefault(log)
package logger
