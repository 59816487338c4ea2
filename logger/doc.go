// Package logger provides structured logging for sylph clients using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. The transport logs at debug level only; errors
// are returned to callers, never logged.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("httpclient").WithContext(ctx)
//	log.Debug("request sent", logger.RequestFields("GET", url))
package logger
