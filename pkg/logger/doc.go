// Package logger wraps Uber's Zap logger behind a small structured-logging
// API shared by every package in this module.
//
// Consuming packages do not import this package directly. They declare a local
// Logger interface with the same method set:
//
//	type Logger interface {
//	    Info(msg string, err error, fields ...map[string]interface{})
//	    Debug(msg string, err error, fields ...map[string]interface{})
//	    Warn(msg string, err error, fields ...map[string]interface{})
//	    Error(msg string, err error, fields ...map[string]interface{})
//	    Fatal(msg string, err error, fields ...map[string]interface{})
//	}
//
// which *logger.Logger satisfies. This keeps packages decoupled from Zap and
// trivially mockable in tests.
package logger
