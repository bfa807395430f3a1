package httpserver

import "errors"

var (
	// ErrStart wraps listener and startup failures from Run.
	ErrStart = errors.New("httpserver: failed to start")
	// ErrShutdown wraps failures to drain within the shutdown timeout.
	ErrShutdown = errors.New("httpserver: graceful shutdown failed")
)
