package server

import "errors"

// Server-specific errors
var (
	ErrServerClosed         = errors.New("server is closed")
	ErrServerNotRunning     = errors.New("server is not running")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrMaxClientsReached    = errors.New("maximum clients reached")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrSensorNotFound       = errors.New("sensor not found")
	ErrListenerFailed       = errors.New("failed to create listener")
)
