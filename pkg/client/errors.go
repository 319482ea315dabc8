package client

import "errors"

var (
	// ErrDaemonNotRunning is returned when the daemon is not running
	ErrDaemonNotRunning = errors.New("daemon not running")

	// ErrPermissionDenied is returned when the user does not have permission to perform the requested action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotImplemented is returned when the daemon does not recognize the requested operation
	ErrNotImplemented = errors.New("operation not implemented")

	// ErrUnavailable is returned when the host cannot supply the requested data
	ErrUnavailable = errors.New("battery state unavailable")
)
