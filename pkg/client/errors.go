package client

import "errors"

var (
	// ErrDaemonNotRunning means nothing listens on the socket path.
	ErrDaemonNotRunning = errors.New("powerstate daemon not running")

	// ErrPermissionDenied means the socket exists but the daemon was started
	// without --allow-non-root-access.
	ErrPermissionDenied = errors.New("permission denied on daemon socket")

	// ErrNotFound means the daemon lacks the route, usually because it is an
	// older version, e.g. one without /events.
	ErrNotFound = errors.New("route not found on daemon")
)
