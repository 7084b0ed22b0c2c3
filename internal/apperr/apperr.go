// Package apperr holds the error kinds that every command pipeline can fail with.
// Packages wrap the sentinels with fmt.Errorf("%w: ...") so the bot can pick a
// user-facing message with errors.Is, while the wrapped text stays in the logs.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound means the upstream profile does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUpstreamUnavailable covers transport faults, timeouts and unexpected status codes.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrPageParse means the upstream markup no longer has a node we rely on.
	ErrPageParse = errors.New("page parse")
	// ErrCatalog is any fault raised by the storage layer.
	ErrCatalog = errors.New("catalog")
	// ErrExtraction is an unexpected fault while reading a personal best.
	ErrExtraction = errors.New("extraction")
)

// ArgumentError is malformed or missing command input. Message is shown to the
// requester as-is.
type ArgumentError struct {
	Message string
}

func (e ArgumentError) Error() string {
	return e.Message
}

// Argument creates an ArgumentError.
func Argument(message string) error {
	return ArgumentError{Message: message}
}

// IsArgument reports whether err is (or wraps) an ArgumentError.
func IsArgument(err error) bool {
	var argErr ArgumentError
	return errors.As(err, &argErr)
}

// PageParse wraps ErrPageParse with a description of the node that was missing.
func PageParse(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPageParse, fmt.Sprintf(format, args...))
}
