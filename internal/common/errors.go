package common

import (
	"errors"
	"fmt"
)

// Error taxonomy for the messaging subsystem. Transport and validation
// failures are absorbed at the dispatcher and reflected as message or file
// status; none of these should reach a renderer as a panic.

// NetworkError is transient. The optimistic entry is marked failed and a
// retry issues a fresh send with a new correlation id.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is not recoverable locally; the session layer owns re-auth. The
// subsystem never retries it.
type AuthError struct {
	Op string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected during %s", e.Op)
}

var (
	// ErrEmptyContent rejects a send before any transport call is made.
	ErrEmptyContent = errors.New("message content cannot be empty")

	// ErrContentTooLong caps a single message body.
	ErrContentTooLong = errors.New("message content is too long")

	// ErrPermissionDenied is a declined intent, not a failure: the UI should
	// not have offered the action.
	ErrPermissionDenied = errors.New("action not permitted for actor")

	// Per-file upload failures. They mark only the one file and never block
	// other attachments or the eventual send.
	ErrPayloadTooLarge = errors.New("file exceeds upload size limit")
	ErrUnsupportedType = errors.New("file type not supported")

	// ErrStaleChannel marks a durable response that arrived after the user
	// switched channels; the result is discarded.
	ErrStaleChannel = errors.New("response for a channel that is no longer active")
)

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
