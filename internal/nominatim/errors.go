package nominatim

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned when the query is empty or whitespace only.
	ErrEmptyQuery = errors.New("empty query")
	// ErrNoResults is returned when the response contains no candidate.
	ErrNoResults = errors.New("no results found")
	// ErrRemoteRequestFailed matches any *RemoteRequestError.
	ErrRemoteRequestFailed = errors.New("remote request failed")
	// ErrTransport matches any *TransportError.
	ErrTransport = errors.New("transport error")
)

// RemoteRequestError reports a non-success HTTP status.
type RemoteRequestError struct {
	StatusCode int
}

func (e *RemoteRequestError) Error() string {
	return fmt.Sprintf("error while performing query: status %d", e.StatusCode)
}

// Is lets errors.Is match ErrRemoteRequestFailed.
func (e *RemoteRequestError) Is(target error) bool {
	return target == ErrRemoteRequestFailed
}

// TransportError wraps network and decoding failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
