package gazetribe

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	ErrClosed             = errors.New("gazetribe: connection closed")
	ErrAlreadyConnected   = errors.New("gazetribe: already connected")
	ErrNotConnected       = errors.New("gazetribe: not connected")
	ErrVersionUnsupported = errors.New("gazetribe: server protocol version not supported")
	ErrHandshakeTimeout   = errors.New("gazetribe: timed out waiting for server version")
)

// ConnectionError represents a connection-level error.
type ConnectionError struct {
	Op   string
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Addr != "" {
		return fmt.Sprintf("gazetribe: %s %s: %v", e.Op, e.Addr, e.Err)
	}
	return fmt.Sprintf("gazetribe: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// SendError represents an error during request sending.
type SendError struct {
	Op  string
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("gazetribe: send %s: %v", e.Op, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// RequestError represents an error status returned by the server for a
// correlated request.
type RequestError struct {
	Category    string
	Request     string
	StatusCode  int
	Description string
}

func (e *RequestError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("gazetribe: %s/%s: status %d: %s", e.Category, e.Request, e.StatusCode, e.Description)
	}
	return fmt.Sprintf("gazetribe: %s/%s: status %d", e.Category, e.Request, e.StatusCode)
}

func newRequestError(resp *Response) *RequestError {
	return &RequestError{
		Category:    resp.Category,
		Request:     resp.Request,
		StatusCode:  resp.Status(),
		Description: resp.Description,
	}
}
