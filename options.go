package gazetribe

import (
	"log/slog"
	"time"
)

// ClientOption configures a tracker client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	logger           *slog.Logger
	onSend           func(*Request)
	onReceive        func(*Response)
	handshakeTimeout time.Duration
}

// WithLogger sets a structured logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithOnSend sets a callback invoked before each request is sent.
func WithOnSend(fn func(*Request)) ClientOption {
	return func(c *clientConfig) {
		c.onSend = fn
	}
}

// WithOnReceive sets a callback invoked after each message is received.
func WithOnReceive(fn func(*Response)) ClientOption {
	return func(c *clientConfig) {
		c.onReceive = fn
	}
}

// WithHandshakeTimeout bounds the wait for the server's version reply
// during Connect. The default is 5 seconds.
func WithHandshakeTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.handshakeTimeout = d
	}
}
