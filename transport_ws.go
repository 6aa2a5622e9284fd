package gazetribe

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/coder/websocket"
)

// WSDialOptions configures a WebSocket connection.
type WSDialOptions struct {
	// HTTPHeader specifies additional HTTP headers to send during handshake.
	HTTPHeader http.Header

	// HTTPClient is the HTTP client used for the handshake.
	// If nil, http.DefaultClient is used.
	HTTPClient *http.Client
}

// DialWebSocket connects to a tracker server exposed through a WebSocket
// bridge, for deployments where the raw TCP port is not reachable. Each
// protocol message travels as one text frame.
func DialWebSocket(ctx context.Context, url string, opts *WSDialOptions) (Transport, error) {
	dialOpts := &websocket.DialOptions{}
	if opts != nil && opts.HTTPHeader != nil {
		dialOpts.HTTPHeader = opts.HTTPHeader.Clone()
	}
	if opts != nil && opts.HTTPClient != nil {
		dialOpts.HTTPClient = opts.HTTPClient
	}

	conn, _, err := websocket.Dial(ctx, url, dialOpts)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Addr: url, Err: err}
	}

	conn.SetReadLimit(1024 * 1024)

	return &wsTransport{conn: conn}, nil
}

// wsTransport implements Transport over WebSocket.
type wsTransport struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

// Send sends a request to the server.
func (t *wsTransport) Send(ctx context.Context, req *Request) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}

	data, err := json.Marshal(req)
	if err != nil {
		return &SendError{Op: "marshal", Err: err}
	}

	if err := t.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return &ConnectionError{Op: "write", Err: err}
	}
	return nil
}

// Receive receives the next message from the server, skipping frames that
// are not valid JSON objects.
func (t *wsTransport) Receive(ctx context.Context) (*Response, error) {
	for {
		_, data, err := t.conn.Read(ctx)
		if err != nil {
			t.mu.Lock()
			closed := t.closed
			t.mu.Unlock()
			if closed {
				return nil, ErrClosed
			}
			return nil, &ConnectionError{Op: "read", Err: err}
		}

		var resp Response
		if err := json.Unmarshal(data, &resp); err != nil {
			continue
		}
		return &resp, nil
	}
}

// Close closes the transport.
func (t *wsTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	return t.conn.Close(websocket.StatusNormalClosure, "")
}
