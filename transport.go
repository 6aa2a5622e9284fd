package gazetribe

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net"
	"sync"
	"time"
)

// DefaultAddr is the address the tracker server listens on by default.
const DefaultAddr = "127.0.0.1:6555"

// Transport provides the interface for sending and receiving protocol
// messages. Implementations must be safe for concurrent use and must
// deliver whole messages in order.
type Transport interface {
	Send(ctx context.Context, req *Request) error
	Receive(ctx context.Context) (*Response, error)
	Close() error
}

// Dial connects to a tracker server over TCP. Messages are exchanged as
// newline-delimited JSON objects.
func Dial(ctx context.Context, addr string) (Transport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Addr: addr, Err: err}
	}
	return newTCPTransport(conn), nil
}

// tcpTransport implements Transport over a stream connection with
// newline-delimited JSON framing.
type tcpTransport struct {
	conn    net.Conn
	scanner *bufio.Scanner

	mu     sync.Mutex
	closed bool
}

func newTCPTransport(conn net.Conn) *tcpTransport {
	scanner := bufio.NewScanner(conn)
	// Calibration results with many points produce long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &tcpTransport{conn: conn, scanner: scanner}
}

// Send sends a request to the server.
func (t *tcpTransport) Send(ctx context.Context, req *Request) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}

	data, err := json.Marshal(req)
	if err != nil {
		return &SendError{Op: "marshal", Err: err}
	}
	data = append(data, '\n')

	if deadline, ok := ctx.Deadline(); ok {
		t.conn.SetWriteDeadline(deadline)
		defer t.conn.SetWriteDeadline(time.Time{})
	}

	if _, err := t.conn.Write(data); err != nil {
		return &ConnectionError{Op: "write", Err: err}
	}
	return nil
}

// Receive receives the next message from the server. Lines that are not
// valid JSON objects are skipped; the protocol is best-effort tolerant of
// garbage on the wire.
func (t *tcpTransport) Receive(ctx context.Context) (*Response, error) {
	for {
		if !t.scanner.Scan() {
			t.mu.Lock()
			closed := t.closed
			t.mu.Unlock()
			if closed {
				return nil, ErrClosed
			}
			if err := t.scanner.Err(); err != nil {
				return nil, &ConnectionError{Op: "read", Err: err}
			}
			return nil, ErrClosed
		}

		line := bytes.TrimSpace(t.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var resp Response
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}
		return &resp, nil
	}
}

// Close closes the transport.
func (t *tcpTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	return t.conn.Close()
}
