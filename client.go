package gazetribe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RequiredVersion is the protocol version this SDK speaks. Version 2 added
// the optional request id echoed on replies, which the correlator relies
// on; older servers are rejected during Connect.
const RequiredVersion = 2

const defaultHandshakeTimeout = 5 * time.Second

// Client maintains a session with a tracker server: it runs the version
// handshake, keeps snapshots of the server's state, and fans incoming gaze
// and calibration traffic out to registered listeners. It is safe for
// concurrent use by multiple goroutines.
//
// A Client outlives its connections: after Disconnect, or after the server
// drops the connection, Connect may be called again. The client never
// reconnects on its own; it only reports the loss to connection-state
// listeners.
type Client struct {
	cfg clientConfig

	mu        sync.Mutex
	transport Transport
	running   bool
	connCtx   context.Context
	cancel    context.CancelFunc
	pending   map[string]chan *Response
	versionCh chan int

	store    store
	progress calibProgress

	gazeListeners    registry[GazeListener]
	resultListeners  registry[CalibrationResultListener]
	trackerListeners registry[TrackerStateListener]
	processListeners registry[CalibrationProcessHandler]
	connListeners    registry[ConnectionStateListener]
}

// New creates a disconnected client. Listeners may be registered before or
// after Connect.
func New(opts ...ClientOption) *Client {
	cfg := clientConfig{handshakeTimeout: defaultHandshakeTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{cfg: cfg}
}

// Connect dials the tracker server over TCP and performs the version
// handshake. It fails if the client is already connected, if the server
// speaks a protocol version older than RequiredVersion, or if the server
// rejects the version switch.
func (c *Client) Connect(ctx context.Context, addr string) error {
	transport, err := Dial(ctx, addr)
	if err != nil {
		return err
	}
	if err := c.ConnectTransport(ctx, transport); err != nil {
		transport.Close()
		return err
	}
	return nil
}

// ConnectTransport runs the session over an already-established transport.
// This is useful for tests and custom transports such as DialWebSocket.
func (c *Client) ConnectTransport(ctx context.Context, transport Transport) error {
	connCtx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	if c.transport != nil {
		c.mu.Unlock()
		cancel()
		return ErrAlreadyConnected
	}
	c.transport = transport
	c.connCtx = connCtx
	c.cancel = cancel
	c.pending = make(map[string]chan *Response)
	c.versionCh = make(chan int, 1)
	c.mu.Unlock()

	c.store.reset()
	c.progress.reset()

	go c.readLoop(connCtx, transport)

	if err := c.handshake(ctx); err != nil {
		c.Disconnect()
		return err
	}

	c.mu.Lock()
	c.running = true
	c.versionCh = nil
	c.mu.Unlock()

	c.connListeners.notify(func(l ConnectionStateListener) {
		l.OnConnectionStateChanged(true)
	})

	// Prime the snapshots with the server's current state. Best effort: a
	// failure here surfaces through later calls, not through Connect.
	_, _ = c.UpdateServerState(ctx)

	return nil
}

// handshake verifies the server's protocol version and switches the session
// to RequiredVersion.
func (c *Client) handshake(ctx context.Context) error {
	// The bare version probe predates the id extension, so its reply cannot
	// be correlated. The dispatcher signals versionCh once it has observed a
	// reported version.
	c.mu.Lock()
	versionCh := c.versionCh
	c.mu.Unlock()

	if err := c.send(ctx, NewVersionProbeRequest()); err != nil {
		return err
	}

	timer := time.NewTimer(c.cfg.handshakeTimeout)
	defer timer.Stop()

	var version int
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrHandshakeTimeout
	case version = <-versionCh:
	}

	if version < RequiredVersion {
		return ErrVersionUnsupported
	}

	resp, err := c.roundTrip(ctx, func(id string) *Request {
		return NewSetVersionRequest(id, RequiredVersion)
	})
	if err != nil {
		return err
	}
	if !resp.IsOK() {
		return newRequestError(resp)
	}
	return nil
}

// Disconnect closes the session. It is idempotent and safe to call at any
// time. Explicit disconnects do not notify connection-state listeners; only
// an unexpected transport loss does.
func (c *Client) Disconnect() {
	c.mu.Lock()
	transport := c.transport
	cancel := c.cancel
	c.transport = nil
	c.connCtx = nil
	c.cancel = nil
	c.running = false
	c.pending = nil
	c.versionCh = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if transport != nil {
		transport.Close()
	}
}

// IsConnected reports whether the session is established and the handshake
// has completed.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// SetScreen reports the active screen geometry to the server.
func (c *Client) SetScreen(ctx context.Context, screen Screen) error {
	resp, err := c.roundTrip(ctx, func(id string) *Request {
		return NewSetScreenRequest(id, screen)
	})
	if err != nil {
		return err
	}
	if !resp.IsOK() {
		return newRequestError(resp)
	}
	return nil
}

// Screen returns the last known screen geometry.
func (c *Client) Screen() Screen {
	return c.store.screen()
}

// Frame returns the most recent gaze frame.
func (c *Client) Frame() GazeData {
	return c.store.frame()
}

// ServerState returns the last known server state without touching the
// wire.
func (c *Client) ServerState() ServerState {
	return c.store.serverState()
}

// UpdateServerState refreshes every snapshot from the server and returns
// the resulting state. The reply also carries the latest frame and
// calibration result, so the corresponding listeners may fire as a side
// effect.
func (c *Client) UpdateServerState(ctx context.Context) (ServerState, error) {
	resp, err := c.roundTrip(ctx, NewTrackerStateRequest)
	if err != nil {
		return ServerState{}, err
	}
	if !resp.IsOK() {
		return ServerState{}, newRequestError(resp)
	}
	return c.store.serverState(), nil
}

// CalibResult returns the last calibration result reported by the server.
func (c *Client) CalibResult() CalibResult {
	return c.store.calibResult()
}

// StartCalibration begins a calibration run with the given number of
// points. Progress is reported to calibration-process handlers as each
// point completes.
func (c *Client) StartCalibration(ctx context.Context, points int) error {
	c.progress.start(points)
	resp, err := c.roundTrip(ctx, func(id string) *Request {
		return NewCalibrationStartRequest(id, points)
	})
	if err != nil {
		return err
	}
	if !resp.IsOK() {
		return newRequestError(resp)
	}
	return nil
}

// StartCalibrationPoint tells the server the user is fixating the
// calibration point at (x, y) in screen coordinates.
func (c *Client) StartCalibrationPoint(ctx context.Context, x, y int) error {
	resp, err := c.roundTrip(ctx, func(id string) *Request {
		return NewCalibrationPointStartRequest(id, x, y)
	})
	if err != nil {
		return err
	}
	if !resp.IsOK() {
		return newRequestError(resp)
	}
	return nil
}

// EndCalibrationPoint marks the current calibration point as sampled.
func (c *Client) EndCalibrationPoint(ctx context.Context) error {
	return c.send(ctx, NewCalibrationPointEndRequest())
}

// AbortCalibration cancels an in-progress calibration run.
func (c *Client) AbortCalibration(ctx context.Context) error {
	return c.send(ctx, NewCalibrationAbortRequest())
}

// ClearCalibration removes the server's stored calibration.
func (c *Client) ClearCalibration(ctx context.Context) error {
	return c.send(ctx, NewCalibrationClearRequest())
}

// CalibrationProgress returns the fraction of calibration points processed
// in the current run, or 0 when no run is active.
func (c *Client) CalibrationProgress() float64 {
	return c.progress.progress()
}

// IsCalibrating reports whether a calibration run started by this client is
// still in progress.
func (c *Client) IsCalibrating() bool {
	return c.progress.calibrating()
}

// AddGazeListener registers l for gaze frames.
func (c *Client) AddGazeListener(l GazeListener) { c.gazeListeners.add(l) }

// RemoveGazeListener unregisters l; removing an unregistered listener is a
// no-op.
func (c *Client) RemoveGazeListener(l GazeListener) { c.gazeListeners.remove(l) }

// AddCalibrationResultListener registers l for calibration results.
func (c *Client) AddCalibrationResultListener(l CalibrationResultListener) {
	c.resultListeners.add(l)
}

// RemoveCalibrationResultListener unregisters l.
func (c *Client) RemoveCalibrationResultListener(l CalibrationResultListener) {
	c.resultListeners.remove(l)
}

// AddTrackerStateListener registers l for tracker and screen changes.
func (c *Client) AddTrackerStateListener(l TrackerStateListener) {
	c.trackerListeners.add(l)
}

// RemoveTrackerStateListener unregisters l.
func (c *Client) RemoveTrackerStateListener(l TrackerStateListener) {
	c.trackerListeners.remove(l)
}

// AddCalibrationProcessHandler registers h for calibration run progress.
func (c *Client) AddCalibrationProcessHandler(h CalibrationProcessHandler) {
	c.processListeners.add(h)
}

// RemoveCalibrationProcessHandler unregisters h.
func (c *Client) RemoveCalibrationProcessHandler(h CalibrationProcessHandler) {
	c.processListeners.remove(h)
}

// AddConnectionStateListener registers l for session establishment and
// loss.
func (c *Client) AddConnectionStateListener(l ConnectionStateListener) {
	c.connListeners.add(l)
}

// RemoveConnectionStateListener unregisters l.
func (c *Client) RemoveConnectionStateListener(l ConnectionStateListener) {
	c.connListeners.remove(l)
}

// roundTrip sends a correlated request and blocks until the dispatcher has
// processed its reply. The reply's side effects on the snapshot store are
// applied before roundTrip returns.
func (c *Client) roundTrip(ctx context.Context, build func(id string) *Request) (*Response, error) {
	id := uuid.New().String()
	ch := make(chan *Response, 1)

	c.mu.Lock()
	if c.transport == nil {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	connCtx := c.connCtx
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.pending != nil {
			delete(c.pending, id)
		}
		c.mu.Unlock()
	}()

	if err := c.send(ctx, build(id)); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-connCtx.Done():
		return nil, ErrClosed
	case resp := <-ch:
		return resp, nil
	}
}

// send transmits a request without waiting for any reply.
func (c *Client) send(ctx context.Context, req *Request) error {
	c.mu.Lock()
	transport := c.transport
	c.mu.Unlock()

	if transport == nil {
		return ErrNotConnected
	}

	if c.cfg.onSend != nil {
		c.cfg.onSend(req)
	}
	if c.cfg.logger != nil {
		c.cfg.logger.Debug("sending request",
			slog.String("category", req.Category),
			slog.String("request", req.Request),
			slog.String("id", req.ID),
		)
	}

	return transport.Send(ctx, req)
}

// readLoop receives messages from the transport and drives the dispatcher.
// Listener callbacks run on this goroutine.
func (c *Client) readLoop(ctx context.Context, transport Transport) {
	for {
		resp, err := transport.Receive(ctx)
		if err != nil {
			c.handleDisconnect(transport)
			return
		}

		if c.cfg.onReceive != nil {
			c.cfg.onReceive(resp)
		}
		if c.cfg.logger != nil {
			c.cfg.logger.Debug("received message",
				slog.String("category", resp.Category),
				slog.String("request", resp.Request),
				slog.Int("statuscode", resp.Status()),
			)
		}

		c.dispatch(ctx, resp)
	}
}

// handleDisconnect runs when the transport fails underneath the session. An
// explicit Disconnect has already detached the transport and is not
// reported; an unexpected loss is reported to connection-state listeners.
// Reconnecting is left to the caller.
func (c *Client) handleDisconnect(transport Transport) {
	c.mu.Lock()
	if c.transport != transport {
		c.mu.Unlock()
		return
	}
	wasRunning := c.running
	c.mu.Unlock()

	c.Disconnect()

	if wasRunning {
		c.connListeners.notify(func(l ConnectionStateListener) {
			l.OnConnectionStateChanged(false)
		})
	}
}
