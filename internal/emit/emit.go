// Package emit streams generated batches to a socket.io collector.
package emit

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/causalfaker/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultTimeout bounds the initial connection handshake.
const DefaultTimeout = 15 * time.Second

// DefaultEvent is the event name used when none is configured.
const DefaultEvent = "batch"

// Payload is the body of one emitted event.
type Payload struct {
	RunID   string      `json:"run_id"`
	Batch   int         `json:"batch"`
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

func (p *Payload) asMap() map[string]any {
	rows := make([]any, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = r
	}
	return map[string]any{
		"run_id":  p.RunID,
		"batch":   p.Batch,
		"columns": p.Columns,
		"rows":    rows,
	}
}

// Options configures a socket.io connection.
type Options struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// SocketIO emits payloads over a connected socket.io client.
type SocketIO struct {
	client *socket.Socket
	event  string
}

// DialSocketIO connects to the collector and waits for the handshake.
func DialSocketIO(ctx context.Context, o Options) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("emitter", "socketio", "url", o.URL)

	parsedURL, err := url.Parse(o.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	switch parsedURL.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q in %s", parsedURL.Scheme, o.URL)
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Event == "" {
		o.Event = DefaultEvent
	}
	if o.Namespace == "" {
		o.Namespace = "/"
	}

	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
	}
	opts := clientOptions(parsedURL.Path, o)

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to collector.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Connection attempt failed.", "error", err)
		connectChan <- err
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIO{client: io, event: o.Event}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(o.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", o.Timeout)
	}
}

// clientOptions builds the manager options for a connection to path.
func clientOptions(path string, o Options) *socket.Options {
	opts := socket.DefaultOptions()
	opts.SetPath(path)
	if o.InsecureSkipVerify {
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))
	return opts
}

// Emit sends one payload as the configured event.
func (s *SocketIO) Emit(ctx context.Context, p *Payload) error {
	if !s.client.Connected() {
		return fmt.Errorf("socket.io client %s is not connected", s.client.Id())
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Emitting batch.", "event", s.event, "batch", p.Batch, "rows", len(p.Rows))
	s.client.Emit(s.event, p.asMap())
	return nil
}

// Close disconnects the client.
func (s *SocketIO) Close() error {
	s.client.Disconnect()
	return nil
}
