// Package publish streams evaluated frames to a socket.io endpoint, where an
// authoring front end can display them live.
package publish

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/foldgraph/internal/ctxlog"
	"github.com/specialistvlad/foldgraph/internal/engine"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultEvent is the event name frames are emitted under.
const DefaultEvent = "frame"

// Config describes the endpoint to publish to.
type Config struct {
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
	// ConnectTimeout bounds the initial handshake.
	ConnectTimeout time.Duration
}

// Message is the payload of one emitted frame.
type Message struct {
	Tick    uint64         `json:"tick"`
	Quality string         `json:"quality"`
	Values  map[string]any `json:"values"`
	Errors  []string       `json:"errors,omitempty"`
}

// NewMessage builds the payload for frame. err is the frame's evaluation
// error, if any; aggregated errors are listed one by one.
func NewMessage(frame engine.Frame, err error) Message {
	msg := Message{
		Tick:    frame.Metadata.Tick,
		Quality: frame.Metadata.Quality.String(),
		Values:  make(map[string]any, len(frame.Values)),
	}
	for name, v := range frame.Values {
		msg.Values[name] = v.Native()
	}

	if err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				msg.Errors = append(msg.Errors, e.Error())
			}
		} else {
			msg.Errors = []string{err.Error()}
		}
		slices.Sort(msg.Errors)
	}
	return msg
}

// Publisher emits frames over one socket.
type Publisher struct {
	event string
	emit  func(event string, args ...any)
	close func()
}

// New returns a Publisher that hands every message to emit. close may be nil.
func New(event string, emit func(event string, args ...any), close func()) *Publisher {
	if event == "" {
		event = DefaultEvent
	}
	return &Publisher{event: event, emit: emit, close: close}
}

// Dial connects to cfg.URL and returns a Publisher bound to the connection.
func Dial(ctx context.Context, cfg Config) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("component", "publish", "url", cfg.URL)
	logger.Info("Connecting publisher...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("publish URL %q must be absolute", cfg.URL)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Publisher connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	io.Connect()

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}

	emit := func(event string, args ...any) { io.Emit(event, args...) }
	closeFn := func() {
		logger.Debug("Disconnecting publisher")
		io.Disconnect()
	}
	return New(cfg.Event, emit, closeFn), nil
}

// Publish emits one frame.
func (p *Publisher) Publish(ctx context.Context, frame engine.Frame, frameErr error) {
	msg := NewMessage(frame, frameErr)
	ctxlog.FromContext(ctx).Debug("Publishing frame.", "event", p.event, "tick", msg.Tick, "values", len(msg.Values))
	p.emit(p.event, msg)
}

// Close disconnects the publisher's socket.
func (p *Publisher) Close() {
	if p.close != nil {
		p.close()
	}
}
