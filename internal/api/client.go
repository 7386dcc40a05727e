// Package api is the HTTP client for the Gestione Palchi REST backend.
//
// It centralizes bearer-token injection, the per-call timeout, and the
// mapping from HTTP status codes to the client error taxonomy. A 401 tears
// down the session as a side effect before the error reaches the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"palchi-cli/internal/session"
)

const defaultTimeout = 30 * time.Second

// Client issues calls against the versioned API base path.
type Client struct {
	base    string
	httpc   *http.Client
	timeout time.Duration
	log     *zap.Logger

	// busy toggles the UI's global busy indicator. Background calls
	// (reports and other secondary loads) skip it.
	busy func(delta int)

	// session, when set, is cleared on 401 together with the in-memory
	// token. onAuthExpired lets the owner drop its in-memory user too.
	session       *session.Store
	onAuthExpired func()

	mu    sync.Mutex
	token string
}

type Option func(*Client)

// WithTimeout overrides the fixed per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSessionStore wires the persisted session that a 401 must clear.
func WithSessionStore(s *session.Store) Option {
	return func(c *Client) { c.session = s }
}

// WithBusyFunc wires the global busy indicator hook.
func WithBusyFunc(fn func(delta int)) Option {
	return func(c *Client) { c.busy = fn }
}

// WithAuthExpiredFunc wires the in-memory session teardown callback.
func WithAuthExpiredFunc(fn func()) Option {
	return func(c *Client) { c.onAuthExpired = fn }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New builds a client for the given API base URL (e.g. ".../api/v1").
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(base, "/"),
		timeout: defaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// The transport-level timeout stays off; the per-call context deadline
	// is the one source of truth so timeouts are distinguishable.
	c.httpc = &http.Client{}
	return c
}

// SetToken installs the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current in-memory bearer token ("" when anonymous).
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

type callOpts struct {
	query      url.Values
	body       any
	out        any
	background bool
	noAuth     bool
}

// call performs one request and maps the outcome onto the error taxonomy.
func (c *Client) call(ctx context.Context, method, path string, opt callOpts) error {
	if !opt.background && c.busy != nil {
		c.busy(1)
		defer c.busy(-1)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.base + path
	if len(opt.query) > 0 {
		u += "?" + opt.query.Encode()
	}

	var bodyReader io.Reader
	if opt.body != nil {
		b, err := json.Marshal(opt.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if opt.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !opt.noAuth {
		if tok := c.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return c.mapTransportError(method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if opt.out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(opt.out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return c.mapStatusError(method, path, resp)
}

func (c *Client) mapTransportError(method, path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		c.log.Warn("request expired", zap.String("method", method), zap.String("path", path))
		return &Error{Kind: KindTimeout, Message: msgTimeout}
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		c.log.Warn("request expired", zap.String("method", method), zap.String("path", path))
		return &Error{Kind: KindTimeout, Message: msgTimeout}
	}
	c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
	return &Error{Kind: KindGeneric, Message: msgNetwork}
}

func (c *Client) mapStatusError(method, path string, resp *http.Response) error {
	// Bounded read: error bodies are small, and a huge body must not stall
	// the error path.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.expireSession()
		return &Error{Kind: KindAuthExpired, StatusCode: resp.StatusCode, Message: msgAuthExpired}

	case resp.StatusCode == http.StatusForbidden:
		return &Error{Kind: KindForbidden, StatusCode: resp.StatusCode, Message: msgForbidden}

	case resp.StatusCode >= 500:
		// Backend detail is logged but never surfaced.
		c.log.Error("server error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: msgServer}
	}

	msg, err := decodeErrorMessage(body)
	if err != nil {
		c.log.Warn("unparseable error body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		msg = msgGeneric
	}
	return &Error{Kind: KindGeneric, StatusCode: resp.StatusCode, Message: msg}
}

// expireSession clears every trace of the session: in-memory token, persisted
// token, and (via callback) the owner's in-memory user. Callers receiving the
// resulting AuthExpired error must not retry.
func (c *Client) expireSession() {
	c.SetToken("")
	if c.session != nil {
		_ = c.session.Clear()
	}
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}
