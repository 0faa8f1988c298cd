package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/infrastructure/storage"
)

const defaultTimeout = 30 * time.Second

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	TokenKey string
}

// Client is the single outbound HTTP boundary. Every request carries the
// persisted bearer credential when present; every 401 answer fires the
// unauthorized hook so the session layer can start re-authentication.
// The hook runs before the 401 error reaches the caller, the same order a
// response interceptor runs in; any state the caller persisted before
// issuing the request is already durable by then.
type Client struct {
	base *url.URL
	http *http.Client

	mu             sync.RWMutex
	onUnauthorized func(ctx context.Context)
	reauthActive   atomic.Bool
}

func NewClient(cfg Config, store storage.Store) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "invalid base URL %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var rt http.RoundTripper = http.DefaultTransport
	rt = &bearerRoundTripper{next: rt, store: store, tokenKey: cfg.TokenKey}
	rt = &requestIDRoundTripper{next: rt}
	rt = &metricsRoundTripper{next: rt}
	rt = &loggingRoundTripper{next: rt}
	rt = &tracingRoundTripper{next: rt}

	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout, Transport: rt},
	}, nil
}

// SetUnauthorizedHook installs the reactive re-authentication callback.
// The hook fires at most once per 401 response; 401 answers received
// while the hook is still running (including ones provoked by requests
// the hook itself issues) do not fire it again.
func (c *Client) SetUnauthorizedHook(hook func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = hook
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// GetBytes fetches a raw document (e.g. a prescription PDF).
func (c *Client) GetBytes(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, nil), nil)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to build GET %s", path)
	}
	data, _, err := c.execute(req)
	return data, err
}

// PostMultipart uploads a single file field (e.g. an avatar image).
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, content []byte, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to build multipart body")
	}
	if _, err := part.Write(content); err != nil {
		return pkgerrors.Wrap(err, "failed to write multipart content")
	}
	if err := writer.Close(); err != nil {
		return pkgerrors.Wrap(err, "failed to finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to build POST %s", path)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	data, _, err := c.execute(req)
	if err != nil {
		return err
	}
	return decode(data, out, path)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to encode %s %s body", method, path)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	data, _, err := c.execute(req)
	if err != nil {
		return err
	}
	return decode(data, out, path)
}

func (c *Client) execute(req *http.Request) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, pkgerrors.Wrapf(err, "%s %s failed", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, pkgerrors.Wrapf(err, "failed to read %s %s response", req.Method, req.URL.Path)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.notifyUnauthorized(req.Context())
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, resp.StatusCode, &APIError{
			Status: resp.StatusCode,
			Method: req.Method,
			Path:   req.URL.Path,
			Body:   data,
		}
	}
	return data, resp.StatusCode, nil
}

func (c *Client) notifyUnauthorized(ctx context.Context) {
	c.mu.RLock()
	hook := c.onUnauthorized
	c.mu.RUnlock()
	if hook == nil {
		return
	}
	// The hook's own requests go through this client; a 401 on one of
	// them must not start another handshake.
	if !c.reauthActive.CompareAndSwap(false, true) {
		return
	}
	defer c.reauthActive.Store(false)
	log.Info("backend rejected credentials, starting re-authentication")
	hook(ctx)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func decode(data []byte, out any, path string) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return pkgerrors.Wrapf(err, "failed to decode %s response", path)
	}
	return nil
}
