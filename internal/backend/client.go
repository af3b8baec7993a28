// Package backend talks to the platform's PHP endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultRecordsPath is where list endpoints put their rows.
	DefaultRecordsPath = "records"

	// UserParam carries the operator on every request.
	UserParam = "user"

	maxBodyBytes = 32 << 20
)

// Endpoint is one backend script.
type Endpoint struct {
	Path string
	// RecordsPath is a gjson path to the row array. Empty means "records".
	RecordsPath string
	// Encrypted endpoints exchange {"data": <ciphertext>} bodies.
	Encrypted bool
}

// Options tunes the HTTP transport.
type Options struct {
	Cipher     Cipher
	HTTPClient *http.Client
	Timeout    time.Duration
	// RetryMax applies to list fetches only. Actions are sent once.
	RetryMax int
}

// Client implements list and action calls for every screen.
type Client struct {
	cipher  Cipher
	list    *retryablehttp.Client
	action  *retryablehttp.Client
	session model.Session
}

// NewClient creates a client bound to the session.
func NewClient(session model.Session, opts Options) *Client {
	if opts.Cipher == nil {
		opts.Cipher = Plain{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryMax < 0 {
		opts.RetryMax = 0
	}

	return &Client{
		session: session,
		cipher:  opts.Cipher,
		list:    newRetryClient(opts, opts.RetryMax),
		action:  newRetryClient(opts, 0),
	}
}

func newRetryClient(opts Options, retryMax int) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.Logger = slog.Default()
	rc.RetryMax = retryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if opts.HTTPClient != nil {
		rc.HTTPClient = opts.HTTPClient
	}
	rc.HTTPClient.Timeout = opts.Timeout
	return rc
}

// Session returns the session the client was built with.
func (c *Client) Session() model.Session {
	return c.session
}

// FetchList posts filter params to a list endpoint.
func (c *Client) FetchList(ctx context.Context, ep Endpoint, params map[string]any) (Envelope, error) {
	return c.post(ctx, c.list, ep, params)
}

// PerformAction posts a mutation. It is never retried.
func (c *Client) PerformAction(ctx context.Context, ep Endpoint, params map[string]any) (Envelope, error) {
	return c.post(ctx, c.action, ep, params)
}

func (c *Client) post(ctx context.Context, hc *retryablehttp.Client, ep Endpoint, params map[string]any) (Envelope, error) {
	body, err := c.encodeBody(ep, params)
	if err != nil {
		return Envelope{}, err
	}

	endpointURL := c.url(ep.Path)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpointURL, body)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	slog.Debug("Backend request",
		"endpoint", ep.Path,
		"request_id", requestID,
		"encrypted", ep.Encrypted,
		"params", len(params))

	resp, err := hc.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %s: %v", common.ErrTransport, ep.Path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: reading %s: %v", common.ErrTransport, ep.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Envelope{}, fmt.Errorf("%w: %s returned status %d", common.ErrTransport, ep.Path, resp.StatusCode)
	}

	env, err := c.decodeBody(ep, raw)
	if err != nil {
		return Envelope{}, err
	}

	slog.Debug("Backend response",
		"endpoint", ep.Path,
		"request_id", requestID,
		"status", env.Status,
		"records", len(env.Records))
	return env, nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.session.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) encodeBody(ep Endpoint, params map[string]any) ([]byte, error) {
	payload := make(map[string]any, len(params)+1)
	for k, v := range params {
		payload[k] = v
	}
	if _, ok := payload[UserParam]; !ok && c.session.CurrentUser != "" {
		payload[UserParam] = c.session.CurrentUser
	}

	plain, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}
	if !ep.Encrypted {
		return plain, nil
	}

	sealed, err := c.cipher.Encrypt(plain)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt params: %w", err)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(map[string]string{"data": sealed}); err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}
	return buf.Bytes(), nil
}
