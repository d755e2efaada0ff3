// Package apiclient talks to the tasks/operations REST backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tasktime/internal/apperr"
)

const (
	ResourceTasks      = "tasks"
	ResourceOperations = "operations"

	// RequestIDHeader is forwarded to the backend on every call.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 512
)

// Method is one of the four verbs the backend understands.
type Method string

const (
	MethodGet    Method = "get"
	MethodPost   Method = "post"
	MethodPatch  Method = "patch"
	MethodDelete Method = "delete"
)

func (m Method) httpMethod() (string, error) {
	switch m {
	case MethodGet:
		return http.MethodGet, nil
	case MethodPost:
		return http.MethodPost, nil
	case MethodPatch:
		return http.MethodPatch, nil
	case MethodDelete:
		return http.MethodDelete, nil
	default:
		return "", fmt.Errorf("unsupported method %q", string(m))
	}
}

// Call describes a single request against one resource. ID scopes the call to
// /<resource>/{id}; Data is JSON encoded as the request body.
type Call struct {
	ID     *int64
	Data   any
	Method Method
}

// Client issues calls against the backend. It never retries and has no
// timeout of its own: deadlines come from the caller's context.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CallTasks performs call against the tasks resource and decodes the response into out.
func (c *Client) CallTasks(ctx context.Context, call Call, out any) error {
	return c.do(ctx, ResourceTasks, call, out)
}

// CallOperations performs call against the operations resource and decodes the response into out.
func (c *Client) CallOperations(ctx context.Context, call Call, out any) error {
	return c.do(ctx, ResourceOperations, call, out)
}

func (c *Client) do(ctx context.Context, resource string, call Call, out any) error {
	method, err := call.Method.httpMethod()
	if err != nil {
		return err
	}

	url := c.baseURL + "/" + resource
	if call.ID != nil {
		url += "/" + strconv.FormatInt(*call.ID, 10)
	}

	var body io.Reader
	if call.Data != nil {
		payload, err := json.Marshal(call.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.NewTransportError(method, url, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperr.NewStatusError(method, url, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.NewDecodeError(url, err)
	}
	return nil
}

type requestIDKey struct{}

// WithRequestID stores id in ctx so outgoing calls reuse it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
