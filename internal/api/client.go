// Package api is the typed client for the shopping-list REST backend.
// Each wrapper method maps 1:1 to an endpoint; there are no retries,
// no caching and no pagination. Cross-cutting concerns (bearer token,
// 401 handling, the in-flight gauge, request ids) live in the
// transport chain, see transport.go.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	epLogin         = "/auth/login"
	epRegister      = "/auth/register"
	epDeleteAccount = "/api/account/delete"
	epProducts      = "/api/products"
	epCategories    = "/api/categories"
	epLists         = "/api/shopping-lists"
)

// genericErrorMessage is shown when the server response carries no
// usable message (network failure, 5xx, empty body).
const genericErrorMessage = "Something went wrong. Please try again."

// Error is a normalized HTTP failure. Status is 0 when the request
// never produced a response (transport failure).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// normalizeError extracts a human-readable message from an error
// response body: a message array is joined with ", ", a single string
// passes through, anything else falls back to the generic message.
func normalizeError(status int, body []byte) *Error {
	e := &Error{Status: status, Message: genericErrorMessage}
	if len(body) == 0 {
		return e
	}

	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Message) == 0 {
		return e
	}

	var many []string
	if err := json.Unmarshal(envelope.Message, &many); err == nil {
		if len(many) > 0 {
			e.Message = strings.Join(many, ", ")
		}
		return e
	}

	var one string
	if err := json.Unmarshal(envelope.Message, &one); err == nil && one != "" {
		e.Message = one
	}
	return e
}

// Session is what the transport needs from the auth session holder:
// the current token for outgoing requests, and a way to tear the
// session down when the server answers 401.
type Session interface {
	Token() string
	Invalidate()
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client issues requests against the backend. Construct it with New,
// then BindSession once the session holder exists; until then requests
// go out without a bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	gauge      *Gauge
	auth       *authTransport
}

func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	gauge := NewGauge()
	auth := &authTransport{next: http.DefaultTransport}
	chain := &loadingTransport{
		gauge: gauge,
		next:  &requestIDTransport{next: auth},
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: chain},
		gauge:      gauge,
		auth:       auth,
	}
}

// BindSession attaches the session holder. Wire-up is two-phase
// because the session needs the client for login while the transport
// needs the session for tokens.
func (c *Client) BindSession(s Session) {
	c.auth.setSession(s)
}

// Gauge returns the in-flight request gauge shared by all requests
// issued through this client.
func (c *Client) Gauge() *Gauge {
	return c.gauge
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodDelete, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: genericErrorMessage}
	}
	defer res.Body.Close()

	resBody, _ := io.ReadAll(res.Body)

	if res.StatusCode >= 400 {
		return normalizeError(res.StatusCode, resBody)
	}

	if result != nil && len(resBody) > 0 {
		if err := json.Unmarshal(resBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
