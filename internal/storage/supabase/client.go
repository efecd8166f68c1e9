package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	restPath = "/rest/v1/"
	authPath = "/auth/v1/"

	defaultTimeout = 10 * time.Second
)

// ErrNoRows is returned by single-row queries that matched nothing.
var ErrNoRows = errors.New("supabase: no rows in result set")

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the REST and auth endpoints of a hosted data service.
// A Client built without URL or API key is inert: it never touches the
// network and answers every query with an empty result.
type Client struct {
	baseURL string
	apiKey  string
	bearer  string
	timeout time.Duration
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New returns an anonymous client that authenticates with the API key.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		bearer:  cfg.APIKey,
		timeout: cfg.Timeout,
		http:    http.DefaultClient,
	}

	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewAuthenticated returns a client that sends token as the bearer on every
// request, so row level security sees the signed-in user.
func NewAuthenticated(cfg Config, token string, opts ...Option) *Client {
	c := New(cfg, opts...)
	if token != "" {
		c.bearer = token
	}
	return c
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		params: make(map[string][]string),
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer)
}

// APIError is a non-2xx answer from the REST endpoint.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: status %d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Message)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
		Details *string         `json:"details"`
		Hint    *string         `json:"hint"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}

	apiErr.Code = strings.Trim(string(body.Code), `"`)
	apiErr.Message = body.Message
	if body.Details != nil {
		apiErr.Details = *body.Details
	}
	if body.Hint != nil {
		apiErr.Hint = *body.Hint
	}

	return apiErr
}
