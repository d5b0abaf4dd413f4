package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/flashquiz/internal/logger"
)

const defaultTimeout = 15 * time.Second

// Client talks to the flashcard REST API. It implements DeckStore and
// CardStore. Calls are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userID     int64
	log        *logger.Logger
}

type Option func(*Client)

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserID sends the caller's id in X-User-ID on every request.
func WithUserID(id int64) Option {
	return func(c *Client) {
		c.userID = id
	}
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.Default().WithPrefix("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type request struct {
	op          string
	resource    string
	method      string
	path        string
	body        io.Reader
	contentType string
}

func jsonRequest(op, resource, method, path string, payload any) (request, error) {
	req := request{op: op, resource: resource, method: method, path: path}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return req, &StoreError{Op: op, Err: err}
		}
		req.body = bytes.NewReader(b)
		req.contentType = "application/json"
	}
	return req, nil
}

// do performs the request and decodes a 2xx JSON body into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	log := logger.FromContext(ctx).WithPrefix("client").WithFields(map[string]any{
		"method": r.method,
		"path":   r.path,
	})

	log.Debug("sending request")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return &StoreError{Op: r.op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.userID > 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(c.userID, 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return &StoreError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr apiError
		message := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			message = apiErr.Error
		}

		if resp.StatusCode == http.StatusNotFound {
			log.Debug("%s not found: %s", r.resource, message)
			return &NotFoundError{Resource: r.resource, Message: message}
		}
		log.Warn("request rejected: status=%d, body=%s", resp.StatusCode, message)
		return &StoreError{Op: r.op, Status: resp.StatusCode, Code: apiErr.Code, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode response: %v", err)
		return &StoreError{Op: r.op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
