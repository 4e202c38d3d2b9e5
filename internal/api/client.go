package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ticketly-gateway/internal/auth"
	"ticketly-gateway/internal/logger"
)

// TokenSource yields a bearer token for authenticated calls. The auth
// manager implements it; tests use a literal.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token, used by the gateway to forward the
// caller's own Authorization header.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", auth.ErrAuthRequired
	}
	return string(t), nil
}

// Client is the typed REST client for the marketplace backend. All
// methods take a context and return normalized errors: transport failures
// wrap the cause, non-2xx responses become *HTTPError.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	logger  *logger.Logger
}

func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		tokens:  tokens,
		logger:  log,
	}
}

// WithTokenSource returns a copy of the client bound to a different token
// source. The gateway uses this per request.
func (c *Client) WithTokenSource(tokens TokenSource) *Client {
	clone := *c
	clone.tokens = tokens
	return &clone
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authed bool) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		if c.tokens == nil {
			return auth.ErrAuthRequired
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("API", fmt.Sprintf("%s %s failed: %v", method, path, err))
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.LogAPI(method, path, resp.Status, time.Since(start).Round(time.Millisecond).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// collection decodes either a bare JSON array or an {items: [...]}
// envelope; the backend serves both shapes.
type collection[T any] struct {
	items []T
}

func (c *collection[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &c.items)
	}
	var envelope struct {
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	c.items = envelope.Items
	return nil
}

func getCollection[T any](ctx context.Context, c *Client, path string, query url.Values, authed bool) ([]T, error) {
	var coll collection[T]
	if err := c.do(ctx, http.MethodGet, path, query, nil, &coll, authed); err != nil {
		return nil, err
	}
	return coll.items, nil
}
