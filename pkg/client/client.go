package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cbodonnell/digipet/pkg/digipet"
	"github.com/cbodonnell/digipet/pkg/messages"
)

// DefaultTimeout is used when no http.Client is given.
const DefaultTimeout = 10 * time.Second

// Client calls a digipet API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the server at baseURL.
// A nil httpClient gets a client with DefaultTimeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Digipet fetches the current digipet.
func (c *Client) Digipet(ctx context.Context) (*messages.Response, error) {
	response := &messages.Response{}
	if err := c.get(ctx, "/digipet", response); err != nil {
		return nil, err
	}
	return response, nil
}

// Do performs action on the server.
func (c *Client) Do(ctx context.Context, action digipet.Action) (*messages.Response, error) {
	response := &messages.Response{}
	if err := c.get(ctx, "/digipet/"+url.PathEscape(string(action)), response); err != nil {
		return nil, err
	}
	return response, nil
}

// History fetches up to limit journal events, newest first.
func (c *Client) History(ctx context.Context, limit int) ([]*messages.Event, error) {
	var events []*messages.Event
	if err := c.get(ctx, "/digipet/history?limit="+strconv.Itoa(limit), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Health checks that the server is up and returns its version.
func (c *Client) Health(ctx context.Context) (*messages.Health, error) {
	health := &messages.Health{}
	if err := c.get(ctx, "/healthz", health); err != nil {
		return nil, err
	}
	return health, nil
}

func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}

// StatusError is returned when the server answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
