// Package gatewayclient talks to a running gateway over its HTTP API.
package gatewayclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rusenback/docker-gateway/internal/model"
)

// StatusError is returned for any non-2xx answer from the gateway
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("gateway returned %d", e.Status)
	}
	return fmt.Sprintf("gateway returned %d: %s", e.Status, e.Detail)
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// IsNotFound returns true if the gateway answered 404
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsUnavailable returns true if the gateway could not reach Docker
func IsUnavailable(err error) bool {
	return StatusOf(err) == http.StatusServiceUnavailable
}

// Client calls the gateway API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the gateway at baseURL, e.g. http://localhost:8000/dockers
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ListContainers returns every container the gateway reports
func (c *Client) ListContainers(ctx context.Context) ([]model.ContainerSummary, error) {
	var out []model.ContainerSummary
	if err := c.do(ctx, http.MethodGet, "/containers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StartContainer starts a container and returns the gateway's confirmation message
func (c *Client) StartContainer(ctx context.Context, id string) (string, error) {
	return c.action(ctx, id, "start")
}

// StopContainer stops a container and returns the gateway's confirmation message
func (c *Client) StopContainer(ctx context.Context, id string) (string, error) {
	return c.action(ctx, id, "stop")
}

// ContainerLogs returns the recent log tail of a container
func (c *Client) ContainerLogs(ctx context.Context, id string) (string, error) {
	var out model.LogTail
	if err := c.do(ctx, http.MethodGet, "/containers/"+url.PathEscape(id)+"/logs", &out); err != nil {
		return "", err
	}
	return out.Logs, nil
}

func (c *Client) action(ctx context.Context, id, verb string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/containers/"+url.PathEscape(id)+"/"+verb, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Detail string `json:"detail"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &body) != nil {
			body.Detail = strings.TrimSpace(string(raw))
		}
		return &StatusError{Status: resp.StatusCode, Detail: body.Detail}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
