// ABOUTME: HTTP client core for the Sonar-compatible REST API.
// ABOUTME: Handles bearer auth, organization scoping, and error decoding.

package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client errors
var (
	ErrUnauthorized = errors.New("upstream authentication failed")
	ErrNotFound     = errors.New("upstream resource not found")
)

// maxResponseBytes bounds how much of an upstream response is read.
// Raw source files are the largest expected payload.
const maxResponseBytes = 20 << 20

const defaultTimeout = 30 * time.Second

// APIError describes a non-2xx upstream response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// Config holds the connection settings for the upstream platform.
type Config struct {
	URL          string
	Token        string
	Organization string
	Timeout      time.Duration
}

// Client is a thread-safe client for one upstream platform instance.
type Client struct {
	baseURL string
	token   string
	org     string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the given upstream configuration.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("upstream URL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		org:     cfg.Organization,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger.With("component", "upstream"),
	}, nil
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// postForm performs a form-encoded POST and decodes the JSON response into
// out. A nil out discards the body (some write endpoints return 204).
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	data, err := c.do(ctx, http.MethodPost, path, nil, form)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// getText performs a GET request and returns the raw response body.
func (c *Client) getText(ctx context.Context, path string, query url.Values) (string, error) {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Client) do(ctx context.Context, method, path string, query, form url.Values) ([]byte, error) {
	if c.org != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("organization", c.org)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.logger.Debug("upstream request", "method", method, "path", path)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.apiError(resp.StatusCode, data)
	}
	return data, nil
}

// apiError converts a non-2xx response into an error, extracting the
// upstream message when the body follows the {"errors":[{"msg":...}]} shape.
func (c *Client) apiError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status, Message: parseErrorMessage(body)}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
	}
	return apiErr
}

func parseErrorMessage(body []byte) string {
	var parsed struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		msgs := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = "no error detail"
	}
	return msg
}

// setCSV sets a comma-joined query parameter when values is non-empty.
func setCSV(q url.Values, key string, values []string) {
	if len(values) > 0 {
		q.Set(key, strings.Join(values, ","))
	}
}

// setString sets a query parameter when the value is non-empty.
func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// setInt sets a query parameter when the value is positive.
func setInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
