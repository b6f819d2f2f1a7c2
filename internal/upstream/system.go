// ABOUTME: System health, status, and ping endpoints.

package upstream

import "context"

// Health returns the upstream health verdict (GREEN, YELLOW, or RED).
func (c *Client) Health(ctx context.Context) (*SystemHealth, error) {
	var result SystemHealth
	if err := c.getJSON(ctx, "/api/system/health", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Status returns the upstream lifecycle status and version.
func (c *Client) Status(ctx context.Context) (*SystemStatus, error) {
	var result SystemStatus
	if err := c.getJSON(ctx, "/api/system/status", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks upstream liveness. The endpoint answers with the literal
// string "pong".
func (c *Client) Ping(ctx context.Context) (string, error) {
	return c.getText(ctx, "/api/system/ping", nil)
}
