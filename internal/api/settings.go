package api

import (
	"context"
	"fmt"
)

// GetSettings returns the chatbot settings for an agent.
func (c *Client) GetSettings(ctx context.Context, agentID string) (*Settings, error) {
	var resp Settings
	if err := c.getJSON(ctx, "/settings/"+agentID, &resp); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &resp, nil
}

// UpdateSettings applies a partial settings update; zero-valued fields are
// omitted from the request and left untouched server-side.
func (c *Client) UpdateSettings(ctx context.Context, agentID string, settings Settings) (*Settings, error) {
	var resp Settings
	if err := c.putJSON(ctx, "/settings/"+agentID, settings, &resp); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &resp, nil
}

// ResetSettings restores an agent's settings to platform defaults.
func (c *Client) ResetSettings(ctx context.Context, agentID string) (*Settings, error) {
	var resp Settings
	if err := c.postJSON(ctx, "/settings/"+agentID+"/reset", nil, &resp); err != nil {
		return nil, fmt.Errorf("reset settings: %w", err)
	}
	return &resp, nil
}
