package api

import (
	"context"
	"fmt"
)

// CreateAgent persists a new agent record and returns it. The returned
// agent's ID is required by every subsequent knowledge-base call.
func (c *Client) CreateAgent(ctx context.Context, name string) (*Agent, error) {
	req := struct {
		Name string `json:"name"`
	}{Name: name}

	var resp struct {
		Chatbot Agent `json:"chatbot"`
	}
	if err := c.postJSON(ctx, "/chatbot/create-chatbot", req, &resp); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	if resp.Chatbot.ID == "" {
		return nil, fmt.Errorf("create agent: platform returned no agent id")
	}

	return &resp.Chatbot, nil
}

// ListAgents returns all agents owned by the authenticated account.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var resp struct {
		Chatbots []Agent `json:"chatbots"`
	}
	if err := c.getJSON(ctx, "/chatbot/get-chatbots", &resp); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return resp.Chatbots, nil
}

// DeleteAgent removes an agent and all of its server-side state.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	if err := c.delete(ctx, "/chatbot/chatbot/"+agentID); err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	return nil
}
