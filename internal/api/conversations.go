package api

import (
	"context"
	"fmt"
)

// ListConversations returns all conversations across the account's agents.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var resp struct {
		Conversations []Conversation `json:"conversations"`
	}
	if err := c.getJSON(ctx, "/conversation/chats/messages", &resp); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return resp.Conversations, nil
}

// ConversationMessages returns the messages of one conversation in order.
func (c *Client) ConversationMessages(ctx context.Context, conversationID string) ([]Message, error) {
	var resp struct {
		Messages []Message `json:"messages"`
	}
	if err := c.getJSON(ctx, "/conversation/chat/message/"+conversationID, &resp); err != nil {
		return nil, fmt.Errorf("conversation messages: %w", err)
	}
	return resp.Messages, nil
}

// CreateConversation starts a fresh conversation with an agent.
func (c *Client) CreateConversation(ctx context.Context, agentID string) (*Conversation, error) {
	req := struct {
		ChatbotID string `json:"chatbotId"`
	}{ChatbotID: agentID}

	var resp struct {
		Conversation Conversation `json:"conversation"`
	}
	if err := c.postJSON(ctx, "/conversation/chat", req, &resp); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &resp.Conversation, nil
}

// DeleteConversation removes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := c.delete(ctx, "/conversation/chat/"+conversationID); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}
