package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Query sends a playground question to an agent and waits for the full reply.
func (c *Client) Query(ctx context.Context, agentID, question string, opts QueryOptions) (*ChatResponse, error) {
	req := struct {
		Question string `json:"question"`
		QueryOptions
	}{Question: question, QueryOptions: opts}

	var resp ChatResponse
	if err := c.postJSON(ctx, "/chat/"+agentID+"/query", req, &resp); err != nil {
		return nil, fmt.Errorf("chat query: %w", err)
	}
	return &resp, nil
}

// StreamEvent is one event from a streaming chat response.
type StreamEvent struct {
	Chunk          string `json:"chunk,omitempty"`
	Done           bool   `json:"done,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	Error          string `json:"error,omitempty"`
}

// StreamHandler receives streaming chat events as they arrive. Returning an
// error aborts the stream.
type StreamHandler func(ev StreamEvent) error

// StreamQuery sends a playground question and streams the reply. Events are
// newline-delimited "data: " frames carrying a chunk, a final done marker with
// the conversation id, or an error.
func (c *Client) StreamQuery(ctx context.Context, agentID, question, conversationID string, handler StreamHandler) error {
	payload := struct {
		Question       string `json:"question"`
		ConversationID string `json:"conversationId,omitempty"`
	}{Question: question, ConversationID: conversationID}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("chat stream: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/chat/"+agentID+"/stream"), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("chat stream: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("chat stream: %w", decodeError(resp))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var ev StreamEvent
		if err := json.Unmarshal([]byte(line[len("data: "):]), &ev); err != nil {
			// Skip malformed frames rather than killing the stream
			continue
		}

		if ev.Error != "" {
			return fmt.Errorf("chat stream: %s", ev.Error)
		}

		if err := handler(ev); err != nil {
			return err
		}

		if ev.Done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("chat stream: %w", err)
	}
	return nil
}

// Status reports whether an agent has finished processing its sources and is
// ready to answer.
func (c *Client) Status(ctx context.Context, agentID string) (*ChatStatus, error) {
	var resp ChatStatus
	if err := c.getJSON(ctx, "/chat/"+agentID+"/status", &resp); err != nil {
		return nil, fmt.Errorf("chat status: %w", err)
	}
	return &resp, nil
}
