package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// UploadFile attaches a binary document to an agent. The platform extracts,
// chunks and embeds the content asynchronously.
func (c *Client) UploadFile(ctx context.Context, agentID, filename string, r io.Reader) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()

		if err := mw.WriteField("botId", agentID); err != nil {
			pw.CloseWithError(err)
			return
		}
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/chatbot/upload"), pr)
	if err != nil {
		return fmt.Errorf("upload file: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("upload file: %w", decodeError(resp))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// UploadText attaches a raw text source to an agent under a display name.
func (c *Client) UploadText(ctx context.Context, agentID, text, name string) error {
	req := struct {
		BotID string `json:"botId"`
		Text  string `json:"text"`
		Name  string `json:"name"`
	}{BotID: agentID, Text: text, Name: name}

	if err := c.postJSON(ctx, "/chatbot/text", req, nil); err != nil {
		return fmt.Errorf("upload text: %w", err)
	}
	return nil
}

// UploadWebsite submits a URL for server-side crawling. The crawl happens
// asynchronously; a successful response only acknowledges the submission.
func (c *Client) UploadWebsite(ctx context.Context, agentID, websiteURL, name string) error {
	req := struct {
		BotID       string `json:"botId"`
		WebsiteLink string `json:"websiteLink"`
		Name        string `json:"name,omitempty"`
	}{BotID: agentID, WebsiteLink: websiteURL, Name: name}

	if err := c.postJSON(ctx, "/chatbot/website", req, nil); err != nil {
		return fmt.Errorf("upload website: %w", err)
	}
	return nil
}

// ListKnowledgeBases returns every knowledge source attached to an agent.
func (c *Client) ListKnowledgeBases(ctx context.Context, agentID string) ([]KnowledgeBase, error) {
	var resp struct {
		KnowledgeBases []KnowledgeBase `json:"knowledgeBases"`
	}
	path := "/knowledgebase/getall?botId=" + url.QueryEscape(agentID)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list knowledge bases: %w", err)
	}
	return resp.KnowledgeBases, nil
}

// KnowledgeBasesByCategory returns an agent's sources of one category
// (FILE, TEXT or WEBSITE).
func (c *Client) KnowledgeBasesByCategory(ctx context.Context, agentID, category string) ([]KnowledgeBase, error) {
	var resp struct {
		KnowledgeBases []KnowledgeBase `json:"knowledgeBases"`
	}
	path := "/knowledgebase/get/" + url.PathEscape(agentID) + "/" + url.PathEscape(category)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list knowledge bases by category: %w", err)
	}
	return resp.KnowledgeBases, nil
}

// DeleteKnowledgeBase removes one knowledge source.
func (c *Client) DeleteKnowledgeBase(ctx context.Context, knowledgeBaseID string) error {
	if err := c.delete(ctx, "/knowledgebase/"+knowledgeBaseID); err != nil {
		return fmt.Errorf("delete knowledge base: %w", err)
	}
	return nil
}
