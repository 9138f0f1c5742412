package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
		Retry: RetryConfig{
			MaxRetries: 2,
			RetryDelay: time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	})
	return client, srv
}

func TestCreateAgent(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/chatbot/create-chatbot", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Support Bot", body.Name)

		fmt.Fprint(w, `{"chatbot": {"id": "agent-1", "name": "Support Bot"}}`)
	}))

	agent, err := client.CreateAgent(context.Background(), "Support Bot")
	require.NoError(t, err)
	assert.Equal(t, "agent-1", agent.ID)
	assert.Equal(t, "Support Bot", agent.Name)
}

func TestCreateAgentMissingIDFails(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chatbot": {}}`)
	}))

	_, err := client.CreateAgent(context.Background(), "Support Bot")
	assert.ErrorContains(t, err, "no agent id")
}

func TestListAgents(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chatbot/get-chatbots", r.URL.Path)
		fmt.Fprint(w, `{"chatbots": [{"id": "a", "name": "One"}, {"id": "b", "name": "Two"}]}`)
	}))

	agents, err := client.ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "One", agents[0].Name)
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"chatbots": []}`)
	}))

	_, err := client.ListAgents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestMutatingCallsAreNotRetried(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"message": "try later"}`)
	}))

	_, err := client.CreateAgent(context.Background(), "Support Bot")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message": "name already taken"}`)
	}))

	_, err := client.CreateAgent(context.Background(), "Support Bot")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "name already taken", apiErr.Message)
}

func TestUploadFileMultipart(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chatbot/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "agent-1", r.FormValue("botId"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "handbook.pdf", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "pdf bytes", string(content))

		fmt.Fprint(w, `{}`)
	}))

	err := client.UploadFile(context.Background(), "agent-1", "handbook.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
}

func TestUploadText(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chatbot/text", r.URL.Path)

		var body struct {
			BotID string `json:"botId"`
			Text  string `json:"text"`
			Name  string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "agent-1", body.BotID)
		assert.Equal(t, "q and a", body.Text)
		assert.Equal(t, "faq", body.Name)

		fmt.Fprint(w, `{}`)
	}))

	require.NoError(t, client.UploadText(context.Background(), "agent-1", "q and a", "faq"))
}

func TestUploadWebsite(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chatbot/website", r.URL.Path)

		var body struct {
			BotID       string `json:"botId"`
			WebsiteLink string `json:"websiteLink"`
			Name        string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "agent-1", body.BotID)
		assert.Equal(t, "https://example.com/docs", body.WebsiteLink)

		fmt.Fprint(w, `{}`)
	}))

	require.NoError(t, client.UploadWebsite(context.Background(), "agent-1", "https://example.com/docs", "docs"))
}

func TestListKnowledgeBases(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/knowledgebase/getall", r.URL.Path)
		assert.Equal(t, "agent-1", r.URL.Query().Get("botId"))
		fmt.Fprint(w, `{"knowledgeBases": [{"id": "kb-1", "name": "handbook.pdf", "category": "FILE"}]}`)
	}))

	kbs, err := client.ListKnowledgeBases(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, kbs, 1)
	assert.Equal(t, "FILE", kbs[0].Category)
}

func TestStreamQuery(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/agent-1/stream", r.URL.Path)

		fmt.Fprint(w, "data: {\"chunk\": \"Hello\"}\n")
		fmt.Fprint(w, "data: {\"chunk\": \" world\"}\n")
		fmt.Fprint(w, "\n")
		fmt.Fprint(w, "data: {\"done\": true, \"conversationId\": \"conv-9\"}\n")
	}))

	var got string
	var convID string
	err := client.StreamQuery(context.Background(), "agent-1", "hi", "", func(ev StreamEvent) error {
		got += ev.Chunk
		if ev.Done {
			convID = ev.ConversationID
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)
	assert.Equal(t, "conv-9", convID)
}

func TestStreamQueryServerError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"error\": \"agent not ready\"}\n")
	}))

	err := client.StreamQuery(context.Background(), "agent-1", "hi", "", func(StreamEvent) error {
		return nil
	})
	assert.ErrorContains(t, err, "agent not ready")
}

func TestDeleteConversation(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/conversation/chat/conv-1", r.URL.Path)
		fmt.Fprint(w, `{}`)
	}))

	require.NoError(t, client.DeleteConversation(context.Background(), "conv-1"))
}

func TestSummaryQueryParams(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analytics/agent-1/summary", r.URL.Path)
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2026-01-31", r.URL.Query().Get("endDate"))
		fmt.Fprint(w, `{"totalConversations": 12, "totalMessages": 80}`)
	}))

	sum, err := client.Summary(context.Background(), "agent-1", "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 12, sum.TotalConversations)
	assert.Equal(t, 80, sum.TotalMessages)
}

func TestAnalyticsPoints(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analytics/agent-1", r.URL.Path)
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("startDate"))
		fmt.Fprint(w, `{"analytics": [
			{"date": "2026-01-01", "conversations": 3, "messages": 20},
			{"date": "2026-01-02", "conversations": 5, "messages": 41}
		]}`)
	}))

	points, err := client.Analytics(context.Background(), "agent-1", "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2026-01-02", points[1].Date)
	assert.Equal(t, 5, points[1].Conversations)
}

func TestQuery(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/chat/agent-1/query", r.URL.Path)

		var body struct {
			Question       string `json:"question"`
			ConversationID string `json:"conversationId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "what are your hours?", body.Question)
		assert.Equal(t, "conv-1", body.ConversationID)

		fmt.Fprint(w, `{"answer": "9 to 5", "conversationId": "conv-1"}`)
	}))

	resp, err := client.Query(context.Background(), "agent-1", "what are your hours?",
		QueryOptions{ConversationID: "conv-1"})
	require.NoError(t, err)
	assert.Equal(t, "9 to 5", resp.Answer)
	assert.Equal(t, "conv-1", resp.ConversationID)
}

func TestStatus(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/agent-1/status", r.URL.Path)
		fmt.Fprint(w, `{"ready": false, "status": "processing", "message": "still indexing sources"}`)
	}))

	status, err := client.Status(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.False(t, status.Ready)
	assert.Equal(t, "still indexing sources", status.Message)
}

func TestCreateConversation(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/conversation/chat", r.URL.Path)

		var body struct {
			ChatbotID string `json:"chatbotId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "agent-1", body.ChatbotID)

		fmt.Fprint(w, `{"conversation": {"id": "conv-7", "chatbotId": "agent-1"}}`)
	}))

	conv, err := client.CreateConversation(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-7", conv.ID)
}

func TestStreamQueryOutlivesClientTimeout(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)

		fmt.Fprint(w, "data: {\"chunk\": \"slow\"}\n")
		flusher.Flush()
		time.Sleep(150 * time.Millisecond)
		fmt.Fprint(w, "data: {\"chunk\": \" reply\"}\n")
		fmt.Fprint(w, "data: {\"done\": true}\n")
	}))

	// The regular client timeout would cut this stream short
	client.httpClient.Timeout = 50 * time.Millisecond

	var got string
	err := client.StreamQuery(context.Background(), "agent-1", "hi", "", func(ev StreamEvent) error {
		got += ev.Chunk
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "slow reply", got)
}

func TestCalculateBackoffZeroBaseDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), CalculateBackoff(0, 0, 30*time.Second))
	assert.Equal(t, time.Duration(0), CalculateBackoff(0, 5, 30*time.Second))

	// Delays under 4ns have no jitter range either
	assert.Equal(t, time.Duration(3), CalculateBackoff(3, 0, 30*time.Second))
}

func TestNewClientDefaultsEachRetryFieldIndependently(t *testing.T) {
	client := NewClient(Config{
		BaseURL: "http://localhost",
		Retry:   RetryConfig{MaxRetries: 5},
	})

	defaults := DefaultRetryConfig()
	assert.Equal(t, 5, client.retry.MaxRetries)
	assert.Equal(t, defaults.RetryDelay, client.retry.RetryDelay)
	assert.Equal(t, defaults.MaxDelay, client.retry.MaxDelay)
}
