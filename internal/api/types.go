package api

import "time"

// Agent is a configured chatbot instance on the platform.
type Agent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// KnowledgeBase is one knowledge source attached to an agent.
type KnowledgeBase struct {
	ID        string    `json:"id"`
	BotID     string    `json:"botId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"` // FILE, TEXT or WEBSITE
	SizeBytes int64     `json:"size,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Conversation is a chat thread between an end user and an agent.
type Conversation struct {
	ID            string    `json:"id"`
	ChatbotID     string    `json:"chatbotId"`
	Title         string    `json:"title,omitempty"`
	MessageCount  int       `json:"messageCount,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	LastMessageAt time.Time `json:"lastMessageAt,omitempty"`
}

// Message is one turn in a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Role           string    `json:"role"` // user or assistant
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// Settings holds per-agent chatbot settings.
type Settings struct {
	PrimaryColor       string  `json:"primaryColor,omitempty"`
	FontFamily         string  `json:"fontFamily,omitempty"`
	PlaceholderMessage string  `json:"placeholderMessage,omitempty"`
	WelcomeMessage     string  `json:"welcomeMessage,omitempty"`
	WidgetPosition     string  `json:"widgetPosition,omitempty"`
	MaxContextLength   int     `json:"maxContextLength,omitempty"`
	Temperature        float64 `json:"temperature,omitempty"`
	ModelName          string  `json:"modelName,omitempty"`
	BrandingEnabled    bool    `json:"brandingEnabled,omitempty"`
	SystemPrompt       string  `json:"systemPrompt,omitempty"`
}

// ChatResponse is the reply to a non-streaming playground query.
type ChatResponse struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversationId"`
}

// ChatStatus reports whether an agent is ready to answer.
type ChatStatus struct {
	Ready   bool   `json:"ready"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// QueryOptions are optional parameters for a playground query.
type QueryOptions struct {
	ConversationID string  `json:"conversationId,omitempty"`
	SystemPrompt   string  `json:"systemPrompt,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	MaxTokens      int     `json:"maxTokens,omitempty"`
}

// AnalyticsPoint is one bucket in an analytics range query.
type AnalyticsPoint struct {
	Date          string `json:"date"`
	Conversations int    `json:"conversations"`
	Messages      int    `json:"messages"`
}

// AnalyticsSummary aggregates activity for an agent over a date window.
type AnalyticsSummary struct {
	TotalConversations int     `json:"totalConversations"`
	TotalMessages      int     `json:"totalMessages"`
	AvgMessagesPerConv float64 `json:"avgMessagesPerConversation"`
	UniqueUsers        int     `json:"uniqueUsers,omitempty"`
}
