package commit

import (
	"context"
	"io"

	"agentdeck/internal/api"
)

// AgentCreator persists a new agent record on the platform.
type AgentCreator interface {
	CreateAgent(ctx context.Context, name string) (*api.Agent, error)
}

// SourceUploader attaches knowledge sources to an existing agent.
type SourceUploader interface {
	UploadFile(ctx context.Context, agentID, filename string, r io.Reader) error
	UploadText(ctx context.Context, agentID, text, name string) error
	UploadWebsite(ctx context.Context, agentID, websiteURL, name string) error
}

// PlatformAPI is the slice of the remote API the orchestrator needs.
// *api.Client satisfies it.
type PlatformAPI interface {
	AgentCreator
	SourceUploader
}
