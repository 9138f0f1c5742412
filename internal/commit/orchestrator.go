// Package commit turns a staging session into a persisted agent plus its
// knowledge-base entries: one create-agent call, then a concurrent fan-out of
// one upload per staged item, then cleanup of whatever succeeded.
package commit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"agentdeck/internal/api"
	"agentdeck/internal/logging"
	"agentdeck/internal/staging"
)

// State tracks a single commit attempt.
type State int

const (
	StateIdle State = iota
	StateCreatingAgent
	StateUploadingItems
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCreatingAgent:
		return "creating agent"
	case StateUploadingItems:
		return "uploading sources"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Validation errors, detected before any network call.
var (
	ErrNoItems   = errors.New("stage at least one knowledge source before creating the agent")
	ErrEmptyName = errors.New("give the agent a name before creating it")
)

// UploadError reports a partial upload failure: the agent was created but
// some sources did not make it.
type UploadError struct {
	Failed int
	Total  int
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%d of %d sources failed to upload", e.Failed, e.Total)
}

// ItemResult is the outcome of one staged item's upload.
type ItemResult struct {
	ItemID string
	Name   string
	Kind   staging.Kind
	Err    error
}

// Result is the outcome of a commit attempt. Agent is set as soon as agent
// creation succeeds, even when uploads later fail.
type Result struct {
	Agent *api.Agent
	Items []ItemResult
}

// FailedItems returns the per-item results that errored.
func (r *Result) FailedItems() []ItemResult {
	var failed []ItemResult
	for _, it := range r.Items {
		if it.Err != nil {
			failed = append(failed, it)
		}
	}
	return failed
}

// Options configures an Orchestrator.
type Options struct {
	// MaxConcurrent bounds the upload fan-out (default 4).
	MaxConcurrent int

	// OnStateChange, if set, is called on every state transition.
	OnStateChange func(State)

	// OnItemDone, if set, is called as each upload settles, in completion
	// order. Completion order is not staging order.
	OnItemDone func(ItemResult)
}

// Orchestrator runs the commit protocol against the platform API.
type Orchestrator struct {
	platform PlatformAPI
	opts     Options
}

// New creates a commit orchestrator.
func New(platform PlatformAPI, opts Options) *Orchestrator {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	return &Orchestrator{platform: platform, opts: opts}
}

func (o *Orchestrator) setState(s State) {
	if o.opts.OnStateChange != nil {
		o.opts.OnStateChange(s)
	}
}

// Commit creates the agent, fans out one upload per staged item, waits for
// every upload to settle, then removes the successfully uploaded items from
// the session. When everything succeeded the session is fully cleared (draft
// reset to defaults); failed items stay staged so the user can retry. If
// agent creation itself fails the session is left untouched.
//
// The created agent is never rolled back client-side: a partial upload leaves
// the agent on the platform with whatever sources made it.
func (o *Orchestrator) Commit(ctx context.Context, session *staging.Session) (*Result, error) {
	items := session.Items()
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	draft := session.Draft()
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrEmptyName
	}

	o.setState(StateCreatingAgent)
	agent, err := o.platform.CreateAgent(ctx, draft.Name)
	if err != nil {
		o.setState(StateFailed)
		logging.Error("agent creation failed", "name", draft.Name, "error", err)
		return nil, fmt.Errorf("create agent: %w", err)
	}
	logging.Info("agent created", "agent_id", agent.ID, "name", agent.Name)

	o.setState(StateUploadingItems)
	result := &Result{
		Agent: agent,
		Items: o.uploadAll(ctx, agent.ID, items),
	}

	var succeeded []string
	failed := 0
	for _, it := range result.Items {
		if it.Err == nil {
			succeeded = append(succeeded, it.ItemID)
		} else {
			failed++
			logging.Warn("source upload failed",
				"item_id", it.ItemID,
				"name", it.Name,
				"kind", it.Kind,
				"error", it.Err)
		}
	}

	// Cleanup happens exactly once, at the very end, and only for what
	// actually made it to the platform.
	if failed == 0 {
		session.ClearAll()
		o.setState(StateDone)
		return result, nil
	}

	session.RemoveMany(succeeded)
	o.setState(StateDone)
	return result, &UploadError{Failed: failed, Total: len(items)}
}

// uploadAll issues one upload per item concurrently and waits for all of them
// to settle. Results are returned in staging order regardless of completion
// order.
func (o *Orchestrator) uploadAll(ctx context.Context, agentID string, items []staging.Item) []ItemResult {
	results := make([]ItemResult, len(items))
	semaphore := make(chan struct{}, o.opts.MaxConcurrent)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item staging.Item) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			res := ItemResult{
				ItemID: item.ID(),
				Name:   item.Name(),
				Kind:   item.Kind(),
				Err:    o.uploadOne(ctx, agentID, item),
			}
			results[i] = res

			if o.opts.OnItemDone != nil {
				o.opts.OnItemDone(res)
			}
		}(i, item)
	}

	wg.Wait()
	return results
}

func (o *Orchestrator) uploadOne(ctx context.Context, agentID string, item staging.Item) error {
	switch it := item.(type) {
	case *staging.FileItem:
		f, err := os.Open(it.Path)
		if err != nil {
			return fmt.Errorf("open staged file: %w", err)
		}
		defer f.Close()
		return o.platform.UploadFile(ctx, agentID, it.Name(), f)

	case *staging.TextItem:
		return o.platform.UploadText(ctx, agentID, it.Content, it.Name())

	case *staging.WebsiteItem:
		return o.platform.UploadWebsite(ctx, agentID, it.URL, it.Name())

	default:
		return fmt.Errorf("unknown item type %T", item)
	}
}
