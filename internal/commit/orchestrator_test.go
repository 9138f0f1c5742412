package commit

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdeck/internal/api"
	"agentdeck/internal/staging"
)

// fakePlatform records calls and fails on demand.
type fakePlatform struct {
	mu sync.Mutex

	createErr   error
	createCalls int

	uploads       []string // "kind:name", in completion order
	uploadErrs    map[string]error
	uploadsBefore int // uploads issued before agent creation resolved
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{uploadErrs: map[string]error{}}
}

func (f *fakePlatform) CreateAgent(ctx context.Context, name string) (*api.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &api.Agent{ID: "agent-123", Name: name}, nil
}

func (f *fakePlatform) recordUpload(kind, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createCalls == 0 {
		f.uploadsBefore++
	}
	f.uploads = append(f.uploads, kind+":"+name)
	return f.uploadErrs[name]
}

func (f *fakePlatform) UploadFile(ctx context.Context, agentID, filename string, r io.Reader) error {
	io.Copy(io.Discard, r)
	return f.recordUpload("file", filename)
}

func (f *fakePlatform) UploadText(ctx context.Context, agentID, text, name string) error {
	return f.recordUpload("text", name)
}

func (f *fakePlatform) UploadWebsite(ctx context.Context, agentID, url, name string) error {
	return f.recordUpload("website", name)
}

func (f *fakePlatform) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func defaults() staging.DraftAgent {
	return staging.DraftAgent{Name: "New AI Agent", Model: "gpt-4"}
}

func stagedFile(t *testing.T, id, name string, size int) *staging.FileItem {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	return staging.NewFileItem(id, name, path, int64(size))
}

func TestCommitEmptySessionMakesNoCalls(t *testing.T) {
	platform := newFakePlatform()
	session := staging.NewSession(defaults(), nil)

	_, err := New(platform, Options{}).Commit(context.Background(), session)

	assert.ErrorIs(t, err, ErrNoItems)
	assert.Equal(t, 0, platform.createCalls)
	assert.Equal(t, 0, platform.uploadCount())
	assert.Equal(t, 0, session.TotalCount())
}

func TestCommitEmptyNameMakesNoCalls(t *testing.T) {
	platform := newFakePlatform()
	session := staging.NewSession(defaults(), nil)
	session.SetAgentName("   ")
	session.Add(staging.NewTextItem("a", "faq", "q and a"))

	_, err := New(platform, Options{}).Commit(context.Background(), session)

	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, 0, platform.createCalls)
	assert.Equal(t, 1, session.TotalCount())
}

func TestAgentCreationPrecedesUploads(t *testing.T) {
	platform := newFakePlatform()
	session := staging.NewSession(defaults(), nil)
	for _, id := range []string{"a", "b", "c", "d"} {
		session.Add(staging.NewTextItem(id, "src-"+id, "body"))
	}

	_, err := New(platform, Options{}).Commit(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, 1, platform.createCalls)
	assert.Equal(t, 0, platform.uploadsBefore, "no upload may be issued before agent creation resolves")
}

func TestClearOnFullSuccess(t *testing.T) {
	platform := newFakePlatform()
	session := staging.NewSession(defaults(), nil)
	session.SetAgentName("Support Bot")
	session.Add(staging.NewTextItem("a", "faq", "q and a"))
	session.Add(staging.NewWebsiteItem("b", "docs", "https://example.com/docs"))

	result, err := New(platform, Options{}).Commit(context.Background(), session)

	require.NoError(t, err)
	require.NotNil(t, result.Agent)
	assert.Equal(t, "agent-123", result.Agent.ID)
	assert.Equal(t, 0, session.TotalCount())
	assert.Equal(t, "New AI Agent", session.Draft().Name)
}

func TestPreserveOnAgentCreationFailure(t *testing.T) {
	platform := newFakePlatform()
	platform.createErr = errors.New("upstream down")

	session := staging.NewSession(defaults(), nil)
	session.SetAgentName("Support Bot")
	session.Add(staging.NewTextItem("a", "faq", "q and a"))
	session.Add(staging.NewTextItem("b", "terms", "legal"))

	_, err := New(platform, Options{}).Commit(context.Background(), session)

	require.Error(t, err)
	assert.Equal(t, 0, platform.uploadCount())

	items := session.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID())
	assert.Equal(t, "b", items[1].ID())
	assert.Equal(t, "Support Bot", session.Draft().Name)
}

func TestPartialFailureKeepsFailedStaged(t *testing.T) {
	platform := newFakePlatform()
	platform.uploadErrs["terms"] = errors.New("boom")

	session := staging.NewSession(defaults(), nil)
	session.SetAgentName("Support Bot")
	session.Add(staging.NewTextItem("a", "faq", "q and a"))
	session.Add(staging.NewTextItem("b", "terms", "legal"))
	session.Add(staging.NewWebsiteItem("c", "docs", "https://example.com/docs"))

	result, err := New(platform, Options{}).Commit(context.Background(), session)

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, 1, uploadErr.Failed)
	assert.Equal(t, 3, uploadErr.Total)

	// Agent exists even though one upload failed; no client-side rollback
	require.NotNil(t, result.Agent)

	failed := result.FailedItems()
	require.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].ItemID)

	// Only the failed item stays staged, draft preserved for retry
	items := session.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID())
	assert.Equal(t, "Support Bot", session.Draft().Name)
}

func TestResultsInStagingOrder(t *testing.T) {
	platform := newFakePlatform()
	session := staging.NewSession(defaults(), nil)
	session.Add(staging.NewTextItem("a", "one", "x"))
	session.Add(staging.NewTextItem("b", "two", "y"))
	session.Add(staging.NewTextItem("c", "three", "z"))

	result, err := New(platform, Options{MaxConcurrent: 3}).Commit(context.Background(), session)

	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "a", result.Items[0].ItemID)
	assert.Equal(t, "b", result.Items[1].ItemID)
	assert.Equal(t, "c", result.Items[2].ItemID)
}

func TestFileAndWebsiteScenario(t *testing.T) {
	platform := newFakePlatform()
	session := staging.NewSession(defaults(), nil)
	session.Add(stagedFile(t, "a", "handbook.pdf", 2048))
	session.Add(staging.NewWebsiteItem("b", "https://example.com/docs", "https://example.com/docs"))

	result, err := New(platform, Options{}).Commit(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, 1, platform.createCalls)
	assert.Equal(t, 2, platform.uploadCount())
	assert.Equal(t, 0, platform.uploadsBefore)
	assert.Equal(t, 0, session.TotalCount())
	require.Len(t, result.Items, 2)
	assert.Equal(t, staging.KindFile, result.Items[0].Kind)
	assert.Equal(t, staging.KindWebsite, result.Items[1].Kind)
}

func TestMissingStagedFileReportedPerItem(t *testing.T) {
	platform := newFakePlatform()
	session := staging.NewSession(defaults(), nil)
	session.Add(staging.NewFileItem("a", "gone.pdf", "/nonexistent/gone.pdf", 10))
	session.Add(staging.NewTextItem("b", "faq", "q and a"))

	result, err := New(platform, Options{}).Commit(context.Background(), session)

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	require.Len(t, result.FailedItems(), 1)
	assert.Equal(t, "a", result.FailedItems()[0].ItemID)

	// The vanished file stays staged; the text made it
	items := session.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID())
}

func TestStateTransitions(t *testing.T) {
	platform := newFakePlatform()
	session := staging.NewSession(defaults(), nil)
	session.Add(staging.NewTextItem("a", "faq", "q and a"))

	var states []State
	opts := Options{OnStateChange: func(s State) { states = append(states, s) }}

	_, err := New(platform, opts).Commit(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, []State{StateCreatingAgent, StateUploadingItems, StateDone}, states)
}

func TestOnItemDoneFiresPerItem(t *testing.T) {
	platform := newFakePlatform()
	session := staging.NewSession(defaults(), nil)
	session.Add(staging.NewTextItem("a", "one", "x"))
	session.Add(staging.NewTextItem("b", "two", "y"))

	var mu sync.Mutex
	done := 0
	opts := Options{OnItemDone: func(ItemResult) {
		mu.Lock()
		done++
		mu.Unlock()
	}}

	_, err := New(platform, opts).Commit(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, 2, done)
}
