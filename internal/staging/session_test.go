package staging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() DraftAgent {
	return DraftAgent{Name: "New AI Agent", Model: "gpt-4"}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := NewSession(testDefaults(), nil)

	s.Add(NewFileItem("a", "one.pdf", "/tmp/one.pdf", 10))
	s.Add(NewTextItem("b", "notes", "hello"))
	s.Add(NewWebsiteItem("c", "docs", "https://example.com/docs"))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID())
	assert.Equal(t, "b", items[1].ID())
	assert.Equal(t, "c", items[2].ID())
	assert.Equal(t, 3, s.TotalCount())
}

func TestNoDedupByName(t *testing.T) {
	s := NewSession(testDefaults(), nil)

	s.Add(NewTextItem("id-1", "notes", "first"))
	s.Add(NewTextItem("id-2", "notes", "second"))

	assert.Equal(t, 2, s.TotalCount())
}

func TestRemove(t *testing.T) {
	s := NewSession(testDefaults(), nil)
	s.Add(NewTextItem("a", "one", "x"))
	s.Add(NewTextItem("b", "two", "y"))

	s.Remove("a")
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID())

	// Removing an absent id is a no-op, not an error
	s.Remove("nope")
	assert.Equal(t, 1, s.TotalCount())
}

func TestRemoveMany(t *testing.T) {
	s := NewSession(testDefaults(), nil)
	s.Add(NewTextItem("a", "one", "x"))
	s.Add(NewTextItem("b", "two", "y"))
	s.Add(NewTextItem("c", "three", "z"))

	s.RemoveMany([]string{"a", "c"})

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID())
}

func TestClearAllResetsDraft(t *testing.T) {
	s := NewSession(testDefaults(), nil)
	s.SetAgentName("Support Bot")
	s.SetAgentModel("gpt-4o")
	s.Add(NewTextItem("a", "one", "x"))

	s.ClearAll()

	assert.Equal(t, 0, s.TotalCount())
	assert.Equal(t, "New AI Agent", s.Draft().Name)
	assert.Equal(t, "gpt-4", s.Draft().Model)
}

func TestTotalBytesCountsOnlyFiles(t *testing.T) {
	s := NewSession(testDefaults(), nil)
	s.Add(NewFileItem("a", "one.pdf", "/tmp/one.pdf", 2048))
	s.Add(NewFileItem("b", "two.pdf", "/tmp/two.pdf", 1024))
	s.Add(NewTextItem("c", "notes", "some long text body"))

	assert.Equal(t, int64(3072), s.TotalBytes())
}

func TestWriteThroughOnEveryMutation(t *testing.T) {
	var saves []Snapshot
	s := NewSession(testDefaults(), func(snap Snapshot) error {
		saves = append(saves, snap)
		return nil
	})

	s.SetAgentName("Support Bot")
	s.Add(NewTextItem("a", "one", "x"))
	s.Remove("a")
	s.ClearAll()

	require.Len(t, saves, 4)
	assert.Equal(t, "Support Bot", saves[0].Draft.Name)
	require.Len(t, saves[1].Items, 1)
	assert.Empty(t, saves[3].Items)
}

func TestSaverErrorDoesNotBlockMutation(t *testing.T) {
	s := NewSession(testDefaults(), func(Snapshot) error {
		return assert.AnError
	})

	s.Add(NewTextItem("a", "one", "x"))
	assert.Equal(t, 1, s.TotalCount())
}

func TestRestoreFromSnapshot(t *testing.T) {
	snap := Snapshot{
		Draft: DraftAgent{Name: "Resumed", Model: "gpt-4o"},
		Items: []Item{
			NewFileItem("a", "one.pdf", "/tmp/one.pdf", 10),
			NewWebsiteItem("b", "docs", "https://example.com"),
		},
	}

	s := Restore(snap, testDefaults(), nil)

	assert.Equal(t, "Resumed", s.Draft().Name)
	assert.Equal(t, "gpt-4o", s.Draft().Model)
	assert.Equal(t, 2, s.TotalCount())
}

func TestRestoreKeepsBlankDraftName(t *testing.T) {
	snap := Snapshot{Draft: DraftAgent{Name: "", Model: "gpt-4"}}
	s := Restore(snap, testDefaults(), nil)

	// A blanked name is a real state, not an absence; the default must not
	// sneak back in and mask the empty-name validation at commit time.
	assert.Equal(t, "", s.Draft().Name)
	assert.Equal(t, "gpt-4", s.Draft().Model)
}

func TestReplaceFromKeepsBlankDraftName(t *testing.T) {
	s := NewSession(testDefaults(), nil)
	s.Add(NewTextItem("a", "one", "x"))

	s.ReplaceFrom(Snapshot{
		Draft: DraftAgent{Name: "", Model: "gpt-4"},
		Items: []Item{NewTextItem("b", "two", "y")},
	})

	assert.Equal(t, "", s.Draft().Name)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID())
}
