package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "staging.json"))
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := tempStore(t)

	s := NewSession(testDefaults(), st.Save)
	s.SetAgentName("Support Bot")
	s.Add(NewFileItem("a", "handbook.pdf", "/tmp/handbook.pdf", 2048))
	s.Add(NewTextItem("b", "faq", "q and a"))
	s.Add(NewWebsiteItem("c", "docs", "https://example.com/docs"))

	snap, ok := st.Load()
	require.True(t, ok)
	assert.Equal(t, "Support Bot", snap.Draft.Name)
	require.Len(t, snap.Items, 3)

	file, ok := snap.Items[0].(*FileItem)
	require.True(t, ok)
	assert.Equal(t, "/tmp/handbook.pdf", file.Path)
	assert.Equal(t, int64(2048), file.SizeBytes)

	text, ok := snap.Items[1].(*TextItem)
	require.True(t, ok)
	assert.Equal(t, "q and a", text.Content)

	site, ok := snap.Items[2].(*WebsiteItem)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs", site.URL)
}

func TestLoadMissingFileFailsOpen(t *testing.T) {
	st := tempStore(t)

	snap, ok := st.Load()
	assert.False(t, ok)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Draft.Name)
}

func TestLoadCorruptFileFailsOpen(t *testing.T) {
	st := tempStore(t)
	require.NoError(t, os.WriteFile(st.Path(), []byte("{not json"), 0644))

	snap, ok := st.Load()
	assert.False(t, ok)
	assert.Empty(t, snap.Items)
}

func TestLoadDropsItemWithMissingPayload(t *testing.T) {
	st := tempStore(t)
	// A FILE envelope with no payload plus a valid TEXT item
	raw := `{
	  "draft": {"name": "x", "model": "gpt-4"},
	  "items": [
	    {"kind": "FILE"},
	    {"kind": "TEXT", "text": {"id": "b", "name": "faq", "staged_at": "2026-01-01T00:00:00Z", "content": "hi"}}
	  ]
	}`
	require.NoError(t, os.WriteFile(st.Path(), []byte(raw), 0644))

	snap, ok := st.Load()
	require.True(t, ok)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, KindText, snap.Items[0].Kind())
}

func TestClear(t *testing.T) {
	st := tempStore(t)
	require.NoError(t, st.Save(Snapshot{Draft: testDefaults()}))

	require.NoError(t, st.Clear())
	_, err := os.Stat(st.Path())
	assert.True(t, os.IsNotExist(err))

	// Clearing an absent snapshot is fine
	require.NoError(t, st.Clear())
}
