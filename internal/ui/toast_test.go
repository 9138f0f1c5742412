package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateOnRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "héll…", truncate("héllo world", 5))
	assert.Equal(t, "日本語のテ…", truncate("日本語のテキストです", 6))
	assert.Equal(t, "", truncate("anything", 0))

	for _, max := range []int{1, 2, 3, 5, 8} {
		out := truncate("données perdues : détails", max)
		assert.True(t, utf8.ValidString(out), "max=%d", max)
	}
}

func TestToastViewKeepsMultibyteTextValid(t *testing.T) {
	m := NewToastManager(NewStyles())
	m.ShowError("échec du téléversement de données.pdf vers la plateforme")

	view := m.View(20)
	require.NotEmpty(t, view)
	assert.True(t, utf8.ValidString(view))
	assert.True(t, strings.Contains(view, "…"))
}
