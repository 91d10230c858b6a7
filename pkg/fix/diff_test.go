package fix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/fix"
)

func TestGenerateDiffNoChanges(t *testing.T) {
	t.Parallel()

	d := fix.GenerateDiff("a.md", []byte("# A\n"), []byte("# A\n"))
	assert.Nil(t, d)
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.FullString())
}

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	d := fix.GenerateDiff("/docs/a.md", []byte("#A\nbody  \n"), []byte("# A\nbody\n"))
	require.NotNil(t, d)

	assert.Equal(t, "docs/a.md", d.Path)
	assert.Equal(t, 2, d.Additions)
	assert.Equal(t, 2, d.Deletions)
	assert.True(t, d.HasChanges())

	full := d.FullString()
	assert.True(t, strings.HasPrefix(full, "diff --git a/docs/a.md b/docs/a.md\n"))
	assert.Contains(t, full, "--- a/docs/a.md")
	assert.Contains(t, full, "+++ b/docs/a.md")
	assert.Contains(t, full, "-#A\n")
	assert.Contains(t, full, "+# A\n")
	assert.Equal(t, 1, strings.Count(full, "diff "))
}

func TestGenerateDiff_ThematicBreakLines(t *testing.T) {
	t.Parallel()

	d := fix.GenerateDiff("a.md", []byte("a\n---\n+++\n"), []byte("a\n"))
	require.NotNil(t, d)
	assert.Equal(t, 0, d.Additions)
	assert.Equal(t, 2, d.Deletions)
	assert.Contains(t, d.String(), "\n----\n")
}
