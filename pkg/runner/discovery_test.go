package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// makeTree creates the given relative files under a new temp dir.
func makeTree(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# Test\n"), 0o600))
	}
	return dir
}

func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := []string{
		"readme.md",
		"CHANGELOG.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/deep/nested.md",
		"vendor/pkg/doc.md",
		".hidden/secret.md",
		".draft.md",
		"src/main.go",
		"notes.txt",
		"page.mdx",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			want: []string{
				"CHANGELOG.md", "docs/api.markdown", "docs/deep/nested.md",
				"docs/guide.md", "readme.md", "vendor/pkg/doc.md",
			},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".mdx", ".TXT"}},
			want: []string{"notes.txt", "page.mdx"},
		},
		{
			name: "exclude directory",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "docs/deep"}},
			want: []string{"CHANGELOG.md", "docs/api.markdown", "docs/guide.md", "readme.md"},
		},
		{
			name: "exclude by base name",
			opts: runner.Options{ExcludeGlobs: []string{"CHANGELOG.md", "*.markdown"}},
			want: []string{"docs/deep/nested.md", "docs/guide.md", "readme.md", "vendor/pkg/doc.md"},
		},
		{
			name: "exclude any depth",
			opts: runner.Options{ExcludeGlobs: []string{"**/nested.md"}},
			want: []string{
				"CHANGELOG.md", "docs/api.markdown", "docs/guide.md", "readme.md", "vendor/pkg/doc.md",
			},
		},
		{
			name: "include",
			opts: runner.Options{IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/api.markdown", "docs/deep/nested.md", "docs/guide.md"},
		},
		{
			name: "no recursion",
			opts: runner.Options{NoRecursive: true},
			want: []string{"CHANGELOG.md", "readme.md"},
		},
		{
			name: "directory argument without recursion",
			opts: runner.Options{Paths: []string{"docs"}, NoRecursive: true},
			want: []string{"docs/api.markdown", "docs/guide.md"},
		},
		{
			name: "hidden file named explicitly",
			opts: runner.Options{Paths: []string{".draft.md", "readme.md", "readme.md"}},
			want: []string{".draft.md", "readme.md"},
		},
		{
			name: "explicit file with wrong extension",
			opts: runner.Options{Paths: []string{"notes.txt"}},
			want: []string{},
		},
		{
			name: "overlapping paths",
			opts: runner.Options{Paths: []string{"docs", "docs/deep", "docs/guide.md"}},
			want: []string{"docs/api.markdown", "docs/deep/nested.md", "docs/guide.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := makeTree(t, tree...)
			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			for _, f := range files {
				assert.True(t, filepath.IsAbs(f), f)
			}
			assert.Equal(t, tt.want, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: makeTree(t, "a.md")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "readme.md")
	target := makeTree(t, "linked.md")
	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscover_SymlinkCycle(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "docs/a.md")
	if err := os.Symlink(filepath.Join(dir, "docs"), filepath.Join(dir, "docs", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.md"}, relPaths(t, dir, files))
}

func TestDiscover_ExplicitHiddenFile(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, ".draft.md", "a.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{".draft.md", "a.md", "a.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".draft.md", "a.md"}, relPaths(t, dir, files))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}
