package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover returns the sorted, de-duplicated absolute paths of the Markdown
// files named by opts.Paths. Files named explicitly are taken even when
// hidden; directories are walked skipping hidden entries and excluded globs.
// A path that does not exist is an error.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:        ctx,
		opts:       opts,
		workDir:    workDir,
		extensions: lowered(opts.effectiveExtensions()),
		seen:       make(map[string]struct{}),
		walked:     make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if !info.IsDir() {
			if d.wants(path) {
				d.add(path)
			}
			continue
		}
		if err := d.walk(path); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

type discoverer struct {
	ctx        context.Context
	opts       Options
	workDir    string
	extensions []string

	seen  map[string]struct{}
	files []string

	// walked holds the real paths of directories already walked, so a
	// symlinked directory is never entered twice.
	walked map[string]struct{}
}

func (d *discoverer) add(path string) {
	if _, dup := d.seen[path]; dup {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// rel returns path relative to the working directory for glob matching.
func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// wants reports whether a file passes the extension, exclude and include filters.
func (d *discoverer) wants(path string) bool {
	if !slices.Contains(d.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	rel := d.rel(path)
	if matchesAny(rel, d.opts.ExcludeGlobs) {
		return false
	}
	return len(d.opts.IncludeGlobs) == 0 || matchesAny(rel, d.opts.IncludeGlobs)
}

func (d *discoverer) walk(root string) error {
	real, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}
	if _, done := d.walked[real]; done {
		return nil
	}
	d.walked[real] = struct{}{}

	// WalkDir does not descend into a symlinked root.
	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		root = real
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := strings.HasPrefix(entry.Name(), ".")
		switch {
		case entry.IsDir():
			if path == root {
				return nil
			}
			if hidden || d.opts.NoRecursive || matchesAny(d.rel(path), d.opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			if d.opts.FollowSymlinks {
				if real, err := filepath.EvalSymlinks(path); err == nil {
					d.walked[real] = struct{}{}
				}
			}
			return nil
		case hidden:
			return nil
		case entry.Type()&fs.ModeSymlink != 0:
			return d.followLink(path)
		}

		if d.wants(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// followLink handles a symlink met during a walk. Broken links are skipped;
// directory links are walked only with FollowSymlinks.
func (d *discoverer) followLink(path string) error {
	target, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // broken or unreadable links are skipped
	}
	if !target.IsDir() {
		if d.wants(path) {
			d.add(path)
		}
		return nil
	}
	if !d.opts.FollowSymlinks || d.opts.NoRecursive || matchesAny(d.rel(path), d.opts.ExcludeGlobs) {
		return nil
	}
	return d.walk(path)
}

func lowered(exts []string) []string {
	out := make([]string, len(exts))
	for i, ext := range exts {
		out[i] = strings.ToLower(ext)
	}
	return out
}

func matchesAny(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(relPath, pattern)
	})
}

// matchGlob matches a slash-separated relative path against a doublestar
// pattern. A pattern without a slash also matches the base name, so "*.md"
// and "CHANGELOG.md" match at any depth, and a directory pattern such as
// "vendor/**" matches the directory itself.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}
	if base, ok := strings.CutSuffix(pattern, "/**"); ok && base == path {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, err := doublestar.Match(pattern, filepath.Base(path))
		return err == nil && ok
	}
	return false
}
