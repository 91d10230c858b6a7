package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// DefaultConfigFile is the project config file name written by init and migrate.
const DefaultConfigFile = ".gomdfmt.yml"

// ConfigPaths lists the configuration files found for a working directory.
// An empty field means no file was found at that layer.
type ConfigPaths struct {
	System   string // /etc/gomdfmt/config.yaml or %ProgramData%\gomdfmt
	User     string // $XDG_CONFIG_HOME/gomdfmt/config.yaml
	Project  string // nearest .gomdfmt.yml at or above the working directory
	Explicit string // --config

	// Markdownlint is a markdownlint config sitting in the working directory.
	Markdownlint string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectNames      = []string{DefaultConfigFile, ".gomdfmt.yaml", "gomdfmt.yml", "gomdfmt.yaml"}
	layerNames        = []string{"config.yaml", "config.yml"}
	markdownlintNames = []string{
		".markdownlint.json",
		".markdownlint.jsonc",
		".markdownlint.yaml",
		".markdownlint.yml",
		".markdownlint.cjs",
		".markdownlint.mjs",
	}
	repositoryMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the system, user and project configuration files
// for workDir, plus any markdownlint config next to it.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		Project:      project,
		Markdownlint: FindMarkdownlintConfig(workDir),
	}
	if dir := systemConfigDir(); dir != "" {
		paths.System = firstFile(dir, layerNames)
	}
	if dir := userConfigDir(); dir != "" {
		paths.User = firstFile(dir, layerNames)
	}
	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/gomdfmt"
	}
	root := os.Getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, "gomdfmt")
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gomdfmt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gomdfmt")
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project config it meets. The search ends without a
// result at a repository root or the user's home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()
	for dir := range ancestors(start) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if found := firstFile(dir, projectNames); found != "" {
			return found, nil
		}
		if isRepositoryRoot(dir) || (home != "" && dir == home) {
			break
		}
	}
	return "", nil
}

// ancestors yields dir and each of its parents up to the root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// FindMarkdownlintConfig returns the markdownlint config in dir, or "".
func FindMarkdownlintConfig(dir string) string {
	return firstFile(dir, markdownlintNames)
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isRepositoryRoot(dir string) bool {
	return slices.ContainsFunc(repositoryMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// IsJavaScriptConfig reports whether path is a markdownlint config written
// in JavaScript. Those cannot be converted.
func IsJavaScriptConfig(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cjs", ".mjs":
		return true
	}
	return false
}

// IsJSONConfig reports whether path is a JSON or JSONC config.
func IsJSONConfig(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	}
	return false
}
