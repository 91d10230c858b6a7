// Package runner formats many Markdown files concurrently.
package runner

import (
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// Options selects the files of a run and how each one is processed.
//
// Relative Paths and globs resolve against WorkingDir, which defaults to
// the process working directory. With no Paths the run covers ".".
type Options struct {
	Paths      []string
	WorkingDir string

	Extensions   []string // lowercase with the dot; DefaultExtensions when empty
	IncludeGlobs []string // doublestar; empty admits every Markdown file
	ExcludeGlobs []string // doublestar; config ignore plus --exclude

	NoRecursive    bool
	FollowSymlinks bool // walk into symlinked directories

	Jobs int // worker count; runtime.NumCPU() when not positive

	Pipeline lint.PipelineOptions
}

// DefaultExtensions returns the extensions treated as Markdown when none
// are configured.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// OptionsFromConfig derives run options for paths from cfg, which may be nil.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Pipeline: lint.PipelineOptionsFromConfig(cfg)}
	if cfg == nil {
		return opts
	}
	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.NoRecursive = cfg.NoRecursive
	opts.Jobs = cfg.Jobs
	return opts
}

func (o Options) effectiveExtensions() []string {
	return orDefault(o.Extensions, DefaultExtensions())
}

func (o Options) effectivePaths() []string {
	return orDefault(o.Paths, []string{"."})
}

func orDefault[S ~[]E, E any](s, fallback S) S {
	if len(s) == 0 {
		return fallback
	}
	return s
}
