package analysis

import (
	"slices"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// SortField orders the per-file and per-rule breakdowns.
type SortField string

const (
	SortByCount    SortField = "count"    // issues plus fixes
	SortByAlpha    SortField = "alpha"    // path or rule label
	SortBySeverity SortField = "severity" // errors, then warnings
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	return slices.Contains([]SortField{SortByCount, SortByAlpha, SortBySeverity}, s)
}

// Options selects which sections Analyze fills in and how it orders them.
type Options struct {
	IncludeIssues bool // Report.Issues
	IncludeFiles  bool // Report.Files
	IncludeByFile bool // Report.ByFile
	IncludeByRule bool // Report.ByRule

	SortBy   SortField
	SortDesc bool

	RuleFormat config.RuleFormat

	// Registry turns the fixer IDs of PipelineResult.Applied into names.
	Registry *lint.Registry

	// WorkingDir, when set, makes absolute paths relative.
	WorkingDir string
}

// DefaultOptions fills in every section, busiest entries first.
func DefaultOptions() Options {
	return Options{
		IncludeIssues: true,
		IncludeFiles:  true,
		IncludeByFile: true,
		IncludeByRule: true,
		SortBy:        SortByCount,
		SortDesc:      true,
		RuleFormat:    config.RuleFormatName,
	}
}
