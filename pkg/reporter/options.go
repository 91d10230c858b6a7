package reporter

import (
	"io"
	"os"
	"path/filepath"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	Writer      io.Writer // report output, stdout by default
	ErrorWriter io.Writer // diagnostics, stderr by default

	Format Format
	Color  string // auto, always or never

	// ShowContext prints the offending source line under each issue.
	ShowContext bool
	ShowSummary bool
	GroupByFile bool

	// Compact drops indentation from JSON.
	Compact bool

	RuleFormat   config.RuleFormat
	SummaryOrder config.SummaryOrder

	// Registry supplies rule names for RuleFormat. Without one, rules are
	// shown by ID.
	Registry *lint.Registry

	// WorkingDir, when set, makes absolute file paths relative in output.
	WorkingDir string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: config.SummaryOrderRules,
	}
}

func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	if rel, err := filepath.Rel(o.WorkingDir, path); err == nil {
		return rel
	}
	return path
}

func (o Options) ruleLabel(id lint.RuleID) string {
	var name string
	if o.Registry != nil {
		if rule, ok := o.Registry.Get(id); ok {
			name = rule.Name()
		}
	}
	return config.FormatRuleID(o.RuleFormat, string(id), name)
}

func (o Options) ruleLabels(ids []lint.RuleID) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, o.ruleLabel(id))
	}
	return labels
}
