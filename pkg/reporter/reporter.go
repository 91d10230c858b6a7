// Package reporter writes the results of a formatting run as text, tables,
// JSON, diffs or summary tables.
package reporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/analysis"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// Reporter writes a run result. Report returns the number of items it
// reported: issues for most formats, changed files for diffs.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an aggregated report. JSON and summary output work from
// the analysis rather than from the raw result.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// Format names an output format.
type Format string

// Output formats.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

//nolint:gochecknoglobals // Read-only constructor table.
var constructors = []struct {
	format Format
	build  func(Options) Reporter
}{
	{FormatText, func(o Options) Reporter { return NewTextReporter(o) }},
	{FormatTable, func(o Options) Reporter { return NewTableReporter(o) }},
	{FormatJSON, func(o Options) Reporter { return analyzed(NewJSONRenderer(o), o) }},
	{FormatDiff, func(o Options) Reporter { return NewDiffReporter(o) }},
	{FormatSummary, func(o Options) Reporter { return analyzed(NewSummaryRenderer(o), o) }},
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f is one of the known formats.
func (f Format) IsValid() bool {
	return f.constructor() != nil
}

func (f Format) constructor() func(Options) Reporter {
	for _, c := range constructors {
		if c.format == f {
			return c.build
		}
	}
	return nil
}

// ParseFormat converts a flag or config value to a Format. The empty
// string selects text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}

	names := make([]string, len(constructors))
	for i, c := range constructors {
		names[i] = string(c.format)
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", s, strings.Join(names, ", "))
}

// New returns the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	build := opts.Format.constructor()
	if build == nil {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return build(opts), nil
}

// analysisReporter runs the analysis over a result and hands it to a Renderer.
type analysisReporter struct {
	renderer Renderer
	opts     analysis.Options
}

func analyzed(renderer Renderer, opts Options) *analysisReporter {
	aopts := analysis.DefaultOptions()
	aopts.RuleFormat = opts.RuleFormat
	aopts.Registry = opts.Registry
	aopts.WorkingDir = opts.WorkingDir
	return &analysisReporter{renderer: renderer, opts: aopts}
}

func (a *analysisReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}
