package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/analysis"
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/fix"
	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/lint/rules"
	"github.com/yaklabco/gomdfmt/pkg/reporter"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

func sampleResult() *runner.Result {
	original := []byte("# Title\n\ntext \n")
	formatted := []byte("# Title\n\ntext\n")

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/clean.md", Result: &lint.PipelineResult{Path: "/work/clean.md"}},
			{
				Path: "/work/docs/guide.md",
				Result: &lint.PipelineResult{
					Path: "/work/docs/guide.md",
					RunResult: lint.RunResult{
						Text:    string(formatted),
						Changed: true,
						Applied: []lint.RuleID{lint.TrailingWhitespace},
						Issues: []lint.Issue{{
							RuleID:   lint.InlineHTML,
							RuleName: "no-inline-html",
							Line:     3,
							Column:   2,
							Message:  "Inline HTML [Element: br]",
							Context:  "a<br>b",
							Severity: config.SeverityError,
							FilePath: "/work/docs/guide.md",
						}},
					},
					Modified: true,
					Diff:     fix.GenerateDiff("/work/docs/guide.md", original, formatted),
				},
			},
			{Path: "/work/broken.md", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered:  3,
			FilesProcessed:   2,
			FilesErrored:     1,
			FilesChanged:     1,
			FilesWithIssues:  1,
			IssuesTotal:      1,
			IssuesBySeverity: map[config.Severity]int{config.SeverityError: 1},
			FixesByRule:      map[lint.RuleID]int{lint.TrailingWhitespace: 1},
		},
	}
}

func newOptions(buf *bytes.Buffer, format reporter.Format) reporter.Options {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = format
	opts.Color = "never"
	opts.WorkingDir = "/work"
	opts.Registry = registry
	return opts
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return opts.Writer.(*bytes.Buffer).String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "table", want: reporter.FormatTable},
		{input: "json", want: reporter.FormatJSON},
		{input: "diff", want: reporter.FormatDiff},
		{input: "summary", want: reporter.FormatSummary},
		{input: "sarif", wantErr: true},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, reporter.Format(tt.input).IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{"", reporter.FormatText, reporter.FormatTable,
		reporter.FormatJSON, reporter.FormatDiff, reporter.FormatSummary} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.True(t, opts.GroupByFile)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
	assert.Equal(t, config.SummaryOrderRules, opts.SummaryOrder)
}

func TestTextReporter_Grouped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out, count := report(t, newOptions(&buf, reporter.FormatText), sampleResult())

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "docs/guide.md (1 issue) would reformat")
	assert.Contains(t, out, "would fix: no-trailing-spaces")
	assert.Contains(t, out, "docs/guide.md:3:2  error  Inline HTML [Element: br]  (no-inline-html)")
	assert.Contains(t, out, "a<br>b")
	assert.Contains(t, out, "broken.md: error: permission denied")
	assert.NotContains(t, out, "clean.md")
	assert.NotContains(t, out, "/work/")
	assert.Contains(t, out, "1 file would be reformatted")
}

func TestTextReporter_Flat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := newOptions(&buf, reporter.FormatText)
	opts.GroupByFile = false
	opts.ShowContext = false
	opts.ShowSummary = false
	opts.RuleFormat = config.RuleFormatID

	out, count := report(t, opts, sampleResult())

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "docs/guide.md: would reformat\n")
	assert.Contains(t, out, "(INLINE_HTML)")
	assert.NotContains(t, out, "a<br>b")
	assert.NotContains(t, out, "issues (")
}

func TestTextReporter_RuleErrors(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{
		Path: "a.md",
		Result: &lint.PipelineResult{RunResult: lint.RunResult{
			RuleErrors: map[lint.RuleID]error{lint.BareURL: errors.New("boom")},
		}},
	}}}

	var buf bytes.Buffer
	out, _ := report(t, newOptions(&buf, reporter.FormatText), result)
	assert.Contains(t, out, "BARE_URL failed: boom")
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out, count := report(t, newOptions(&buf, reporter.FormatText), nil)
	assert.Zero(t, count)
	assert.Contains(t, out, "No files to format.")
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out, count := report(t, newOptions(&buf, reporter.FormatJSON), sampleResult())
	assert.Equal(t, 1, count)

	var decoded analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, analysis.ReportVersion, decoded.Version)
	assert.Equal(t, 3, decoded.Totals.Files)
	assert.Equal(t, 1, decoded.Totals.Fixes)
	require.Len(t, decoded.Issues, 1)
	assert.Equal(t, "docs/guide.md", decoded.Issues[0].FilePath)
	assert.Equal(t, "no-inline-html", decoded.Issues[0].RuleName)

	require.Len(t, decoded.Files, 3)
	assert.Equal(t, analysis.StatusWouldFix, decoded.Files[1].Status)
	assert.Equal(t, analysis.StatusError, decoded.Files[2].Status)

	for _, ra := range decoded.ByRule {
		if ra.RuleID == string(lint.TrailingWhitespace) {
			assert.Equal(t, "no-trailing-spaces", ra.RuleName)
		}
	}
}

func TestJSONRenderer_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := newOptions(&buf, reporter.FormatJSON)
	opts.Compact = true

	out, _ := report(t, opts, sampleResult())
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out, count := report(t, newOptions(&buf, reporter.FormatDiff), sampleResult())

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "diff --git a/docs/guide.md b/docs/guide.md\n--- a/docs/guide.md\n+++ b/docs/guide.md\n")
	assert.Contains(t, out, "-text \n")
	assert.Contains(t, out, "+text\n")
	assert.Contains(t, out, "broken.md: error: permission denied")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
}

func TestDiffReporter_NoDiffs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out, count := report(t, newOptions(&buf, reporter.FormatDiff), &runner.Result{
		Files: []runner.FileOutcome{{Path: "a.md", Result: &lint.PipelineResult{}}},
	})
	assert.Zero(t, count)
	assert.Empty(t, out)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out, count := report(t, newOptions(&buf, reporter.FormatTable), sampleResult())

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "broken.md: error: permission denied")
	assert.Contains(t, out, "docs/guide.md")
	assert.Contains(t, out, "would fix")
	assert.Contains(t, out, "no-trailing-spaces")
	assert.Contains(t, out, "2 files checked | 1 errors | 1 reformatted")
	assert.Contains(t, out, "Run without --check or --dry-run")
}

func TestTableReporter_Clean(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out, count := report(t, newOptions(&buf, reporter.FormatTable), &runner.Result{
		Files: []runner.FileOutcome{{Path: "a.md", Result: &lint.PipelineResult{}}},
		Stats: runner.Stats{FilesProcessed: 1},
	})
	assert.Zero(t, count)
	assert.Contains(t, out, "All files formatted")
}

func TestSummaryFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out, count := report(t, newOptions(&buf, reporter.FormatSummary), sampleResult())

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "Rules Summary")
	assert.Contains(t, out, "Files Summary")
	assert.Contains(t, out, "no-trailing-spaces")
	assert.Contains(t, out, "docs/guide.md")
	assert.Contains(t, out, "1 fixes in 1 changed file")
}
