package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	var totalIssues int
	for _, file := range result.Files {
		if r.opts.GroupByFile {
			totalIssues += r.reportGrouped(file)
		} else {
			totalIssues += r.reportFlat(file)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return totalIssues, nil
}

func (r *TextReporter) writeFileError(path string, err error) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(path),
		r.styles.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// reportGrouped writes one block per file that has something to say:
// its status line, the fixers that changed it and its issues.
func (r *TextReporter) reportGrouped(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)
	if file.Error != nil {
		r.writeFileError(path, file.Error)
		return 0
	}

	res := file.Result
	if res == nil || (!res.Modified && !res.Skipped && !res.HasIssues() && len(res.RuleErrors) == 0) {
		return 0
	}

	status := ""
	if res.Modified || res.Skipped {
		status = res.Summary()
	}
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(res.Issues), status))
	fmt.Fprint(r.bw, r.styles.FormatApplied(r.opts.ruleLabels(res.Applied), res.Written))
	r.writeRuleErrors(res)

	for _, issue := range res.Issues {
		issue.FilePath = path
		fmt.Fprint(r.bw, r.styles.FormatIssue(&issue, r.opts.ShowContext, r.opts.RuleFormat))
	}

	fmt.Fprintln(r.bw)
	return len(res.Issues)
}

// reportFlat writes one line per issue and per changed file.
func (r *TextReporter) reportFlat(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)
	if file.Error != nil {
		r.writeFileError(path, file.Error)
		return 0
	}

	res := file.Result
	if res == nil {
		return 0
	}

	if res.Modified || res.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.FormatStatus(res.Summary()))
	}
	r.writeRuleErrors(res)

	for _, issue := range res.Issues {
		issue.FilePath = path
		fmt.Fprint(r.bw, r.styles.FormatIssue(&issue, r.opts.ShowContext, r.opts.RuleFormat))
	}
	return len(res.Issues)
}

func (r *TextReporter) writeRuleErrors(res *lint.PipelineResult) {
	for _, id := range lint.FixerOrder {
		if err, ok := res.RuleErrors[id]; ok {
			fmt.Fprintln(r.bw, "    "+r.styles.Error.Render(fmt.Sprintf("%s failed: %v", id, err)))
		}
	}
	for _, id := range lint.DetectorOrder {
		if err, ok := res.RuleErrors[id]; ok {
			fmt.Fprintln(r.bw, "    "+r.styles.Error.Render(fmt.Sprintf("%s failed: %v", id, err)))
		}
	}
}
