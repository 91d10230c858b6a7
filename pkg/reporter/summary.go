package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
	"github.com/yaklabco/gomdfmt/pkg/analysis"
	"github.com/yaklabco/gomdfmt/pkg/config"
)

const summaryWidth = 90

// column is one column of a summary table. Widths are in terminal cells.
type column struct {
	title string
	width int
	right bool
}

func (c column) fit(s string) string {
	if c.right {
		return padLeft(s, c.width)
	}
	return padRight(s, c.width)
}

//nolint:gochecknoglobals // Read-only table layouts.
var (
	ruleColumns = []column{
		{"Rule", 30, false}, {"Kind", 9, false},
		{"Issues", 7, true}, {"Errors", 7, true}, {"Warnings", 8, true}, {"Fixed", 8, true},
	}
	fileColumns = []column{
		{"File", 52, false},
		{"Issues", 7, true}, {"Errors", 7, true}, {"Warnings", 8, true}, {"Fixes", 8, true},
	}
)

// cell is a table value with an optional style applied after padding.
type cell struct {
	text  string
	style *lipgloss.Style
}

func padRight(s string, width int) string { return runewidth.FillRight(s, width) }

func padLeft(s string, width int) string { return runewidth.FillLeft(s, width) }

// truncatePath keeps the tail of a path wider than width cells.
func truncatePath(path string, width int) string {
	if runewidth.StringWidth(path) <= width {
		return path
	}
	runes := []rune(path)
	start, used := len(runes), 1
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	return "…" + string(runes[start:])
}

// SummaryRenderer prints per-rule and per-file tables followed by a
// totals line.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	totals := report.Totals
	if totals.Issues == 0 && totals.Fixes == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found, nothing to format"))
		return nil
	}

	sections := []func(){
		func() { r.table("Rules Summary", ruleColumns, r.ruleRows(report.ByRule)) },
		func() { r.table("Files Summary", fileColumns, r.fileRows(report.ByFile)) },
	}
	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		sections[0], sections[1] = sections[1], sections[0]
	}
	for _, section := range sections {
		section()
		fmt.Fprintln(r.out)
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+r.totals(totals))
	return nil
}

func (r *SummaryRenderer) table(title string, cols []column, rows [][]cell) {
	if len(rows) == 0 {
		return
	}
	rule := r.styles.TableSeparator.Render(strings.Repeat("─", summaryWidth))

	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, rule)
	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = r.styles.TableHeader.Render(col.fit(col.title))
	}
	fmt.Fprintln(r.out, strings.Join(headers, " "))
	fmt.Fprintln(r.out, rule)

	for _, row := range rows {
		parts := make([]string, len(row))
		for i, c := range row {
			parts[i] = cols[i].fit(c.text)
			if c.style != nil {
				parts[i] = c.style.Render(parts[i])
			}
		}
		fmt.Fprintln(r.out, strings.Join(parts, " "))
	}
}

// rowStyle colors the leading cell by the worst thing in the row.
func (r *SummaryRenderer) rowStyle(errors, warnings, fixed int) *lipgloss.Style {
	switch {
	case errors > 0:
		return &r.styles.TableErrorRow
	case warnings > 0:
		return &r.styles.TableWarnRow
	case fixed > 0:
		return &r.styles.TableFixedRow
	}
	return nil
}

func (r *SummaryRenderer) ruleRows(rules []analysis.RuleAnalysis) [][]cell {
	rows := make([][]cell, 0, len(rules))
	for _, rule := range rules {
		label := config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName)
		fixed := cell{}
		if rule.FilesFixed > 0 {
			fixed = cell{strconv.Itoa(rule.FilesFixed), &r.styles.TableFixed}
		}
		rows = append(rows, []cell{
			{runewidth.Truncate(label, ruleColumns[0].width-1, "…"), r.rowStyle(rule.Errors, rule.Warnings, rule.FilesFixed)},
			{text: rule.Kind},
			{text: strconv.Itoa(rule.Issues)},
			{text: strconv.Itoa(rule.Errors)},
			{text: strconv.Itoa(rule.Warnings)},
			fixed,
		})
	}
	return rows
}

func (r *SummaryRenderer) fileRows(files []analysis.FileAnalysis) [][]cell {
	rows := make([][]cell, 0, len(files))
	for _, file := range files {
		rows = append(rows, []cell{
			{truncatePath(file.Path, fileColumns[0].width-2), r.rowStyle(file.Errors, file.Warnings, 0)},
			{text: strconv.Itoa(file.Issues)},
			{text: strconv.Itoa(file.Errors)},
			{text: strconv.Itoa(file.Warnings)},
			{text: strconv.Itoa(file.Fixes)},
		})
	}
	return rows
}

func (r *SummaryRenderer) totals(t analysis.Totals) string {
	issues := plural(t.Issues, "issue", "issues")

	var bySeverity []string
	if t.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(fmt.Sprintf("%d errors", t.Errors)))
	}
	if t.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(fmt.Sprintf("%d warnings", t.Warnings)))
	}
	if len(bySeverity) > 0 {
		issues += " (" + strings.Join(bySeverity, ", ") + ")"
	}

	line := issues + " in " + plural(t.FilesWithIssues, "file", "files")
	if t.FilesChanged > 0 {
		noun := "files"
		if t.FilesChanged == 1 {
			noun = "file"
		}
		line += ", " + r.styles.Success.Render(fmt.Sprintf("%d fixes in %d changed %s", t.Fixes, t.FilesChanged, noun))
	}
	return line
}
