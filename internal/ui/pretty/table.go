package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// Table formatting constants.
const (
	fixedSymbol      = "+"
	ellipsis         = "..."
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LOC, MESSAGE, RULE, marker
	markerWidth      = 1
	minFileWidth     = 20
	minLocWidth      = 6
	minMessageWidth  = 35
	minRuleWidth     = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is one row of the table: a detector issue, or a fixer that
// changed the file.
type TableRow struct {
	File     string
	Location string
	Message  string
	Rule     string
	Severity config.Severity
	Fixed    bool
}

// TableFormatter formats issues and applied fixes as a styled table.
// Column widths are measured in terminal cells.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	ruleFormat   config.RuleFormat
	registry     *lint.Registry
}

// NewTableFormatter creates a new table formatter.
// registry names the fixers in the FIXED rows and may be nil.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, ruleFormat config.RuleFormat, registry *lint.Registry) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		ruleFormat:   ruleFormat,
		registry:     registry,
	}
}

// FormatTable formats runner results as a table grouped by file.
// Returns "" when no file has issues or fixes.
func (t *TableFormatter) FormatTable(result *runner.Result, pathOf func(string) string) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		if rows := t.Rows(file, pathOf(file.Path)); len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	if len(groups) == 0 {
		return ""
	}

	widths := t.columnWidths(groups)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")
	return builder.String()
}

// Rows converts one file outcome to table rows: applied fixers first, in
// the order they ran, then issues.
func (t *TableFormatter) Rows(file runner.FileOutcome, displayPath string) []TableRow {
	res := file.Result
	if res == nil {
		return nil
	}

	verb := "fixed"
	if !res.Written {
		verb = "would fix"
	}

	rows := make([]TableRow, 0, len(res.Applied)+len(res.Issues))
	for _, id := range res.Applied {
		name := ""
		if t.registry != nil {
			if rule, ok := t.registry.Get(id); ok {
				name = rule.Name()
			}
		}
		rows = append(rows, TableRow{
			File:     displayPath,
			Location: "-",
			Message:  verb,
			Rule:     config.FormatRuleID(t.ruleFormat, string(id), name),
			Fixed:    true,
		})
	}
	for _, issue := range res.Issues {
		rows = append(rows, IssueToTableRow(displayPath, &issue, t.ruleFormat))
	}
	return rows
}

type columnWidths struct {
	file    int
	loc     int
	message int
	rule    int
}

func (w columnWidths) total() int {
	return w.file + w.loc + w.message + w.rule + tablePadding*tableColumnCount + markerWidth
}

// columnWidths sizes columns to their content, then shrinks the message
// and file columns to fit the terminal.
func (t *TableFormatter) columnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		loc:     minLocWidth,
		message: minMessageWidth,
		rule:    minRuleWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, runewidth.StringWidth(row.File))
			widths.loc = max(widths.loc, runewidth.StringWidth(row.Location))
			widths.message = max(widths.message, runewidth.StringWidth(row.Message))
			widths.rule = max(widths.rule, runewidth.StringWidth(row.Rule))
		}
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.message = max(minMessageWidth, widths.message-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}
	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + strings.Join([]string{
		runewidth.FillRight("FILE", widths.file),
		runewidth.FillRight("LOC", widths.loc),
		runewidth.FillRight("MESSAGE", widths.message),
		runewidth.FillRight("RULE", widths.rule),
		" ",
	}, "  ")
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	marker := " "
	if row.Fixed {
		marker = t.styles.TableFixed.Render(fixedSymbol)
	}

	content := " " + strings.Join([]string{
		runewidth.FillRight(truncateLeft(row.File, widths.file), widths.file),
		runewidth.FillRight(runewidth.Truncate(row.Location, widths.loc, ellipsis), widths.loc),
		runewidth.FillRight(runewidth.Truncate(row.Message, widths.message, ellipsis), widths.message),
		runewidth.FillRight(runewidth.Truncate(row.Rule, widths.rule, ellipsis), widths.rule),
	}, "  ") + "  " + marker

	return t.rowStyle(row).Render(content)
}

func (t *TableFormatter) rowStyle(row TableRow) lipgloss.Style {
	if row.Fixed {
		return t.styles.TableFixedRow
	}
	switch row.Severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: %s = changed by a fixer", fixedSymbol),
		)
	}

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = error  %s = warning  %s = info  %s = changed by a fixer",
			t.styles.TableErrorRow.Render(" error "),
			t.styles.TableWarnRow.Render(" warning "),
			t.styles.TableInfoRow.Render(" info "),
			t.styles.TableFixed.Render(fixedSymbol)),
	)
}

// FormatTableSummary formats a one-line summary for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{strconv.Itoa(stats.FilesProcessed) + " files checked"}

	if n := stats.IssuesBySeverity[config.SeverityError]; n > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := stats.IssuesBySeverity[config.SeverityWarning]; n > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := stats.IssuesBySeverity[config.SeverityInfo]; n > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", n)))
	}
	if stats.FilesChanged > 0 {
		parts = append(parts, t.styles.TableFixed.Render(fmt.Sprintf("%d reformatted", stats.FilesChanged)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateLeft shortens s to width cells, keeping the end (the file name).
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	budget := width - len(ellipsis)
	if budget <= 0 {
		return ellipsis[:max(width, 0)]
	}

	runes := []rune(s)
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return ellipsis + string(runes[start:])
}

// IssueToTableRow converts a detector issue to a table row.
func IssueToTableRow(path string, issue *lint.Issue, ruleFormat config.RuleFormat) TableRow {
	loc := strconv.Itoa(issue.Line)
	if issue.Column > 0 {
		loc += ":" + strconv.Itoa(issue.Column)
	}
	return TableRow{
		File:     path,
		Location: loc,
		Message:  issue.Message,
		Rule:     config.FormatRuleID(ruleFormat, string(issue.RuleID), issue.RuleName),
		Severity: issue.Severity,
	}
}
