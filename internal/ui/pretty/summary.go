package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files reformatted, 5 issues (2 errors, 3 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if n := stats.FilesModified; n > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s reformatted", n, plural(n, wordFile, wordFiles))))
	}
	if n := stats.FilesChanged - stats.FilesModified; n > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s would be reformatted", n, plural(n, wordFile, wordFiles))))
	}

	if stats.IssuesTotal > 0 {
		var severityParts []string
		if n := stats.IssuesBySeverity[config.SeverityError]; n > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
		}
		if n := stats.IssuesBySeverity[config.SeverityWarning]; n > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
		}
		if n := stats.IssuesBySeverity[config.SeverityInfo]; n > 0 {
			severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
		}

		issues := fmt.Sprintf("%d %s", stats.IssuesTotal, plural(stats.IssuesTotal, "issue", "issues"))
		if len(severityParts) > 0 {
			issues += " (" + strings.Join(severityParts, ", ") + ")"
		}
		issues += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))
		parts = append(parts, issues)
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	if len(parts) == 0 {
		return s.Success.Render("All files formatted") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))) + "\n"
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString("  " + fmt.Sprintf("%-19s", label) + value + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesChanged > 0 {
		row("Files changed:", s.Success.Render(strconv.Itoa(stats.FilesChanged)))
	}
	if stats.FilesModified > 0 {
		row("Files written:", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped:", s.Failure.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	if stats.FilesWithIssues > 0 {
		row("Files with issues:", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}

	builder.WriteString("\n")

	row("Total issues:", s.SummaryValue.Render(strconv.Itoa(stats.IssuesTotal)))
	if n := stats.IssuesBySeverity[config.SeverityError]; n > 0 {
		row("  Errors:", s.Error.Render(strconv.Itoa(n)))
	}
	if n := stats.IssuesBySeverity[config.SeverityWarning]; n > 0 {
		row("  Warnings:", s.Warning.Render(strconv.Itoa(n)))
	}
	if n := stats.IssuesBySeverity[config.SeverityInfo]; n > 0 {
		row("  Info:", s.Info.Render(strconv.Itoa(n)))
	}
	if stats.RuleErrors > 0 {
		row("Rule failures:", s.Failure.Render(strconv.Itoa(stats.RuleErrors)))
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0 || stats.RuleErrors > 0:
		builder.WriteString(s.Failure.Render("Formatting finished with errors"))
	case stats.IssuesBySeverity[config.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Issues found"))
	case stats.FilesChanged > stats.FilesModified:
		builder.WriteString(s.Warning.Render("Files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
