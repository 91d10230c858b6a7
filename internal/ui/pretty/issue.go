package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// FormatIssue formats a single detector issue for terminal output.
// The issue's Context is shown under it when showContext is set.
func (s *Styles) FormatIssue(issue *lint.Issue, showContext bool, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d", s.FilePath.Render(issue.FilePath), issue.Line)
	if issue.Column > 0 {
		location += fmt.Sprintf(":%d", issue.Column)
	}

	severity := issue.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}

	ruleIdentifier := config.FormatRuleID(ruleFormat, string(issue.RuleID), issue.RuleName)

	// Main line: location  severity  message  (rule-id)
	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(severity),
		s.Message.Render(issue.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if issue.RelatedLine > 0 {
		builder.WriteString("    " + s.Dim.Render(fmt.Sprintf("see line %d", issue.RelatedLine)) + "\n")
	}

	if showContext && issue.Context != "" {
		builder.WriteString(s.FormatSourceContext(issue.Context, issue.Column))
	}

	if issue.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(issue.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under column.
// The caret is placed by display width so wide characters line up.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		runes := []rune(line)
		prefix := string(runes[:min(column-1, len(runes))])
		padding := indent + strings.Repeat(" ", runewidth.StringWidth(prefix))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output, followed by
// the file's status when one is given.
func (s *Styles) FormatFileHeader(path string, issueCount int, status string) string {
	header := s.FilePath.Render(path)
	if issueCount == 1 {
		header += s.Dim.Render(" (1 issue)")
	} else if issueCount > 1 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	if status != "" {
		header += " " + s.FormatStatus(status)
	}
	return header
}

// FormatStatus styles a PipelineResult summary such as "formatted" or
// "would reformat".
func (s *Styles) FormatStatus(status string) string {
	switch {
	case strings.HasPrefix(status, "formatted"):
		return s.Success.Render(status)
	case strings.HasPrefix(status, "would"):
		return s.Warning.Render(status)
	case strings.HasPrefix(status, "skipped"), strings.HasPrefix(status, "error"):
		return s.Failure.Render(status)
	default:
		return s.Dim.Render(status)
	}
}

// FormatApplied lists the fixers that changed a file.
func (s *Styles) FormatApplied(applied []string, written bool) string {
	if len(applied) == 0 {
		return ""
	}
	verb := "fixed:"
	if !written {
		verb = "would fix:"
	}
	return "    " + s.Dim.Render(verb) + " " + s.RuleID.Render(strings.Join(applied, ", ")) + "\n"
}
