package lint

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/config"
)

// Issue is a style violation reported by a detector.
type Issue struct {
	// Line is the 1-based line number in the original text.
	Line int

	// Column is the 1-based column of the violation, or 0 for the whole line.
	Column int

	RuleID   RuleID
	RuleName string
	Message  string

	// Context is the offending line, trimmed.
	Context string

	// RelatedLine is a 1-based line the issue refers back to, or 0.
	RelatedLine int

	// Length is the measured line length for length violations, or 0.
	Length int

	Severity   config.Severity
	FilePath   string
	Suggestion string
}

// IssueBuilder helps construct Issue values.
type IssueBuilder struct {
	issue Issue
}

// NewIssue starts building an issue for a 1-based line.
// context is trimmed before it is stored.
func NewIssue(ruleID RuleID, line int, context, message string) *IssueBuilder {
	return &IssueBuilder{
		issue: Issue{
			RuleID:  ruleID,
			Line:    line,
			Context: strings.TrimSpace(context),
			Message: message,
		},
	}
}

// WithColumn sets the 1-based column.
func (b *IssueBuilder) WithColumn(col int) *IssueBuilder {
	b.issue.Column = col
	return b
}

// WithRelatedLine sets the line this issue refers back to.
func (b *IssueBuilder) WithRelatedLine(line int) *IssueBuilder {
	b.issue.RelatedLine = line
	return b
}

// WithLength sets the measured length.
func (b *IssueBuilder) WithLength(n int) *IssueBuilder {
	b.issue.Length = n
	return b
}

// WithSeverity sets the severity.
func (b *IssueBuilder) WithSeverity(s config.Severity) *IssueBuilder {
	b.issue.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *IssueBuilder) WithSuggestion(s string) *IssueBuilder {
	b.issue.Suggestion = s
	return b
}

// Build returns the constructed Issue.
func (b *IssueBuilder) Build() Issue {
	return b.issue
}
