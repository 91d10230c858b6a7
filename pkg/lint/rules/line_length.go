package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

// LineLengthRule reports lines longer than the configured maximum.
type LineLengthRule struct {
	lint.BaseRule
}

// NewLineLengthRule creates the LINE_LENGTH detector.
func NewLineLengthRule() *LineLengthRule {
	return &LineLengthRule{
		BaseRule: lint.NewBaseRule(
			lint.LineLength,
			"line-length",
			"MD013",
			"Line length",
			[]string{"line_length"},
		),
	}
}

// Detect reports prose lines over the limit. Headings, list items, table
// rows and blank lines are exempt, as are code and front matter.
//
// Length is counted in characters; set measure to "display" to count
// terminal columns instead, so that wide CJK characters count twice.
func (r *LineLengthRule) Detect(rc *lint.RuleContext) []lint.Issue {
	limit := rc.MaxLineLength()
	display := rc.OptionString("measure", "chars") == "display"
	doc := rc.Doc
	var issues []lint.Issue

	for i, line := range doc.Lines {
		if doc.Opaque(i) || mdline.IsBlank(line) || mdline.IsHeading(line) ||
			mdline.IsListItem(line) || mdline.IsTableRow(line) {
			continue
		}

		length := utf8.RuneCountInString(line)
		if display {
			length = runewidth.StringWidth(line)
		}
		if length <= limit {
			continue
		}

		issues = append(issues, lint.NewIssue(r.ID(), i+1, line,
			fmt.Sprintf("Line length %d exceeds %d characters", length, limit)).
			WithColumn(limit+1).
			WithLength(length).
			Build())
	}
	return issues
}
