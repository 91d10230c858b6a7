package rules

import (
	"fmt"

	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// DuplicateHeadingRule reports headings whose text repeats an earlier one.
type DuplicateHeadingRule struct {
	lint.BaseRule
}

// NewDuplicateHeadingRule creates the DUPLICATE_HEADING detector.
func NewDuplicateHeadingRule() *DuplicateHeadingRule {
	return &DuplicateHeadingRule{
		BaseRule: lint.NewBaseRule(
			lint.DuplicateHeading,
			"no-duplicate-heading",
			"MD024",
			"Multiple headings with the same content",
			[]string{"headings"},
		),
	}
}

// Detect compares heading titles case-sensitively and reports every repeat
// against the first occurrence.
func (r *DuplicateHeadingRule) Detect(rc *lint.RuleContext) []lint.Issue {
	first := make(map[string]int)
	var issues []lint.Issue

	for _, h := range collectHeadings(rc.Doc) {
		seen, ok := first[h.Title]
		if !ok {
			first[h.Title] = h.Line
			continue
		}
		issues = append(issues, lint.NewIssue(r.ID(), h.Line, rc.Doc.Lines[h.Line-1],
			fmt.Sprintf("Duplicate heading %q, first used on line %d", h.Title, seen)).
			WithRelatedLine(seen).
			Build())
	}
	return issues
}

// MultipleTopLevelHeadingsRule reports every level 1 heading after the first.
type MultipleTopLevelHeadingsRule struct {
	lint.BaseRule
}

// NewMultipleTopLevelHeadingsRule creates the MULTIPLE_TOP_LEVEL_HEADINGS detector.
func NewMultipleTopLevelHeadingsRule() *MultipleTopLevelHeadingsRule {
	return &MultipleTopLevelHeadingsRule{
		BaseRule: lint.NewBaseRule(
			lint.MultipleTopLevelHeadings,
			"single-h1",
			"MD025",
			"Multiple top-level headings in the same document",
			[]string{"headings"},
		),
	}
}

func (r *MultipleTopLevelHeadingsRule) Detect(rc *lint.RuleContext) []lint.Issue {
	first := 0
	var issues []lint.Issue

	for _, h := range collectHeadings(rc.Doc) {
		if h.Level != 1 {
			continue
		}
		if first == 0 {
			first = h.Line
			continue
		}
		issues = append(issues, lint.NewIssue(r.ID(), h.Line, rc.Doc.Lines[h.Line-1],
			fmt.Sprintf("Extra top-level heading, the first is on line %d", first)).
			WithRelatedLine(first).
			Build())
	}
	return issues
}
