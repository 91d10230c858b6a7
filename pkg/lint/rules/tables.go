package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

//nolint:gochecknoglobals // Compiled pattern is read-only.
var separatorRowPattern = regexp.MustCompile(`^\|[\s\-:|]*\|$`)

// TablePipeStyleRule normalizes the spacing around table pipes.
type TablePipeStyleRule struct {
	lint.BaseRule
}

// NewTablePipeStyleRule creates the TABLE_PIPE_STYLE fixer.
func NewTablePipeStyleRule() *TablePipeStyleRule {
	return &TablePipeStyleRule{
		BaseRule: lint.NewBaseRule(
			lint.TablePipeStyle,
			"table-pipe-style",
			"MD055",
			"Table pipe style",
			[]string{"table"},
		),
	}
}

// Fix rewrites rows that start and end with a pipe so that every non-empty
// cell is padded with exactly one space on each side. Delimiter rows are
// kept as written and empty cells stay empty.
func (r *TablePipeStyleRule) Fix(rc *lint.RuleContext) string {
	return mapBodyLines(rc.Doc, formatTableRow)
}

func formatTableRow(line string) string {
	trimmed := strings.TrimSpace(line)
	if !isPipedRow(trimmed) || isSeparatorRow(trimmed) {
		return line
	}

	cells := mdline.SplitCells(trimmed)
	if len(cells) < 2 || cells[0] != "" || cells[len(cells)-1] != "" {
		return line
	}
	for i, cell := range cells {
		if content := strings.TrimSpace(cell); content != "" {
			cells[i] = " " + content + " "
		} else {
			cells[i] = ""
		}
	}
	return mdline.LeadingWhitespace(line) + strings.Join(cells, "|")
}

// TableMultilineCellRule reports table rows that spill onto the next line.
type TableMultilineCellRule struct {
	lint.BaseRule
}

// NewTableMultilineCellRule creates the TABLE_MULTILINE_CELL detector.
func NewTableMultilineCellRule() *TableMultilineCellRule {
	return &TableMultilineCellRule{
		BaseRule: lint.NewBaseRule(
			lint.TableMultilineCell,
			"table-multiline-cell",
			"MD056",
			"Table cells should not span multiple lines",
			[]string{"table"},
		),
	}
}

// Detect reports a row that lacks its closing pipe, and the blank or
// non-table line that follows it.
func (r *TableMultilineCellRule) Detect(rc *lint.RuleContext) []lint.Issue {
	doc := rc.Doc
	var issues []lint.Issue

	for i, line := range doc.Lines {
		if doc.Opaque(i) || !mdline.IsTableRow(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if isSeparatorRow(trimmed) || isPipedRow(trimmed) {
			continue
		}

		issues = append(issues, lint.NewIssue(r.ID(), i+1, line, "Table row is missing its closing pipe").
			WithSuggestion("Keep each row on one line and use <br> for line breaks inside a cell").
			Build())

		if i+1 >= doc.Len() || doc.Opaque(i+1) {
			continue
		}
		next := doc.Lines[i+1]
		nextTrimmed := strings.TrimSpace(next)
		switch {
		case nextTrimmed == "":
			issues = append(issues, lint.NewIssue(r.ID(), i+2, next, "Blank line inside an unterminated table row").
				WithRelatedLine(i+1).
				Build())
		case !strings.HasPrefix(nextTrimmed, "|") && !strings.HasPrefix(nextTrimmed, "#"):
			issues = append(issues, lint.NewIssue(r.ID(), i+2, next, "Table cell continues on the next line").
				WithRelatedLine(i+1).
				Build())
		}
	}
	return issues
}
