package rules

import (
	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

// BlanksAroundHeadersRule surrounds ATX headings with blank lines.
type BlanksAroundHeadersRule struct {
	lint.BaseRule
}

// NewBlanksAroundHeadersRule creates the BLANKS_AROUND_HEADERS fixer.
func NewBlanksAroundHeadersRule() *BlanksAroundHeadersRule {
	return &BlanksAroundHeadersRule{
		BaseRule: lint.NewBaseRule(
			lint.BlanksAroundHeaders,
			"blanks-around-headings",
			"MD022",
			"Headings should be surrounded by blank lines",
			[]string{"headings", "blank_lines"},
		),
	}
}

// Fix inserts a blank line before a heading that follows text and after a
// heading that is followed by text.
func (r *BlanksAroundHeadersRule) Fix(rc *lint.RuleContext) string {
	doc := rc.Doc
	n := doc.Len()
	out := make([]string, 0, n)

	for i, line := range doc.Lines {
		if doc.Opaque(i) {
			out = append(out, line)
			continue
		}
		if _, ok := mdline.ExtractHeading(line); !ok {
			out = append(out, line)
			continue
		}

		if len(out) > 0 && !mdline.IsBlank(out[len(out)-1]) {
			out = append(out, "")
		}
		out = append(out, line)
		if i+1 < n && !mdline.IsBlank(doc.Lines[i+1]) {
			out = append(out, "")
		}
	}
	return mdline.Join(out)
}

// BlanksAroundListsRule surrounds lists with blank lines.
type BlanksAroundListsRule struct {
	lint.BaseRule
}

// NewBlanksAroundListsRule creates the BLANKS_AROUND_LISTS fixer.
func NewBlanksAroundListsRule() *BlanksAroundListsRule {
	return &BlanksAroundListsRule{
		BaseRule: lint.NewBaseRule(
			lint.BlanksAroundLists,
			"blanks-around-lists",
			"MD032",
			"Lists should be surrounded by blank lines",
			[]string{"bullet", "ul", "ol", "blank_lines"},
		),
	}
}

// Fix inserts blank lines before and after each list block. A block is a
// run of list items and the indented lines that continue them. No blank
// line is ever inserted inside a code block.
func (r *BlanksAroundListsRule) Fix(rc *lint.RuleContext) string {
	doc := rc.Doc
	n := doc.Len()
	out := make([]string, 0, n)

	for i := 0; i < n; {
		if doc.Opaque(i) || !mdline.IsListItem(doc.Lines[i]) {
			out = append(out, doc.Lines[i])
			i++
			continue
		}

		end := listBlockEnd(doc, i)
		if len(out) > 0 && !mdline.IsBlank(out[len(out)-1]) {
			out = append(out, "")
		}
		out = append(out, doc.Lines[i:end]...)
		if end < n && !mdline.IsBlank(doc.Lines[end]) && doc.Region(end) != mdline.RegionCode {
			out = append(out, "")
		}
		i = end
	}
	return mdline.Join(out)
}

// listBlockEnd returns the index just past the list block starting at start.
func listBlockEnd(doc *mdline.Document, start int) int {
	i := start + 1
	for i < doc.Len() {
		line := doc.Lines[i]
		if mdline.IsBlank(line) {
			break
		}
		if !doc.Opaque(i) && mdline.IsListItem(line) {
			i++
			continue
		}
		if mdline.LeadingWhitespace(line) == "" {
			break
		}
		i++
	}
	return i
}
