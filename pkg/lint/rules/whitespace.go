package rules

import (
	"strings"
	"unicode"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

const defaultSpacesPerTab = 4

// HardTabsRule replaces tab characters with spaces.
type HardTabsRule struct {
	lint.BaseRule
}

// NewHardTabsRule creates the HARD_TABS fixer.
func NewHardTabsRule() *HardTabsRule {
	return &HardTabsRule{
		BaseRule: lint.NewBaseRule(
			lint.HardTabs,
			"no-hard-tabs",
			"MD010",
			"Hard tabs should be replaced with spaces",
			[]string{"whitespace", "hard_tab"},
		),
	}
}

// Fix expands every tab to spaces_per_tab spaces. Code block content is
// left alone unless code_blocks is true.
func (r *HardTabsRule) Fix(rc *lint.RuleContext) string {
	width := rc.OptionInt("spaces_per_tab", defaultSpacesPerTab)
	if width < 0 {
		width = defaultSpacesPerTab
	}
	spaces := strings.Repeat(" ", width)
	codeBlocks := rc.OptionBool("code_blocks", false)

	doc := rc.Doc
	out := make([]string, doc.Len())
	for i, line := range doc.Lines {
		switch doc.Region(i) {
		case mdline.RegionFrontMatter:
			out[i] = line
		case mdline.RegionCode:
			if codeBlocks {
				out[i] = strings.ReplaceAll(line, "\t", spaces)
			} else {
				out[i] = line
			}
		default:
			out[i] = strings.ReplaceAll(line, "\t", spaces)
		}
	}
	return mdline.Join(out)
}

// TrailingWhitespaceRule strips whitespace at the end of lines.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates the TRAILING_WHITESPACE fixer.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			lint.TrailingWhitespace,
			"no-trailing-spaces",
			"MD009",
			"Lines should not have trailing spaces",
			[]string{"whitespace"},
		),
	}
}

// Fix strips trailing whitespace from every line except front matter and
// lines that continue a table row: a line containing a pipe whose trimmed
// form does not start with one keeps its spacing.
func (r *TrailingWhitespaceRule) Fix(rc *lint.RuleContext) string {
	ignoreCode := rc.OptionBool("ignore_code_blocks", false)

	doc := rc.Doc
	out := make([]string, doc.Len())
	for i, line := range doc.Lines {
		region := doc.Region(i)
		if region == mdline.RegionFrontMatter || (ignoreCode && region == mdline.RegionCode) {
			out[i] = line
			continue
		}
		if strings.Contains(line, "|") && !strings.HasPrefix(strings.TrimSpace(line), "|") {
			out[i] = line
			continue
		}
		body, cr := strings.CutSuffix(line, "\r")
		out[i] = strings.TrimRightFunc(body, unicode.IsSpace)
		if cr {
			out[i] += "\r"
		}
	}
	return mdline.Join(out)
}

// MultipleBlanksRule collapses runs of blank lines.
type MultipleBlanksRule struct {
	lint.BaseRule
}

// NewMultipleBlanksRule creates the MULTIPLE_BLANKS fixer.
func NewMultipleBlanksRule() *MultipleBlanksRule {
	return &MultipleBlanksRule{
		BaseRule: lint.NewBaseRule(
			lint.MultipleBlanks,
			"no-multiple-blanks",
			"MD012",
			"Multiple consecutive blank lines",
			[]string{"whitespace", "blank_lines"},
		),
	}
}

// Fix reduces every run of three or more consecutive newlines outside
// code blocks to exactly two. Only empty lines count; a line holding
// spaces ends the run.
func (r *MultipleBlanksRule) Fix(rc *lint.RuleContext) string {
	doc := rc.Doc
	n := doc.Len()
	out := make([]string, 0, n)

	for i := 0; i < n; {
		if doc.Opaque(i) || doc.Lines[i] != "" {
			out = append(out, doc.Lines[i])
			i++
			continue
		}

		start := i
		for i < n && !doc.Opaque(i) && doc.Lines[i] == "" {
			i++
		}
		end := i - 1
		count := end - start + 1

		// The run sits between two lines, so it spans count+1 newlines,
		// one fewer at either edge of the document.
		newlines := count + 1
		if start == 0 {
			newlines--
		}
		if end == n-1 {
			newlines--
		}

		keep := count
		if newlines > 2 {
			keep = count - (newlines - 2)
		}
		for range keep {
			out = append(out, "")
		}
	}
	return mdline.Join(out)
}

// FileEndNewlineRule makes the file end with a single newline.
type FileEndNewlineRule struct {
	lint.BaseRule
}

// NewFileEndNewlineRule creates the FILE_END_NEWLINE fixer.
func NewFileEndNewlineRule() *FileEndNewlineRule {
	return &FileEndNewlineRule{
		BaseRule: lint.NewBaseRule(
			lint.FileEndNewline,
			"single-trailing-newline",
			"MD047",
			"Files should end with a single newline character",
			[]string{"blank_lines"},
		),
	}
}

// Fix trims trailing newlines and appends exactly one. Empty text is left empty.
func (r *FileEndNewlineRule) Fix(rc *lint.RuleContext) string {
	text := rc.Text()
	if text == "" {
		return text
	}
	return strings.TrimRight(text, "\n") + "\n"
}
