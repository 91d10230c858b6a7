package rules

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

// atxMarker splits a line into its indentation, the length of its leading
// '#' run and the text after the run. ok is false unless the run is 1 to 6
// hashes long.
func atxMarker(line string) (indent string, hashes int, rest string, ok bool) {
	indent = mdline.LeadingWhitespace(line)
	body := line[len(indent):]
	for hashes < len(body) && body[hashes] == '#' {
		hashes++
	}
	if hashes < 1 || hashes > mdline.MaxHeadingLevel {
		return "", 0, "", false
	}
	return indent, hashes, body[hashes:], true
}

func isSpaceOrTab(b byte) bool {
	return b == ' ' || b == '\t'
}

// HashSpacingMissingRule adds the space after an ATX heading marker.
type HashSpacingMissingRule struct {
	lint.BaseRule
}

// NewHashSpacingMissingRule creates the HASH_SPACING_MISSING fixer.
func NewHashSpacingMissingRule() *HashSpacingMissingRule {
	return &HashSpacingMissingRule{
		BaseRule: lint.NewBaseRule(
			lint.HashSpacingMissing,
			"no-missing-space-atx",
			"MD018",
			"No space after hash on atx style heading",
			[]string{"headings", "atx", "spaces"},
		),
	}
}

// Fix rewrites "#Title" as "# Title".
func (r *HashSpacingMissingRule) Fix(rc *lint.RuleContext) string {
	return mapBodyLines(rc.Doc, func(line string) string {
		indent, hashes, rest, ok := atxMarker(line)
		if !ok || rest == "" || isSpaceOrTab(rest[0]) || strings.TrimSpace(rest) == "" {
			return line
		}
		return indent + strings.Repeat("#", hashes) + " " + rest
	})
}

// HashSpacingExtraRule collapses the spaces after an ATX heading marker.
type HashSpacingExtraRule struct {
	lint.BaseRule
}

// NewHashSpacingExtraRule creates the HASH_SPACING_EXTRA fixer.
func NewHashSpacingExtraRule() *HashSpacingExtraRule {
	return &HashSpacingExtraRule{
		BaseRule: lint.NewBaseRule(
			lint.HashSpacingExtra,
			"no-multiple-space-atx",
			"MD019",
			"Multiple spaces after hash on atx style heading",
			[]string{"headings", "atx", "spaces"},
		),
	}
}

// Fix rewrites "#   Title" as "# Title".
func (r *HashSpacingExtraRule) Fix(rc *lint.RuleContext) string {
	return mapBodyLines(rc.Doc, func(line string) string {
		indent, hashes, rest, ok := atxMarker(line)
		if !ok || len(rest) < 2 || !isSpaceOrTab(rest[0]) || !isSpaceOrTab(rest[1]) {
			return line
		}
		title := strings.TrimLeft(rest, " \t")
		if title == "" {
			return line
		}
		return indent + strings.Repeat("#", hashes) + " " + title
	})
}

// HeaderLeftAlignRule moves indented headings to the first column.
type HeaderLeftAlignRule struct {
	lint.BaseRule
}

// NewHeaderLeftAlignRule creates the HEADER_LEFT_ALIGN fixer.
func NewHeaderLeftAlignRule() *HeaderLeftAlignRule {
	return &HeaderLeftAlignRule{
		BaseRule: lint.NewBaseRule(
			lint.HeaderLeftAlign,
			"heading-start-left",
			"MD023",
			"Headings must start at the beginning of the line",
			[]string{"headings", "spaces"},
		),
	}
}

// Fix strips leading whitespace from heading lines.
func (r *HeaderLeftAlignRule) Fix(rc *lint.RuleContext) string {
	return mapBodyLines(rc.Doc, func(line string) string {
		if !mdline.IsHeading(line) {
			return line
		}
		return strings.TrimLeft(line, " \t")
	})
}

// FirstLineHeaderRule promotes the first line of a document to a heading.
type FirstLineHeaderRule struct {
	lint.BaseRule
}

// NewFirstLineHeaderRule creates the FIRST_LINE_HEADER fixer.
func NewFirstLineHeaderRule() *FirstLineHeaderRule {
	return &FirstLineHeaderRule{
		BaseRule: lint.NewBaseRule(
			lint.FirstLineHeader,
			"first-line-heading",
			"MD041",
			"First line in a file should be a top-level heading",
			[]string{"headings"},
		),
	}
}

// Fix prefixes the first non-blank body line with a heading marker unless
// it already is a heading. Lines that open a block (code fence, table,
// list in any marker form, quote, raw HTML or a thematic break) are left
// alone, as promoting them would change the document structure.
func (r *FirstLineHeaderRule) Fix(rc *lint.RuleContext) string {
	doc := rc.Doc
	idx := -1
	for i, line := range doc.Lines {
		if doc.Region(i) == mdline.RegionFrontMatter || mdline.IsBlank(line) {
			continue
		}
		idx = i
		break
	}
	if idx < 0 || doc.Opaque(idx) {
		return rc.Text()
	}

	line := doc.Lines[idx]
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "<") ||
		isBlockStart(line) || isOrderedMarker(line) || mdline.IsSetextUnderline(trimmed) {
		return rc.Text()
	}
	if _, ok := setextTitleAt(doc, idx); ok {
		return rc.Text()
	}

	level := rc.OptionInt("level", 1)
	if level < 1 || level > mdline.MaxHeadingLevel {
		level = 1
	}

	out := make([]string, doc.Len())
	copy(out, doc.Lines)
	out[idx] = strings.Repeat("#", level) + " " + trimmed
	return mdline.Join(out)
}
