package rules

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

// Heading styles accepted by the "style" option.
const (
	styleConsistent = "consistent"
	styleATX        = "atx"
	styleSetext     = "setext"
)

// HeaderStyleRule rewrites headings to a single style.
type HeaderStyleRule struct {
	lint.BaseRule
}

// NewHeaderStyleRule creates the HEADER_STYLE fixer.
func NewHeaderStyleRule() *HeaderStyleRule {
	return &HeaderStyleRule{
		BaseRule: lint.NewBaseRule(
			lint.HeaderStyle,
			"heading-style",
			"MD003",
			"Heading style should be consistent",
			[]string{"headings"},
		),
	}
}

// Fix rewrites every heading to the target style. With the default
// "consistent" style the target is Setext only when the document has
// Setext headings and no ATX ones; otherwise it is ATX.
//
// Setext can only express levels 1 and 2, so deeper ATX headings stay ATX
// under a Setext target.
func (r *HeaderStyleRule) Fix(rc *lint.RuleContext) string {
	doc := rc.Doc
	target := r.target(rc)

	out := make([]string, 0, doc.Len())
	for i := 0; i < doc.Len(); i++ {
		line := doc.Lines[i]
		if doc.Opaque(i) {
			out = append(out, line)
			continue
		}

		if h, ok := mdline.ExtractHeading(line); ok {
			if target == styleSetext && h.Level <= 2 {
				out = append(out, setextLines(h)...)
			} else {
				out = append(out, atxLine(h))
			}
			continue
		}

		if h, ok := setextTitleAt(doc, i); ok {
			if target == styleSetext {
				out = append(out, setextLines(h)...)
			} else {
				out = append(out, atxLine(h))
			}
			i++
			continue
		}

		out = append(out, line)
	}
	return mdline.Join(out)
}

func (r *HeaderStyleRule) target(rc *lint.RuleContext) string {
	switch style := strings.ToLower(rc.OptionString("style", styleConsistent)); style {
	case styleATX, styleSetext:
		return style
	}

	hasATX, hasSetext := scanHeadingStyles(rc.Doc)
	if hasSetext && !hasATX {
		return styleSetext
	}
	return styleATX
}

// scanHeadingStyles reports which heading styles appear in the body.
func scanHeadingStyles(doc *mdline.Document) (hasATX, hasSetext bool) {
	for i := 0; i < doc.Len(); i++ {
		if doc.Opaque(i) {
			continue
		}
		if _, ok := mdline.ExtractHeading(doc.Lines[i]); ok {
			hasATX = true
			continue
		}
		if _, ok := setextTitleAt(doc, i); ok {
			hasSetext = true
			i++
		}
	}
	return hasATX, hasSetext
}

func atxLine(h mdline.Heading) string {
	return strings.Repeat("#", h.Level) + " " + h.Title
}

func setextLines(h mdline.Heading) []string {
	char := "-"
	if h.Level == 1 {
		char = "="
	}
	return []string{h.Title, strings.Repeat(char, runewidth.StringWidth(h.Title))}
}
