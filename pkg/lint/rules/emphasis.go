package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

const (
	defaultHeadingPunctuation = ".,;:!?。，；：！？"
	// maxEmphasisHeadingLength bounds what still reads as a heading.
	maxEmphasisHeadingLength = 100
)

// emphasisDelimiters are tried longest first so "**x**" is not read as "*x*".
//
//nolint:gochecknoglobals // Read-only table.
var emphasisDelimiters = []string{"**", "__", "*", "_"}

// EmphasisAsHeadingRule reports emphasized paragraphs used in place of a heading.
type EmphasisAsHeadingRule struct {
	lint.BaseRule
}

// NewEmphasisAsHeadingRule creates the EMPHASIS_AS_HEADING detector.
func NewEmphasisAsHeadingRule() *EmphasisAsHeadingRule {
	return &EmphasisAsHeadingRule{
		BaseRule: lint.NewBaseRule(
			lint.EmphasisAsHeading,
			"no-emphasis-as-heading",
			"MD036",
			"Emphasis used instead of a heading",
			[]string{"headings", "emphasis"},
		),
	}
}

// Detect reports a single-line paragraph that is entirely emphasized.
// Text ending in one of the punctuation characters reads as a sentence and
// is not reported.
func (r *EmphasisAsHeadingRule) Detect(rc *lint.RuleContext) []lint.Issue {
	punctuation := rc.OptionString("punctuation", defaultHeadingPunctuation)
	doc := rc.Doc
	var issues []lint.Issue

	for i, line := range doc.Lines {
		if doc.Opaque(i) || mdline.IsListItem(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || utf8.RuneCountInString(trimmed) >= maxEmphasisHeadingLength {
			continue
		}
		if !standsAlone(doc, i) {
			continue
		}
		text, ok := emphasizedText(trimmed)
		if !ok {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(text)
		if strings.ContainsRune(punctuation, last) {
			continue
		}
		issues = append(issues, lint.NewIssue(r.ID(), i+1, line, "Emphasis used instead of a heading").
			WithSuggestion("Use a heading such as \"## "+text+"\"").
			Build())
	}
	return issues
}

// standsAlone reports whether line i has no paragraph text directly above
// or below it.
func standsAlone(doc *mdline.Document, i int) bool {
	if i > 0 && !mdline.IsBlank(doc.Lines[i-1]) && !doc.Opaque(i-1) {
		return false
	}
	if i+1 < doc.Len() && !mdline.IsBlank(doc.Lines[i+1]) && !doc.Opaque(i+1) {
		return false
	}
	return true
}

// emphasizedText returns the inner text when trimmed is wholly wrapped in
// one emphasis delimiter pair and that text contains a letter or digit.
func emphasizedText(trimmed string) (string, bool) {
	for _, delim := range emphasisDelimiters {
		if len(trimmed) <= 2*len(delim) ||
			!strings.HasPrefix(trimmed, delim) || !strings.HasSuffix(trimmed, delim) {
			continue
		}
		inner := trimmed[len(delim) : len(trimmed)-len(delim)]
		if strings.TrimSpace(inner) != inner || strings.ContainsAny(inner, delim[:1]) {
			return "", false
		}
		if !strings.ContainsFunc(inner, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) {
			return "", false
		}
		return inner, true
	}
	return "", false
}
