package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]+>`)
	tagNamePattern  = regexp.MustCompile(`^</?([A-Za-z][A-Za-z0-9-]*)`)
	autolinkPattern = regexp.MustCompile(`^<(?:[A-Za-z][A-Za-z0-9+.-]{1,31}:[^\s<>]*|[^\s<>@]+@[^\s<>@]+)>$`)
)

// InlineHTMLRule reports raw HTML tags.
type InlineHTMLRule struct {
	lint.BaseRule
}

// NewInlineHTMLRule creates the INLINE_HTML detector.
func NewInlineHTMLRule() *InlineHTMLRule {
	return &InlineHTMLRule{
		BaseRule: lint.NewBaseRule(
			lint.InlineHTML,
			"no-inline-html",
			"MD033",
			"Inline HTML",
			[]string{"html"},
		),
	}
}

// Detect reports each tag outside code. Autolinks, comments and elements
// listed in allowed_elements are not reported.
func (r *InlineHTMLRule) Detect(rc *lint.RuleContext) []lint.Issue {
	var allowed []string
	for _, name := range rc.OptionStringSlice("allowed_elements", nil) {
		allowed = append(allowed, strings.ToLower(name))
	}

	doc := rc.Doc
	var issues []lint.Issue
	for i, line := range doc.Lines {
		if doc.Opaque(i) || !strings.Contains(line, "<") {
			continue
		}
		masked := mdline.StripCodeSpans(line)
		for _, loc := range htmlTagPattern.FindAllStringIndex(masked, -1) {
			tag := masked[loc[0]:loc[1]]
			if strings.HasPrefix(tag, "<!--") || autolinkPattern.MatchString(tag) {
				continue
			}
			m := tagNamePattern.FindStringSubmatch(tag)
			if m == nil {
				continue
			}
			name := strings.ToLower(m[1])
			if slices.Contains(allowed, name) {
				continue
			}
			issues = append(issues, lint.NewIssue(r.ID(), i+1, line,
				fmt.Sprintf("Inline HTML element <%s>", name)).
				WithColumn(utf8.RuneCountInString(line[:loc[0]])+1).
				Build())
		}
	}
	return issues
}
