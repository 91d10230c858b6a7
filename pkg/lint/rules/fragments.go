package rules

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	fragmentLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(#([^)\s]+)\)`)
	htmlAnchorPattern   = regexp.MustCompile(`(?i)\b(?:id|name)\s*=\s*["']([^"']+)["']`)
)

// topFragment is the fragment browsers resolve to the top of a page.
const topFragment = "top"

// LinkFragmentRule reports same-document links whose fragment matches no
// heading.
type LinkFragmentRule struct {
	lint.BaseRule
}

// NewLinkFragmentRule creates the LINK_FRAGMENT detector.
func NewLinkFragmentRule() *LinkFragmentRule {
	return &LinkFragmentRule{
		BaseRule: lint.NewBaseRule(
			lint.LinkFragment,
			"link-fragments",
			"MD051",
			"Link fragments should be valid",
			[]string{"links"},
		),
	}
}

// Detect checks every [text](#fragment) link against the heading anchors
// and the id or name attributes of HTML elements in the document.
func (r *LinkFragmentRule) Detect(rc *lint.RuleContext) []lint.Issue {
	doc := rc.Doc
	anchors := mdline.NewAnchorSet()
	for _, h := range collectHeadings(doc) {
		anchors.Add(h.Title)
	}

	explicit := make(map[string]struct{})
	for i, line := range doc.Lines {
		if doc.Opaque(i) {
			continue
		}
		for _, m := range htmlAnchorPattern.FindAllStringSubmatch(line, -1) {
			explicit[strings.ToLower(m[1])] = struct{}{}
		}
	}

	var issues []lint.Issue
	for i, line := range doc.Lines {
		if doc.Opaque(i) || !strings.Contains(line, "](#") {
			continue
		}
		masked := mdline.StripCodeSpans(line)
		for _, m := range fragmentLinkPattern.FindAllStringSubmatchIndex(masked, -1) {
			raw := masked[m[4]:m[5]]
			fragment := raw
			if decoded, err := url.PathUnescape(raw); err == nil {
				fragment = decoded
			}
			fragment = strings.ToLower(fragment)

			if fragment == topFragment || anchors.Has(fragment) {
				continue
			}
			if _, ok := explicit[fragment]; ok {
				continue
			}
			issues = append(issues, lint.NewIssue(r.ID(), i+1, line,
				fmt.Sprintf("Link fragment %q does not match any heading", "#"+raw)).
				WithColumn(utf8.RuneCountInString(line[:m[0]])+1).
				Build())
		}
	}
	return issues
}
