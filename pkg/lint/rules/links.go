package rules

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	bareURLPattern      = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")
	trailingURLPattern  = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+-?$")
	urlFragmentPattern  = regexp.MustCompile("^[^\\s<>\"{}|\\\\^`\\[\\]]+$")
	openAutolinkPattern = regexp.MustCompile(`<https?://`)
)

const (
	// urlGuardBefore are characters that mark a URL as already delimited.
	urlGuardBefore = `[(<"'=`
	// urlGuardAfter are characters that close a delimited URL.
	urlGuardAfter = `])>`
	// urlTrailingPunct is sentence punctuation that is not part of a URL.
	urlTrailingPunct = ".,;:!?*"
)

// BareURLRule wraps bare URLs in angle brackets.
type BareURLRule struct {
	lint.BaseRule
}

// NewBareURLRule creates the BARE_URL fixer.
func NewBareURLRule() *BareURLRule {
	return &BareURLRule{
		BaseRule: lint.NewBaseRule(
			lint.BareURL,
			"no-bare-urls",
			"MD034",
			"Bare URL used",
			[]string{"links", "url"},
		),
	}
}

// Fix turns bare URLs into autolinks. A URL that a text editor has
// soft-wrapped across lines, either inside an autolink or after a trailing
// hyphen, is joined back onto one line first. A joined line is examined
// again, since it may end with another wrapped URL.
func (r *BareURLRule) Fix(rc *lint.RuleContext) string {
	doc := rc.Doc
	lines := slices.Clone(doc.Lines)
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if doc.Opaque(i) {
			out = append(out, lines[i])
			i++
			continue
		}
		joined, consumed := joinWrappedAutolink(doc, lines[i], lines, i)
		if consumed == 0 {
			joined, consumed = joinWrappedBareURL(doc, lines, i)
		}
		if consumed > 0 {
			i += consumed - 1
			lines[i] = joined
			continue
		}
		out = append(out, wrapBareURLs(lines[i]))
		i++
	}
	return mdline.Join(out)
}

// joinWrappedAutolink rebuilds an autolink of line, standing at index i,
// whose closing '>' was pushed onto a following line. It returns the
// rebuilt line and the number of input lines it covers, or 0 when line
// holds no such autolink or the continuation cannot be found.
func joinWrappedAutolink(doc *mdline.Document, line string, lines []string, i int) (string, int) {
	masked := mdline.StripCodeSpans(line)
	opens := openAutolinkPattern.FindAllStringIndex(masked, -1)
	if len(opens) == 0 {
		return "", 0
	}
	start := opens[len(opens)-1][0]
	rest := strings.TrimRightFunc(line[start+1:], unicode.IsSpace)

	// A wrapped autolink either has no '>' at all, or ends the line with
	// "->" where an editor broke it at a hyphen.
	if closing := strings.IndexByte(rest, '>'); closing >= 0 {
		if closing != len(rest)-1 || !strings.HasSuffix(rest, "->") {
			return "", 0
		}
		rest = rest[:closing]
	}
	if !urlFragmentPattern.MatchString(rest) {
		return "", 0
	}

	parts := []string{rest}
	for j := i + 1; j < len(lines); j++ {
		if doc.Opaque(j) || mdline.IsBlank(lines[j]) {
			return "", 0
		}
		next := strings.TrimSpace(lines[j])
		closing := strings.IndexByte(next, '>')
		if closing < 0 {
			if !urlFragmentPattern.MatchString(next) {
				return "", 0
			}
			parts = append(parts, next)
			continue
		}
		frag := next[:closing]
		if frag == "" || !urlFragmentPattern.MatchString(frag) {
			return "", 0
		}
		parts = append(parts, frag)
		joined := line[:start] + "<" + joinFragments(parts) + ">" + next[closing+1:]
		return joined, j - i + 1
	}
	return "", 0
}

// joinFragments puts the pieces of a broken URL back together. The break
// is taken to have eaten a hyphen unless the piece before it ends in one.
func joinFragments(parts []string) string {
	var b strings.Builder
	for k, part := range parts {
		if k > 0 && !strings.HasSuffix(parts[k-1], "-") {
			b.WriteByte('-')
		}
		b.WriteString(part)
	}
	return b.String()
}

// joinWrappedBareURL rebuilds a bare URL that ends lines[i] with a hyphen
// and continues on the following lines. It returns 0 when the line does not
// end with such a URL or no continuation is found.
func joinWrappedBareURL(doc *mdline.Document, lines []string, i int) (string, int) {
	line := strings.TrimRightFunc(lines[i], unicode.IsSpace)
	if !strings.HasSuffix(line, "-") {
		return "", 0
	}
	masked := mdline.StripCodeSpans(line)
	loc := trailingURLPattern.FindStringIndex(masked)
	if loc == nil || guardedBefore(masked, loc[0]) {
		return "", 0
	}
	start := loc[0]

	parts := []string{line[start:]}
	for j := i + 1; j < len(lines); j++ {
		if doc.Opaque(j) || mdline.IsBlank(lines[j]) || isBlockStart(lines[j]) {
			return "", 0
		}
		next := strings.TrimSpace(lines[j])
		if strings.ContainsAny(next[:1], "#-*>`|[") {
			return "", 0
		}

		word, tail := next, ""
		if k := strings.IndexFunc(next, unicode.IsSpace); k >= 0 {
			word, tail = next[:k], next[k:]
		}
		if strings.HasPrefix(word, "http://") || strings.HasPrefix(word, "https://") ||
			!urlFragmentPattern.MatchString(word) {
			return "", 0
		}
		parts = append(parts, word)

		if tail == "" && strings.HasSuffix(word, "-") {
			continue
		}

		url := strings.Join(parts, "")
		kept := trimURLTail(url)
		joined := line[:start] + "<" + kept + ">" + url[len(kept):] + tail
		return joined, j - i + 1
	}
	return "", 0
}

// wrapBareURLs wraps every unguarded URL of a single line in angle
// brackets. URLs inside code spans are left alone.
//
// A URL that ends the line with a hyphen is left bare as well: wrapped, it
// would end the line with "->", which reads as a soft-wrapped autolink and
// would be joined with the next line on a later run.
func wrapBareURLs(line string) string {
	masked := mdline.StripCodeSpans(line)
	matches := bareURLPattern.FindAllStringIndex(masked, -1)
	if len(matches) == 0 {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + 2*len(matches))
	pos := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if guardedBefore(masked, start) || (end < len(masked) && strings.IndexByte(urlGuardAfter, masked[end]) >= 0) {
			continue
		}
		url := trimURLTail(line[start:end])
		if strings.HasSuffix(url, "://") {
			continue
		}
		if strings.HasSuffix(url, "-") &&
			strings.TrimRightFunc(line[start+len(url):], unicode.IsSpace) == "" {
			continue
		}
		b.WriteString(line[pos:start])
		b.WriteByte('<')
		b.WriteString(url)
		b.WriteByte('>')
		pos = start + len(url)
	}
	b.WriteString(line[pos:])
	return b.String()
}

func guardedBefore(s string, start int) bool {
	return start > 0 && strings.IndexByte(urlGuardBefore, s[start-1]) >= 0
}

// trimURLTail drops sentence punctuation and unbalanced closing
// parentheses from the end of url.
func trimURLTail(url string) string {
	for {
		trimmed := strings.TrimRight(url, urlTrailingPunct)
		if strings.HasSuffix(trimmed, ")") &&
			strings.Count(trimmed, ")") > strings.Count(trimmed, "(") {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if trimmed == url {
			return url
		}
		url = trimmed
	}
}
