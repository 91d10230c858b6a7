package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	containerMarkerPattern = regexp.MustCompile(`^ {0,3}(?:>[ \t]?|[-*+][ \t]+|\d{1,9}[.)][ \t]+)`)
	orderedMarkerPattern   = regexp.MustCompile(`^\s*\d{1,9}[.)](?:\s|$)`)
)

// mapBodyLines applies fn to every body line and leaves opaque lines as they are.
func mapBodyLines(doc *mdline.Document, fn func(line string) string) string {
	out := make([]string, len(doc.Lines))
	for i, line := range doc.Lines {
		if doc.Opaque(i) {
			out[i] = line
			continue
		}
		out[i] = fn(line)
	}
	return mdline.Join(out)
}

// isSeparatorRow reports whether the trimmed row is a table delimiter row
// such as "|---|:--:|".
func isSeparatorRow(trimmed string) bool {
	return separatorRowPattern.MatchString(trimmed)
}

// isPipedRow reports whether the trimmed line starts and ends with an
// unescaped pipe.
func isPipedRow(trimmed string) bool {
	return len(trimmed) >= 2 &&
		strings.HasPrefix(trimmed, "|") &&
		strings.HasSuffix(trimmed, "|") &&
		!strings.HasSuffix(trimmed, `\|`)
}

// isBlockStart reports whether a line opens a block construct that cannot
// continue a paragraph-level wrap.
func isBlockStart(line string) bool {
	return mdline.IsHeading(line) ||
		mdline.IsListItem(line) ||
		mdline.IsBlockquote(line) ||
		mdline.IsTableRow(line) ||
		mdline.IsFence(line)
}

// setextTitleAt reports whether lines[i] is the title line of a Setext
// heading, returning the heading. The underline is lines[i+1].
func setextTitleAt(doc *mdline.Document, i int) (mdline.Heading, bool) {
	if i+1 >= doc.Len() || doc.Opaque(i) || doc.Opaque(i+1) {
		return mdline.Heading{}, false
	}
	title, underline := doc.Lines[i], doc.Lines[i+1]
	if !mdline.IsSetextUnderline(underline) || !isSetextTitle(title) {
		return mdline.Heading{}, false
	}
	return mdline.Heading{Level: mdline.SetextLevel(underline), Title: strings.TrimSpace(title)}, true
}

// isSetextTitle reports whether line may sit above a Setext underline:
// it starts in the first column, is not blank and is not itself a heading.
// A container line whose content opens a code fence is refused too, since
// rewriting it would close that code block.
func isSetextTitle(line string) bool {
	if mdline.IsBlank(line) || mdline.LeadingWhitespace(line) != "" {
		return false
	}
	return !mdline.IsHeading(line) && !opensNestedFence(line)
}

// opensNestedFence reports whether line is one or more list or quote
// markers followed by a code fence, as in "- ```go" or "> 1. ~~~".
func opensNestedFence(line string) bool {
	rest, nested := line, false
	for {
		loc := containerMarkerPattern.FindStringIndex(rest)
		if loc == nil {
			break
		}
		rest, nested = rest[loc[1]:], true
	}
	return nested && mdline.IsFence(rest)
}

// isOrderedMarker reports whether line opens an ordered list item in either
// CommonMark form, "1." or "1)".
func isOrderedMarker(line string) bool {
	return orderedMarkerPattern.MatchString(line)
}

// headingRef is a heading with its 1-based line number.
type headingRef struct {
	mdline.Heading
	Line int
}

// collectHeadings returns the ATX and Setext headings of the body in order.
func collectHeadings(doc *mdline.Document) []headingRef {
	var refs []headingRef
	for i := 0; i < doc.Len(); i++ {
		if doc.Opaque(i) {
			continue
		}
		if h, ok := mdline.ExtractHeading(doc.Lines[i]); ok {
			refs = append(refs, headingRef{Heading: h, Line: i + 1})
			continue
		}
		if h, ok := setextTitleAt(doc, i); ok {
			refs = append(refs, headingRef{Heading: h, Line: i + 1})
			i++
		}
	}
	return refs
}
