// Package mdline classifies single Markdown lines and models a document as a
// flat sequence of lines with fenced code and front matter regions.
package mdline

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxHeadingLevel is the deepest ATX heading level.
const MaxHeadingLevel = 6

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	unorderedItemPattern = regexp.MustCompile(`^\s*[-*+]\s`)
	orderedItemPattern   = regexp.MustCompile(`^\s*\d+\.\s`)
	headingPattern       = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	orderedPartsPattern  = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.+)$`)
	setextPattern        = regexp.MustCompile(`^[-=]+\s*$`)
)

// Heading is a heading derived from an ATX line or a Setext pair.
type Heading struct {
	// Level is 1..6.
	Level int

	// Title is the trimmed heading text.
	Title string
}

// ListItem is an ordered list item split into its parts.
type ListItem struct {
	// Indent is the leading whitespace, used as the nesting key.
	Indent string

	// Ordinal is the number written before the dot.
	Ordinal uint32

	// Text is the item content after the marker.
	Text string
}

// IsBlank reports whether the line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// HashRun returns the number of leading '#' characters of the trimmed line.
func HashRun(line string) int {
	trimmed := strings.TrimSpace(line)
	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	return n
}

// IsHeading reports whether the trimmed line starts with a run of 1 to 6 '#'.
// The run need not be followed by whitespace.
func IsHeading(line string) bool {
	n := HashRun(line)
	return n >= 1 && n <= MaxHeadingLevel
}

// IsUnorderedListItem reports whether the line starts with -, * or +
// followed by whitespace.
func IsUnorderedListItem(line string) bool {
	return unorderedItemPattern.MatchString(line)
}

// IsOrderedListItem reports whether the line starts with digits, a dot and
// whitespace.
func IsOrderedListItem(line string) bool {
	return orderedItemPattern.MatchString(line)
}

// IsListItem reports whether the line is an ordered or unordered list item.
func IsListItem(line string) bool {
	return IsUnorderedListItem(line) || IsOrderedListItem(line)
}

// IsTableRow reports whether the trimmed line starts with a pipe.
func IsTableRow(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// IsBlockquote reports whether the trimmed line starts with '>'.
func IsBlockquote(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ">")
}

// IsSetextUnderline reports whether the line consists only of '=' or '-'
// characters, optionally followed by whitespace.
func IsSetextUnderline(line string) bool {
	return setextPattern.MatchString(line)
}

// SetextLevel returns 1 for an '=' underline and 2 otherwise.
func SetextLevel(underline string) int {
	if strings.Contains(underline, "=") {
		return 1
	}
	return 2
}

// ExtractHeading splits an ATX heading line into level and title.
// It returns false when the hashes are not followed by whitespace.
func ExtractHeading(line string) (Heading, bool) {
	m := headingPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Heading{}, false
	}
	return Heading{Level: len(m[1]), Title: strings.TrimSpace(m[2])}, true
}

// ExtractOrderedItem splits an ordered list item into indent, ordinal and text.
// Ordinals that do not fit in 32 bits are treated as no match.
func ExtractOrderedItem(line string) (ListItem, bool) {
	m := orderedPartsPattern.FindStringSubmatch(strings.TrimRight(line, " \t\r\n\f\v"))
	if m == nil {
		return ListItem{}, false
	}
	ordinal, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return ListItem{}, false
	}
	return ListItem{Indent: m[1], Ordinal: uint32(ordinal), Text: m[3]}, true
}

// LeadingWhitespace returns the whitespace prefix of line.
func LeadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
