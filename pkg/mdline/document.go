package mdline

import "strings"

// Region classifies a line by the block that contains it.
type Region uint8

const (
	// RegionBody is ordinary Markdown content.
	RegionBody Region = iota

	// RegionFence is an opening or closing code fence line.
	RegionFence

	// RegionCode is a line inside a fenced code block.
	RegionCode

	// RegionFrontMatter is a line of the leading YAML front matter block,
	// delimiters included.
	RegionFrontMatter
)

// Document is a Markdown text viewed as lines, with each line tagged by the
// region that contains it. A Document is read-only once built.
type Document struct {
	// Lines holds the text split on "\n". Joining with "\n" reproduces the text.
	Lines []string

	regions []Region
}

// Split splits text into lines without dropping a trailing empty line.
func Split(text string) []string {
	return strings.Split(text, "\n")
}

// Join is the inverse of Split.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// NewDocument splits text and computes the region of every line.
func NewDocument(text string) *Document {
	lines := Split(text)
	return &Document{
		Lines:   lines,
		regions: scanRegions(lines),
	}
}

// Text returns the document text.
func (d *Document) Text() string {
	return Join(d.Lines)
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.Lines)
}

// Region returns the region of the 0-based line index, or RegionBody when
// the index is out of range.
func (d *Document) Region(idx int) Region {
	if idx < 0 || idx >= len(d.regions) {
		return RegionBody
	}
	return d.regions[idx]
}

// Opaque reports whether the line belongs to a fence, code block or front
// matter. Rules never rewrite or report opaque lines.
func (d *Document) Opaque(idx int) bool {
	return d.Region(idx) != RegionBody
}

// FenceMarker returns the fence character run (``` or ~~~, three or more)
// that opens the trimmed line, and the info string after it.
func FenceMarker(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return "", "", false
	}
	char := trimmed[0]
	if char != '`' && char != '~' {
		return "", "", false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == char {
		n++
	}
	if n < 3 {
		return "", "", false
	}
	info := strings.TrimSpace(trimmed[n:])
	// Backtick fences may not carry backticks in the info string.
	if char == '`' && strings.Contains(info, "`") {
		return "", "", false
	}
	return trimmed[:n], info, true
}

// IsFence reports whether the line opens or closes a code fence.
func IsFence(line string) bool {
	_, _, ok := FenceMarker(line)
	return ok
}

// closesFence reports whether line closes a fence opened with marker.
func closesFence(line, marker string) bool {
	got, info, ok := FenceMarker(line)
	return ok && info == "" && got[0] == marker[0] && len(got) >= len(marker)
}

func scanRegions(lines []string) []Region {
	regions := make([]Region, len(lines))
	start := frontMatterEnd(lines)
	for i := 0; i < start; i++ {
		regions[i] = RegionFrontMatter
	}

	var open string
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if open != "" {
			if closesFence(line, open) {
				regions[i] = RegionFence
				open = ""
				continue
			}
			regions[i] = RegionCode
			continue
		}
		if marker, _, ok := FenceMarker(line); ok {
			regions[i] = RegionFence
			open = marker
		}
	}
	return regions
}

// frontMatterEnd returns the number of lines covered by a leading "---"
// front matter block, or 0 when the document has none.
func frontMatterEnd(lines []string) int {
	if len(lines) < 2 || strings.TrimRight(lines[0], " \t\r") != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimRight(lines[i], " \t\r")
		if trimmed == "---" || trimmed == "..." {
			return i + 1
		}
	}
	return 0
}
