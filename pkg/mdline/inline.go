package mdline

import "strings"

// Span is a half-open byte range [Start, End) within a line.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the byte offset lies within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// CodeSpans returns the byte ranges of inline code spans in line, backticks
// included. A backtick run closes only on a run of the same length; an
// unmatched run is literal text.
func CodeSpans(line string) []Span {
	var spans []Span
	i := 0
	for i < len(line) {
		if line[i] != '`' {
			i++
			continue
		}
		start := i
		for i < len(line) && line[i] == '`' {
			i++
		}
		run := i - start
		end := findClosingRun(line, i, run)
		if end < 0 {
			continue
		}
		spans = append(spans, Span{Start: start, End: end})
		i = end
	}
	return spans
}

func findClosingRun(line string, from, run int) int {
	i := from
	for i < len(line) {
		if line[i] != '`' {
			i++
			continue
		}
		start := i
		for i < len(line) && line[i] == '`' {
			i++
		}
		if i-start == run {
			return i
		}
	}
	return -1
}

// InSpans reports whether offset falls inside any of spans.
func InSpans(spans []Span, offset int) bool {
	for _, s := range spans {
		if s.Contains(offset) {
			return true
		}
	}
	return false
}

// SplitCells splits a table row on unescaped pipes outside code spans.
// The returned slice includes the (possibly empty) text before the first
// pipe and after the last pipe.
func SplitCells(row string) []string {
	spans := CodeSpans(row)
	var cells []string
	last := 0
	for i := 0; i < len(row); i++ {
		if row[i] != '|' || InSpans(spans, i) {
			continue
		}
		if i > 0 && row[i-1] == '\\' {
			continue
		}
		cells = append(cells, row[last:i])
		last = i + 1
	}
	return append(cells, row[last:])
}

// StripCodeSpans replaces code span contents with spaces so that byte
// offsets are preserved while their text is hidden from pattern matching.
func StripCodeSpans(line string) string {
	spans := CodeSpans(line)
	if len(spans) == 0 {
		return line
	}
	var b strings.Builder
	b.Grow(len(line))
	pos := 0
	for _, s := range spans {
		b.WriteString(line[pos:s.Start])
		b.WriteString(strings.Repeat(" ", s.End-s.Start))
		pos = s.End
	}
	b.WriteString(line[pos:])
	return b.String()
}
