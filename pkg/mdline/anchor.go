package mdline

import (
	"strconv"
	"strings"
	"unicode"
)

// Anchor converts a heading title to its link fragment: lowercased, with
// every rune that is not a letter, digit, underscore, whitespace or hyphen
// removed, and whitespace runs replaced by a single hyphen.
func Anchor(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	inSpace := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsSpace(r):
			inSpace = true
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), r == '_', r == '-':
			if inSpace {
				b.WriteByte('-')
				inSpace = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AnchorSet collects anchors for a sequence of heading titles. Repeated
// anchors get "-1", "-2", ... suffixes in order of appearance.
type AnchorSet struct {
	seen map[string]int
	all  map[string]struct{}
}

// NewAnchorSet returns an empty AnchorSet.
func NewAnchorSet() *AnchorSet {
	return &AnchorSet{
		seen: make(map[string]int),
		all:  make(map[string]struct{}),
	}
}

// Add records the anchor for title and returns it.
func (s *AnchorSet) Add(title string) string {
	base := Anchor(title)
	anchor := base
	if n, ok := s.seen[base]; ok {
		anchor = base + "-" + strconv.Itoa(n)
	}
	s.seen[base]++
	s.all[anchor] = struct{}{}
	return anchor
}

// Has reports whether anchor was recorded.
func (s *AnchorSet) Has(anchor string) bool {
	_, ok := s.all[anchor]
	return ok
}
