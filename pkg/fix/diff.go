// Package fix renders the changes a formatting run made as unified diffs.
package fix

import (
	"strings"

	textdiff "github.com/shogoki/gotextdiff"
)

// Diff is the unified diff of one file. Body starts at the "---" header;
// the "diff --git" line is added by FullString.
type Diff struct {
	Path      string
	Body      string
	Additions int
	Deletions int
}

// GenerateDiff diffs original against modified, or returns nil when they
// are equal. A leading slash is dropped from path.
func GenerateDiff(path string, original, modified []byte) *Diff {
	name := strings.TrimPrefix(path, "/")
	raw := textdiff.Diff("a/"+name, original, "b/"+name, modified)
	if len(raw) == 0 {
		return nil
	}

	d := &Diff{Path: name}
	var body strings.Builder
	inHunk := false
	for line := range strings.Lines(string(raw)) {
		if !inHunk && strings.HasPrefix(line, "diff ") {
			continue
		}
		body.WriteString(line)
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
		case line[0] == '+':
			d.Additions++
		case line[0] == '-':
			d.Deletions++
		}
	}
	d.Body = body.String()
	return d
}

func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Body
}

// FullString returns the diff with its "diff --git" header, or "" when
// there is nothing to show.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return "diff --git a/" + d.Path + " b/" + d.Path + "\n" + d.Body
}

func (d *Diff) HasChanges() bool {
	return d != nil && d.Additions+d.Deletions > 0
}
