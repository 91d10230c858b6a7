package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
	"github.com/yaklabco/gomdfmt/pkg/fix"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// DiffReporter prints the pending or applied changes of each file as a
// git-style unified diff, followed by a diffstat line.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

type diffStat struct {
	files, added, removed int
}

// Report implements Reporter. The count is the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var stat diffStat
	for _, file := range result.Files {
		name := r.opts.displayPath(file.Path)
		if file.Error != nil {
			fmt.Fprintf(bw, "%s: %s\n", r.styles.FilePath.Render(name), r.styles.Error.Render("error: "+file.Error.Error()))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := file.Result.Diff
		stat.files++
		stat.added += diff.Additions
		stat.removed += diff.Deletions
		r.writeFile(bw, filepath.ToSlash(name), diff)
	}

	if stat.files > 0 && r.opts.ShowSummary {
		fmt.Fprintln(bw, r.diffStat(stat))
	}
	return stat.files, nil
}

// writeFile replaces the diff's own headers with ones built from the
// display path so the output applies with git apply from WorkingDir.
func (r *DiffReporter) writeFile(bw *bufio.Writer, name string, diff *fix.Diff) {
	fmt.Fprintln(bw, r.styles.DiffHeader.Render("diff --git a/"+name+" b/"+name))
	fmt.Fprintln(bw, r.styles.DiffRemove.Render("--- a/"+name))
	fmt.Fprintln(bw, r.styles.DiffAdd.Render("+++ b/"+name))

	inHunks := false
	for line := range strings.Lines(diff.String()) {
		line = strings.TrimSuffix(line, "\n")
		inHunks = inHunks || strings.HasPrefix(line, "@@")
		if !inHunks {
			continue
		}
		fmt.Fprintln(bw, r.lineStyle(line).Render(line))
	}
	fmt.Fprintln(bw)
}

func (r *DiffReporter) lineStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "@@"):
		return r.styles.DiffHunk
	case strings.HasPrefix(line, "+"):
		return r.styles.DiffAdd
	case strings.HasPrefix(line, "-"):
		return r.styles.DiffRemove
	}
	return r.styles.DiffContext
}

func (r *DiffReporter) diffStat(stat diffStat) string {
	parts := []string{plural(stat.files, "file", "files") + " changed"}
	if stat.added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(plural(stat.added, "insertion", "insertions")+"(+)"))
	}
	if stat.removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(plural(stat.removed, "deletion", "deletions")+"(-)"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
