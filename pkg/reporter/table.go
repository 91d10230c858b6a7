package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

const fallbackWidth = 100

// TableReporter lays the run out as one table row per issue and per
// applied fixer, sized to the terminal.
type TableReporter struct {
	opts   Options
	styles *pretty.Styles
	table  *pretty.TableFormatter
}

// NewTableReporter creates a table reporter.
func NewTableReporter(opts Options) *TableReporter {
	color := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(color)
	return &TableReporter{
		opts:   opts,
		styles: styles,
		table:  pretty.NewTableFormatter(styles, color, terminalWidth(opts.Writer), opts.RuleFormat, opts.Registry),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		r.note(bw, r.styles.Success.Render("No files to format."))
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		fmt.Fprintf(bw, "%s: %s\n",
			r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
			r.styles.Error.Render("error: "+file.Error.Error()))
	}

	stats := result.Stats
	rendered := r.table.FormatTable(result, r.opts.displayPath)
	if rendered == "" {
		r.note(bw,
			r.styles.Success.Render("All files formatted"),
			r.styles.Dim.Render(fmt.Sprintf("%d files checked", stats.FilesProcessed)))
		return 0, nil
	}

	fmt.Fprint(bw, rendered)
	if r.opts.ShowSummary {
		fmt.Fprintln(bw, r.table.FormatTableSummary(stats, ""))
		if stats.FilesChanged > stats.FilesModified {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, r.styles.Dim.Render("Run without --check or --dry-run to write the changes"))
		}
	}
	return stats.IssuesTotal, nil
}

// note prints lines only when summaries are enabled.
func (r *TableReporter) note(w io.Writer, lines ...string) {
	if !r.opts.ShowSummary {
		return
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallbackWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return fallbackWidth
}
