// Package pretty renders issues, summaries and tables for the terminal.
package pretty

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI palette indexes.
const (
	grey   = lipgloss.Color("8")
	red    = lipgloss.Color("9")
	green  = lipgloss.Color("10")
	yellow = lipgloss.Color("11")
	blue   = lipgloss.Color("12")
	cyan   = lipgloss.Color("14")
	light  = lipgloss.Color("7")
)

// Styles holds one lipgloss style per output element. Without color every
// style is plain and renders text unchanged.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableFixedRow  lipgloss.Style
	TableFixed     lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// painter builds styles, or plain styles when color is off.
type painter struct{ color bool }

func (p painter) fg(c lipgloss.Color) lipgloss.Style {
	if !p.color {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

func (p painter) bold(c lipgloss.Color) lipgloss.Style {
	if !p.color {
		return lipgloss.NewStyle()
	}
	style := lipgloss.NewStyle().Bold(true)
	if c != "" {
		style = style.Foreground(c)
	}
	return style
}

func (p painter) italic(c lipgloss.Color) lipgloss.Style {
	if !p.color {
		return lipgloss.NewStyle()
	}
	return p.fg(c).Italic(true)
}

// NewStyles returns the styles for the given color setting.
func NewStyles(colorEnabled bool) *Styles {
	p := painter{color: colorEnabled}
	return &Styles{
		Error:   p.bold(red),
		Warning: p.bold(yellow),
		Info:    p.bold(blue),

		FilePath:   p.bold(""),
		Location:   p.fg(grey),
		RuleID:     p.fg(grey),
		Message:    lipgloss.NewStyle(),
		Suggestion: p.italic(green),
		SourceLine: p.fg(light),
		Caret:      p.fg(red),

		DiffHeader:  p.bold(""),
		DiffHunk:    p.fg(cyan),
		DiffAdd:     p.fg(green),
		DiffRemove:  p.fg(red),
		DiffContext: p.fg(grey),

		SummaryTitle: p.bold(""),
		SummaryValue: lipgloss.NewStyle(),
		Success:      p.bold(green),
		Failure:      p.bold(red),

		TableHeader:    p.bold(light),
		TableErrorRow:  p.fg(red),
		TableWarnRow:   p.fg(yellow),
		TableInfoRow:   p.fg(blue),
		TableFixedRow:  p.fg(light),
		TableFixed:     p.fg(green),
		TableLegend:    p.italic(grey),
		TableSeparator: p.fg(grey),

		Dim:  p.fg(grey),
		Bold: p.bold(""),
	}
}

// ValidateColorMode rejects values other than auto, always and never.
// The empty string means auto.
func ValidateColorMode(mode string) error {
	switch mode {
	case "", ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("invalid color mode %q: must be auto, always, or never", mode)
	}
}

// IsColorEnabled reports whether output to writer should be colored.
// In auto mode (and for unrecognized modes) color needs a terminal and an
// unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
