// Package cli wires the gomdfmt commands together with cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

const rootLong = `gomdfmt normalizes Markdown files line by line.

Fixers repair whitespace, headings, list numbering, bare URLs, table pipes
and blank lines. Detectors report what needs a human: long lines, duplicate
headings, inline HTML, broken fragment links. Formatting the output a second
time changes nothing, and the words inside fenced code blocks never change.`

// globalFlags are the persistent flags every subcommand sees. Subcommands
// read --config and --color back through cmd.Flags().
type globalFlags struct {
	debug  bool
	config string
	color  string
}

// NewRootCommand builds the gomdfmt command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "gomdfmt",
		Short:         "A safe, idempotent Markdown formatter",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := pretty.ValidateColorMode(flags.color); err != nil {
				return usageError(err)
			}
			if flags.debug {
				logging.SetLevel("debug")
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.config, "config", "", "path to config file")
	pf.StringVar(&flags.color, "color", pretty.ColorAuto, "colorize output: auto, always, never")

	root.AddCommand(
		newFormatCommand(),
		newRulesCommand(),
		newInitCommand(),
		newMigrateCommand(),
		newRestoreCommand(),
		newVersionCommand(info),
	)

	ApplyHelp(root)
	return root
}
