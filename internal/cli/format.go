package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdfmt/internal/configloader"
	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
	_ "github.com/yaklabco/gomdfmt/pkg/lint/rules" // Register built-in rules
	goldmarkparser "github.com/yaklabco/gomdfmt/pkg/parser/goldmark"
	"github.com/yaklabco/gomdfmt/pkg/reporter"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

type formatFlags struct {
	format       string
	ruleFormat   string
	summaryOrder string
	exclude      []string
	strict       bool
	noContext    bool
	compact      bool
}

func newFormatCommand() *cobra.Command {
	var cfg config.Config
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:     "format [paths...]",
		Aliases: []string{"fmt"},
		Short:   "Format Markdown files",
		Long:    formatLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, &cfg, flags)
		},
	}

	addFormatFlags(cmd, &cfg, flags)

	return cmd
}

const formatLongDescription = `Normalize Markdown files in place and report what cannot be fixed.

Fixers rewrite whitespace, headings, lists, bare URLs, tables and blank
lines. Detectors report long lines, duplicate headings, inline HTML and
similar problems without touching the text. Inside fenced code only
whitespace may change; a file whose code blocks would differ in any other
way is left alone.

By default, formats all .md and .markdown files in the current directory
and its subdirectories.

Examples:
  gomdfmt format                      # Format the current directory
  gomdfmt format docs/ README.md      # Format specific paths
  gomdfmt format --check              # Report only, exit 1 if anything would change
  gomdfmt format --dry-run            # Show the changes as a unified diff
  gomdfmt format --rules MD009,MD010  # Run only these rules
  gomdfmt format --format json        # Machine-readable report`

func runFormat(cmd *cobra.Command, args []string, cfg *config.Config, flags *formatFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	if cfg.Check && cfg.DryRun {
		return usageError(errors.New("--check and --dry-run cannot be combined"))
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if !config.SummaryOrder(flags.summaryOrder).IsValid() {
		return usageError(fmt.Errorf("invalid --summary-order %q: must be rules or files", flags.summaryOrder))
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return internalError(fmt.Errorf("get config flag: %w", err))
	}

	workDir, err := os.Getwd()
	if err != nil {
		return internalError(fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     lint.DefaultRegistry,
		CLIConfig:    cfg,
	})
	if err != nil {
		return configError(errors.Join(errors.New("failed to load configuration"), err))
	}

	finalCfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return usageError(err)
	}
	if finalCfg.DryRun && format == reporter.FormatText && !cmd.Flags().Changed("format") {
		format = reporter.FormatDiff
	}

	registry := lint.DefaultRegistry
	selection := lint.ResolveRules(registry, finalCfg)
	logger.Debug("configuration resolved",
		logging.FieldCheck, finalCfg.Check,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldRules, len(selection),
	)

	pipeline := lint.NewPipeline(lint.NewEngine(finalCfg), goldmarkparser.New(goldmarkparser.FlavorGFM), selection)

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir
	runOpts.ExcludeGlobs = slices.Concat(finalCfg.Ignore, flags.exclude)

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, workDir,
	)

	result, runErr := runner.New(pipeline).Run(ctx, runOpts)
	if result == nil {
		if errors.Is(runErr, os.ErrNotExist) {
			return usageError(runErr)
		}
		return internalError(fmt.Errorf("format run failed: %w", runErr))
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		RuleFormat:   finalCfg.RuleFormat,
		SummaryOrder: config.SummaryOrder(flags.summaryOrder),
		Registry:     registry,
		WorkingDir:   workDir,
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return internalError(fmt.Errorf("report results: %w", err))
	}

	if runErr != nil {
		// Partial results were reported; the run itself was interrupted.
		return internalError(fmt.Errorf("format run interrupted: %w", runErr))
	}

	if ExitCodeFromResult(result, flags.strict, finalCfg.Check) != ExitSuccess {
		return ErrIssuesFound
	}
	return nil
}

func addFormatFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) {
	f := cmd.Flags()
	f.BoolVar(&cfg.Check, "check", false, "report issues and pending changes without writing")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "show changes without writing (diff output unless --format is set)")
	f.StringSliceVar(&cfg.OnlyRules, "rules", nil, "run only these rules (IDs, names or MD codes)")
	f.StringSliceVar(&cfg.DisableRules, "disable", nil, "rules to switch off")
	f.StringSliceVar(&cfg.FixRules, "fix-rules", nil, "limit rewriting to these fixers")
	f.StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip, added to the configured ignore list")
	f.BoolVar(&cfg.NoRecursive, "no-recursive", false, "do not descend into subdirectories")
	f.IntVar(&cfg.MaxLineLength, "max-line-length", 0, "line length limit (0 = configured value, default 80)")
	f.IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	f.StringVar(&flags.format, "format", "text", "output format: text, table, json, diff, summary")
	f.BoolVar(&cfg.NoBackups, "no-backups", false, "never create backups, even when configured")
	f.BoolVar(&flags.strict, "strict", false, "exit 1 on warnings as well as errors")
	f.BoolVar(&cfg.NoVerify, "no-verify", false, "skip the code block check of formatted output")
	f.BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	f.BoolVar(&flags.compact, "compact", false, "use compact output (JSON without indentation)")
	f.StringVar(&flags.ruleFormat, "rule-format", "id", "rule identifier format in output: name, id, or combined")
	f.StringVar(&flags.summaryOrder, "summary-order", "rules", "order of tables in summary output: rules, files")
}
