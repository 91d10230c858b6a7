package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdfmt/internal/configloader"
	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

type migrateFlags struct {
	force  bool
	output string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [markdownlint-config]",
		Short: "Convert a markdownlint configuration",
		Long: `Convert a markdownlint configuration (.markdownlint.json, .jsonc, .yaml)
into ` + configloader.DefaultConfigFile + `.

Rule keys may be MD codes, rule names, legacy aliases or tags. The MD013
line_length option becomes max_line_length. Keys without a gomdfmt
equivalent are reported and skipped. JavaScript configs cannot be converted.

Without an argument the current directory is searched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runMigrate(input, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultConfigFile, "output file path")

	return cmd
}

func runMigrate(input string, flags *migrateFlags) error {
	logger := logging.NewInteractive()

	if input == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return internalError(fmt.Errorf("get working directory: %w", err))
		}
		input = configloader.FindMarkdownlintConfig(cwd)
		if input == "" {
			return usageError(errors.New("no markdownlint configuration found in the current directory"))
		}
		logger.Info("found markdownlint config", logging.FieldPath, input)
	}

	if !configloader.CanMigrate(input) {
		return configError(errors.New(configloader.MigrationWarning(input)))
	}
	if err := checkOutputPath(flags.output, flags.force); err != nil {
		return err
	}

	result, err := configloader.ConvertMarkdownlintConfig(input, lint.DefaultRegistry)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return usageError(err)
		}
		return configError(fmt.Errorf("convert %s: %w", input, err))
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if err := configloader.WriteMigratedConfig(result, flags.output); err != nil {
		return internalError(err)
	}

	logger.Info("migration complete", logging.FieldPath, input, logging.FieldOutput, flags.output)
	if len(result.Warnings) > 0 {
		logger.Warn("review the warnings above before deleting the old file")
	}
	return nil
}
