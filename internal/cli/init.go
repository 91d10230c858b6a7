package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdfmt/internal/configloader"
	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/config"
)

const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	full   bool
	rules  []string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gomdfmt configuration file",
		Long: `Create a ` + configloader.DefaultConfigFile + ` file in the current directory.

The minimal template sets the line length, ignore patterns and backups.
--full adds a commented entry for every rule in the catalogue.

Examples:
  gomdfmt init                           Create a minimal ` + configloader.DefaultConfigFile + `
  gomdfmt init --full                    Document every rule
  gomdfmt init --full --rules LINE_LENGTH,INLINE_HTML
  gomdfmt init --output docs/gomdfmt.yml Write somewhere else`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule")
	cmd.Flags().StringSliceVar(&flags.rules, "rules", nil, "with --full, document only these rule IDs")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultConfigFile, "output file path")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	if len(flags.rules) > 0 && !flags.full {
		return usageError(errors.New("--rules requires --full"))
	}

	if err := checkOutputPath(flags.output, flags.force); err != nil {
		return err
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Full:         flags.full,
		IncludeRules: flags.rules,
	})

	if err := os.WriteFile(flags.output, content, configFilePermissions); err != nil {
		return internalError(fmt.Errorf("write %s: %w", flags.output, err))
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'gomdfmt rules' to see the rule catalogue")
	return nil
}

// checkOutputPath refuses to replace an existing file unless force is set.
func checkOutputPath(path string, force bool) error {
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return internalError(fmt.Errorf("stat %s: %w", path, err))
	case !force:
		return usageError(fmt.Errorf("%s already exists; use --force to overwrite", filepath.Clean(path)))
	default:
		logging.NewInteractive().Warn("overwriting existing file", logging.FieldPath, path)
		return nil
	}
}
