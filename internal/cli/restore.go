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
	"github.com/yaklabco/gomdfmt/pkg/fsutil"
	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

type restoreFlags struct {
	clean   bool
	keep    bool
	exclude []string
}

func newRestoreCommand() *cobra.Command {
	flags := &restoreFlags{}

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Undo formatting from " + fsutil.BackupSuffix + " backups",
		Long: `Copy sidecar backups written by "format" (with backups enabled) back over
their Markdown files, then delete the backups.

Files are found the same way "format" finds them. Files without a backup
are left alone.

Examples:
  gomdfmt restore                 # Restore everything under the current directory
  gomdfmt restore docs/ --keep    # Restore but keep the backups
  gomdfmt restore --clean         # Delete backups without restoring`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.clean, "clean", false, "delete backups without restoring them")
	cmd.Flags().BoolVar(&flags.keep, "keep", false, "keep backups after restoring")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip, added to the configured ignore list")

	return cmd
}

func runRestore(cmd *cobra.Command, args []string, flags *restoreFlags) error {
	if flags.clean && flags.keep {
		return usageError(errors.New("--clean and --keep cannot be combined"))
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewInteractive()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return internalError(fmt.Errorf("get config flag: %w", err))
	}
	workDir, err := os.Getwd()
	if err != nil {
		return internalError(fmt.Errorf("get working directory: %w", err))
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:     workDir,
		ExplicitPath:   configPath,
		Registry:       lint.DefaultRegistry,
		NonInteractive: true,
	})
	if err != nil {
		return configError(errors.Join(errors.New("failed to load configuration"), err))
	}

	opts := runner.OptionsFromConfig(loaded.Config, args)
	opts.WorkingDir = workDir
	opts.ExcludeGlobs = slices.Concat(loaded.Config.Ignore, flags.exclude)

	files, err := runner.Discover(ctx, opts)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return usageError(err)
		}
		return internalError(err)
	}

	var done int
	for _, path := range files {
		ok, err := restoreOne(ctx, path, flags)
		if err != nil {
			return internalError(err)
		}
		if ok {
			done++
			logger.Debug("restored", logging.FieldPath, path)
		}
	}

	verb := "restored"
	if flags.clean {
		verb = "removed backups of"
	}
	logger.Info(fmt.Sprintf("%s %d of %d files", verb, done, len(files)))
	return nil
}

// restoreOne handles a single file and reports whether it had a backup.
func restoreOne(ctx context.Context, path string, flags *restoreFlags) (bool, error) {
	const mode = fsutil.BackupModeSidecar

	if !fsutil.BackupExists(path, mode) {
		return false, nil
	}
	if !flags.clean {
		if _, err := fsutil.RestoreBackup(ctx, path, mode); err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}
	}
	if !flags.keep {
		if _, err := fsutil.RemoveBackup(path, mode); err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}
	}
	return true, nil
}
