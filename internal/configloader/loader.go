// Package configloader resolves gomdfmt configuration.
// It implements XDG-style config discovery, layered merging, GOMDFMT_*
// environment overrides, validation, and conversion of markdownlint configs.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

const configFilePermissions = 0o644

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to
	// the process working directory.
	WorkingDir string

	// ExplicitPath is the --config file. It disables markdownlint detection.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool
	IgnoreMarkdownlint  bool

	// NonInteractive replaces the conversion prompt with a warning.
	NonInteractive bool

	// Prompt overrides the streams of the conversion prompt, which are
	// stdin and stderr otherwise.
	Prompt *PromptIO

	// Registry resolves rule keys. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig holds flag values. It is applied last.
	CLIConfig *config.Config
}

// PromptIO carries the streams used for the markdownlint conversion prompt.
type PromptIO struct {
	In  io.Reader
	Out io.Writer
}

// LoadResult is the outcome of Load.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files merged, lowest precedence first.
	LoadedFrom []string
	Warnings   []string

	// MigrationPerformed is set when a markdownlint config was converted
	// during this load.
	MigrationPerformed bool
}

// Load resolves the effective configuration. Later sources override
// earlier ones:
//
//	defaults < system < user < project < --config < GOMDFMT_* < flags
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result := &LoadResult{Paths: paths}

	if opts.ExplicitPath == "" && !opts.IgnoreMarkdownlint && !opts.IgnoreProjectConfig {
		migrated, err := handleMarkdownlintConfig(paths, result, opts, registry, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			if paths, err = DiscoverPaths(ctx, workDir); err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
			result.Paths = paths
		}
	}
	paths.Explicit = opts.ExplicitPath

	cfg := config.NewConfig()
	for _, l := range opts.layers(paths) {
		fileCfg, err := loadConfigFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", l.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, l.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	normalizeRuleKeys(cfg, registry, result)

	validation := validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

type configLayer struct {
	name string
	path string
}

// layers lists the config files to merge, lowest precedence first.
func (opts LoadOptions) layers(paths *ConfigPaths) []configLayer {
	all := []struct {
		configLayer
		skip bool
	}{
		{configLayer{"system", paths.System}, opts.IgnoreSystemConfig},
		{configLayer{"user", paths.User}, opts.IgnoreUserConfig},
		{configLayer{"project", paths.Project}, opts.IgnoreProjectConfig},
		{configLayer{"explicit", paths.Explicit}, false},
	}
	var out []configLayer
	for _, l := range all {
		if !l.skip && l.path != "" {
			out = append(out, l.configLayer)
		}
	}
	return out
}

func loadConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// handleMarkdownlintConfig deals with a markdownlint config found next to
// a project that has no gomdfmt config. It reports whether a converted
// config was written.
func handleMarkdownlintConfig(
	paths *ConfigPaths,
	result *LoadResult,
	opts LoadOptions,
	registry *lint.Registry,
	workDir string,
) (bool, error) {
	source := paths.Markdownlint
	warn := func(format string, args ...any) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	}

	switch {
	case source == "":
		return false, nil
	case paths.Project != "":
		warn("both %s and %s exist; using %s",
			filepath.Base(paths.Project), filepath.Base(source), filepath.Base(paths.Project))
		return false, nil
	case !CanMigrate(source):
		warn("%s", MigrationWarning(source))
		return false, nil
	}

	prompt := opts.Prompt
	if prompt == nil && !opts.NonInteractive && term.IsTerminal(int(os.Stdin.Fd())) {
		prompt = &PromptIO{In: os.Stdin, Out: os.Stderr}
	}
	if prompt == nil || opts.NonInteractive {
		warn("found %s but no %s; run 'gomdfmt migrate' to convert it", filepath.Base(source), DefaultConfigFile)
		return false, nil
	}

	if ok, err := confirmMigration(prompt, source); err != nil || !ok {
		return false, err
	}

	migration, err := ConvertMarkdownlintConfig(source, registry)
	if err != nil {
		return false, fmt.Errorf("convert markdownlint config: %w", err)
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	if err := WriteMigratedConfig(migration, filepath.Join(workDir, DefaultConfigFile)); err != nil {
		return false, err
	}
	result.MigrationPerformed = true
	warn("converted %s to %s; the old file can be deleted", filepath.Base(source), DefaultConfigFile)
	return true, nil
}

// confirmMigration asks whether to convert source. An empty answer means yes.
func confirmMigration(prompt *PromptIO, source string) (bool, error) {
	if _, err := fmt.Fprintf(prompt.Out, "Found %s but no %s\nConvert it to gomdfmt format? [Y/n] ",
		filepath.Base(source), DefaultConfigFile); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	scanner := bufio.NewScanner(prompt.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("read response: %w", err)
		}
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "", "y", "yes":
		return true, nil
	}
	return false, nil
}

// WriteMigratedConfig writes a converted config under a header naming its source.
func WriteMigratedConfig(migration *MigrationResult, path string) error {
	body, err := migration.Config.ToYAML()
	if err != nil {
		return err
	}
	content := MigrationHeader(migration.SourcePath) + "\n" + string(body)
	if err := os.WriteFile(path, []byte(content), configFilePermissions); err != nil {
		return fmt.Errorf("write migrated config: %w", err)
	}
	return nil
}

// normalizeRuleKeys rewrites rule names, MD codes and aliases to canonical
// IDs. Keys are visited in sorted order; when two keys name the same rule
// the later one wins and a warning is recorded. Unknown keys are kept for
// validation to report.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	owner := make(map[lint.RuleID]string)
	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		rc := cfg.Rules[key]
		id, _, ok := registry.Resolve(key)
		if !ok {
			normalized[key] = rc
			continue
		}
		if prev, dup := owner[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q", prev, key, id, key))
		}
		owner[id] = key
		normalized[string(id)] = rc
	}
	cfg.Rules = normalized
}
