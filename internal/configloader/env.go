package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/config"
)

// envVarPrefix is the prefix for all gomdfmt environment variables.
const envVarPrefix = "GOMDFMT_"

// envVar binds one GOMDFMT_* variable to the config field it sets.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringSetter(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%q is not an integer", value)
		}
		set(cfg, n)
		return nil
	}
}

func sliceSetter(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}
}

// envVars lists the supported environment variables in documentation order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"MAX_LINE_LENGTH", "Line length limit for the line length detector",
		intSetter(func(c *config.Config, v int) { c.MaxLineLength = v })},
	{"SEVERITY_DEFAULT", "Default severity: error, warning, or info",
		stringSetter(func(c *config.Config, v string) { c.SeverityDefault = v })},
	{"CHECK", "Report only, never write: true or false",
		boolSetter(func(c *config.Config, v bool) { c.Check = v })},
	{"DRY_RUN", "Show diffs without writing: true or false",
		boolSetter(func(c *config.Config, v bool) { c.DryRun = v })},
	{"JOBS", "Number of parallel workers (0 = auto)",
		intSetter(func(c *config.Config, v int) { c.Jobs = v })},
	{"FORMAT", "Output format: text, table, json, diff, or summary",
		stringSetter(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"BACKUPS_ENABLED", "Create backups before writing: true or false",
		boolSetter(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none",
		stringSetter(func(c *config.Config, v string) { c.Backups.Mode = v })},
	{"NO_BACKUPS", "Disable backups: true or false",
		boolSetter(func(c *config.Config, v bool) { c.NoBackups = v })},
	{"IGNORE", "Comma-separated list of ignore patterns",
		sliceSetter(func(c *config.Config, v []string) { c.Ignore = v })},
	{"EXTENSIONS", "Comma-separated list of Markdown file extensions",
		sliceSetter(func(c *config.Config, v []string) { c.Extensions = v })},
	{"NO_VERIFY", "Skip the structure check of formatted output: true or false",
		boolSetter(func(c *config.Config, v bool) { c.NoVerify = v })},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with GOMDFMT_ (e.g., GOMDFMT_MAX_LINE_LENGTH).
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace and empty elements are dropped.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// EnvVarHelp describes one supported environment variable.
type EnvVarHelp struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables, sorted by name.
func ListEnvVars() []EnvVarHelp {
	help := make([]EnvVarHelp, 0, len(envVars))
	for _, v := range envVars {
		help = append(help, EnvVarHelp{Name: envVarPrefix + v.suffix, Description: v.description})
	}
	slices.SortFunc(help, func(a, b EnvVarHelp) int { return strings.Compare(a.Name, b.Name) })
	return help
}
