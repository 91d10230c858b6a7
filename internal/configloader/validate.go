package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// ValidationError is a single problem found in a configuration.
type ValidationError struct {
	Field    string // e.g. "rules.LINE_LENGTH.severity"
	Value    any
	Message  string
	FilePath string // config file, when known
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FilePath, e.Field} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult holds the findings of a validation pass. Errors stop
// loading; warnings are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns the errors followed by the warnings, each prefixed
// with its level.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// oneOf records an error when value is set but not among allowed.
func oneOf[T ~string](r *ValidationResult, field, what string, value T, allowed ...T) {
	if value == "" || slices.Contains(allowed, value) {
		return
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	r.fail(field, value, "invalid %s %q; must be one of: %s", what, value, strings.Join(names, ", "))
}

//nolint:gochecknoglobals // Read-only enumerations.
var (
	severities = []string{
		string(config.SeverityError), string(config.SeverityWarning), string(config.SeverityInfo),
	}
	outputFormats = []config.OutputFormat{
		config.FormatText, config.FormatTable, config.FormatJSON, config.FormatDiff, config.FormatSummary,
	}
	ruleFormats = []config.RuleFormat{config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined}
	backupModes = []string{"sidecar", "none"}
)

// Validate checks cfg against the built-in rule registry.
func Validate(cfg *config.Config) *ValidationResult {
	return validate(cfg, lint.DefaultRegistry)
}

// ValidateWithFile is Validate with filePath recorded on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, list := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return result
}

// IsValidSeverity reports whether s names a severity.
func IsValidSeverity(s string) bool { return slices.Contains(severities, s) }

// IsValidFormat reports whether f names an output format.
func IsValidFormat(f config.OutputFormat) bool { return slices.Contains(outputFormats, f) }

func validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	r := &ValidationResult{}
	if cfg == nil {
		return r
	}

	if cfg.MaxLineLength < 0 {
		r.fail("max_line_length", cfg.MaxLineLength, "max_line_length must not be negative (0 means the default)")
	}
	if cfg.Jobs < 0 {
		r.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	oneOf(r, "severity_default", "severity", cfg.SeverityDefault, severities...)
	oneOf(r, "format", "format", cfg.Format, outputFormats...)
	oneOf(r, "rule_format", "rule format", cfg.RuleFormat, ruleFormats...)
	oneOf(r, "backups.mode", "backup mode", cfg.Backups.Mode, backupModes...)

	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			r.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			r.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	validateRules(cfg, registry, r)
	validateSelections(cfg, registry, r)
	return r
}

// validateRules checks the rules map. Keys the registry knows have already
// been rewritten to canonical IDs.
func validateRules(cfg *config.Config, registry *lint.Registry, r *ValidationResult) {
	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		rc := cfg.Rules[key]
		if _, ok := registry.Get(lint.RuleID(key)); !ok {
			r.warn("rules."+key, key, "unknown rule %q; it will be ignored", key)
		}
		if rc.Severity != nil {
			oneOf(r, "rules."+key+".severity", "severity", *rc.Severity, severities...)
		}
	}
}

// validateSelections rejects unknown keys in the command-line rule lists,
// and detectors named in --fix-rules.
func validateSelections(cfg *config.Config, registry *lint.Registry, r *ValidationResult) {
	selections := []struct {
		field string
		keys  []string
	}{
		{"rules", cfg.OnlyRules},
		{"disable", cfg.DisableRules},
		{"fix-rules", cfg.FixRules},
	}
	for _, sel := range selections {
		for _, key := range sel.keys {
			id, _, ok := registry.Resolve(key)
			switch {
			case !ok:
				r.fail(sel.field, key, "unknown rule %q", key)
			case sel.field == "fix-rules" && id.Kind() != lint.KindFixer:
				r.fail(sel.field, key, "%s is a detector and cannot fix", id)
			}
		}
	}
}
