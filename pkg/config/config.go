// Package config holds the configuration model shared by the loader, the
// rule engine and the reporters. It does no I/O of its own.
package config

import "cmp"

// DefaultMaxLineLength is the line length limit used when none is configured.
const DefaultMaxLineLength = 80

// Severity of a reported issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig overrides one rule. Nil pointers leave the rule's default.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Severity *string        `mapstructure:"severity" yaml:"severity,omitempty"`
	Options  map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

// BackupsConfig decides whether a copy is kept before a file is rewritten.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // sidecar | none
}

// OutputFormat names a reporter.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // no-trailing-spaces
	RuleFormatID       RuleFormat = "id"       // TRAILING_WHITESPACE
	RuleFormatCombined RuleFormat = "combined" // TRAILING_WHITESPACE/no-trailing-spaces
)

// FormatRuleID renders a rule as format asks. Rules without a name are
// always shown by ID.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleName == "":
		return ruleID
	case format == RuleFormatName:
		return ruleName
	case format == RuleFormatCombined:
		return ruleID + "/" + ruleName
	}
	return ruleID
}

// SummaryOrder picks which table the summary reporter prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

func (s SummaryOrder) IsValid() bool {
	return s == SummaryOrderRules || s == SummaryOrderFiles
}

// Config is the resolved configuration of a run.
//
// The first group of fields is read from and written to config files. The
// rest come from the command line only and carry a "-" tag.
type Config struct {
	MaxLineLength   int                   `mapstructure:"max_line_length" yaml:"max_line_length"`
	SeverityDefault string                `mapstructure:"severity_default" yaml:"severity_default"`
	Rules           map[string]RuleConfig `mapstructure:"rules" yaml:"rules"` // keyed by rule ID or alias
	Ignore          []string              `mapstructure:"ignore" yaml:"ignore"`
	Extensions      []string              `mapstructure:"extensions" yaml:"extensions,omitempty"`
	Backups         BackupsConfig         `mapstructure:"backups" yaml:"backups"`

	Check       bool         `mapstructure:"-" yaml:"-"` // report only, never write
	DryRun      bool         `mapstructure:"-" yaml:"-"` // compute diffs, never write
	Format      OutputFormat `mapstructure:"-" yaml:"-"`
	RuleFormat  RuleFormat   `mapstructure:"-" yaml:"-"`
	Jobs        int          `mapstructure:"-" yaml:"-"` // 0 means one per CPU
	NoRecursive bool         `mapstructure:"-" yaml:"-"`

	OnlyRules    []string `mapstructure:"-" yaml:"-"`
	DisableRules []string `mapstructure:"-" yaml:"-"`
	FixRules     []string `mapstructure:"-" yaml:"-"` // fixers allowed to rewrite

	NoBackups bool `mapstructure:"-" yaml:"-"`
	NoVerify  bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		MaxLineLength:   DefaultMaxLineLength,
		SeverityDefault: string(SeverityWarning),
		Rules:           map[string]RuleConfig{},
		Backups:         BackupsConfig{Mode: "sidecar"},
		Format:          FormatText,
		RuleFormat:      RuleFormatID,
	}
}

// EffectiveMaxLineLength returns MaxLineLength, or the default when unset.
func (c *Config) EffectiveMaxLineLength() int {
	if c == nil || c.MaxLineLength < 0 {
		return DefaultMaxLineLength
	}
	return cmp.Or(c.MaxLineLength, DefaultMaxLineLength)
}
