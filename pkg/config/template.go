package config

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

const commentWrapWidth = 70

// TemplateOptions controls what init writes.
type TemplateOptions struct {
	Full         bool     // document every rule instead of a short commented example
	IncludeRules []string // with Full, only these rule IDs
}

// RuleInfo describes a rule for the generated config.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Kind        string // fixer | detector
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// RuleInfoProvider lists the registered rules. It exists so this package
// does not import the rule engine.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is installed by the rules package.
//
//nolint:gochecknoglobals // Set once from an init function.
var DefaultRuleInfoProvider RuleInfoProvider

const templateSettings = `

# Maximum line length reported by LINE_LENGTH
max_line_length: 80

# Default severity for detector findings: error, warning, or info
severity_default: warning

# Glob patterns (relative to the working directory) to skip
ignore:
  - "vendor/**"
  - "node_modules/**"

# Write a <file>.gomdfmt.bak copy before rewriting a file
backups:
  enabled: false
  mode: sidecar
`

const templateRulesExample = `
# Per-rule configuration, keyed by rule ID, markdownlint code, or name
# rules:
#   LINE_LENGTH:
#     enabled: false
#   FENCED_CODE_LANGUAGE:
#     enabled: true
`

// GenerateTemplate renders a commented YAML configuration file.
func GenerateTemplate(opts TemplateOptions) []byte {
	var sb strings.Builder
	sb.WriteString(DefaultTemplateHeader())
	sb.WriteString(templateSettings)

	if !opts.Full {
		sb.WriteString(templateRulesExample)
		return []byte(sb.String())
	}

	sb.WriteString("\n# Per-rule configuration\nrules:\n")
	for _, rule := range DefaultRuleInfos() {
		if len(opts.IncludeRules) > 0 && !slices.Contains(opts.IncludeRules, rule.ID) {
			continue
		}
		writeRule(&sb, rule)
	}
	return []byte(sb.String())
}

func writeRule(w io.Writer, rule RuleInfo) {
	fmt.Fprintf(w, "\n  # %s (%s, %s)\n  # %s\n", rule.ID, rule.Name, rule.Kind,
		wrapComment(rule.Description, commentWrapWidth))
	if len(rule.Tags) > 0 {
		fmt.Fprintf(w, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
	}
	fmt.Fprintf(w, "  %s:\n    enabled: %t\n", rule.ID, rule.Enabled)
	if rule.Kind == "detector" {
		fmt.Fprintf(w, "    severity: %s\n", rule.Severity)
	}
}

// DefaultRuleInfos returns the registered rules ordered by ID.
func DefaultRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}
	infos := DefaultRuleInfoProvider()
	slices.SortFunc(infos, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })
	return infos
}

// wrapComment fills words into lines of at most width bytes, joined as
// continuation lines of an indented YAML comment. A single word longer
// than width gets a line of its own.
func wrapComment(text string, width int) string {
	if len(text) <= width {
		return text
	}
	var lines []string
	for _, word := range strings.Fields(text) {
		last := len(lines) - 1
		if last >= 0 && len(lines[last])+1+len(word) <= width {
			lines[last] += " " + word
			continue
		}
		lines = append(lines, word)
	}
	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader is the comment block at the top of generated files.
func DefaultTemplateHeader() string {
	return "# gomdfmt configuration\n# See: https://github.com/yaklabco/gomdfmt"
}
