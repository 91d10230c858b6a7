package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	kind       string
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Code        string   `json:"code,omitempty"`
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalogue",
		Long: `List every fixer and detector with its ID, name, markdownlint code,
default severity and whether it runs by default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := filterRulesByKind(lint.DefaultRegistry.Rules(), flags.kind)
			if err != nil {
				return usageError(err)
			}

			switch flags.format {
			case "json":
				return writeRulesJSON(cmd.OutOrStdout(), rules)
			case "text":
				writeRulesText(cmd.OutOrStdout(), rules, config.RuleFormat(flags.ruleFormat))
				return nil
			default:
				return usageError(fmt.Errorf("invalid --format %q: must be text or json", flags.format))
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.kind, "kind", "", "list only fixers or detectors")

	return cmd
}

func filterRulesByKind(rules []lint.Rule, kind string) ([]lint.Rule, error) {
	var want lint.Kind
	switch kind {
	case "":
		return rules, nil
	case "fixer":
		want = lint.KindFixer
	case "detector":
		want = lint.KindDetector
	default:
		return nil, fmt.Errorf("invalid --kind %q: must be fixer or detector", kind)
	}

	filtered := make([]lint.Rule, 0, len(rules))
	for _, rule := range rules {
		if lint.KindOf(rule) == want {
			filtered = append(filtered, rule)
		}
	}
	return filtered, nil
}

func writeRulesText(w io.Writer, rules []lint.Rule, format config.RuleFormat) {
	logger := logging.NewWithWriter(w, "info")

	for _, rule := range rules {
		identifier := config.FormatRuleID(format, string(rule.ID()), rule.Name())
		if rule.Code() != "" {
			identifier += " (" + rule.Code() + ")"
		}

		keyvals := []any{
			logging.FieldKind, lint.KindOf(rule).String(),
			logging.FieldSeverity, rule.DefaultSeverity(),
		}
		if !rule.DefaultEnabled() {
			keyvals = append(keyvals, "enabled", false)
		}
		keyvals = append(keyvals, logging.FieldDescription, rule.Description())

		logger.Info(identifier, keyvals...)
	}
}

func writeRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          string(rule.ID()),
			Name:        rule.Name(),
			Code:        rule.Code(),
			Kind:        lint.KindOf(rule).String(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return internalError(fmt.Errorf("encode rules: %w", err))
	}
	return nil
}
