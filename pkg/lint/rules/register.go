package rules

import (
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Fixers
	registry.MustRegister(NewHardTabsRule())            // MD010
	registry.MustRegister(NewTrailingWhitespaceRule())  // MD009
	registry.MustRegister(NewHashSpacingMissingRule())  // MD018
	registry.MustRegister(NewHashSpacingExtraRule())    // MD019
	registry.MustRegister(NewHeaderLeftAlignRule())     // MD023
	registry.MustRegister(NewFirstLineHeaderRule())     // MD041
	registry.MustRegister(NewHeaderStyleRule())         // MD003
	registry.MustRegister(NewOrderedListPrefixRule())   // MD029
	registry.MustRegister(NewBareURLRule())             // MD034
	registry.MustRegister(NewTablePipeStyleRule())      // MD055
	registry.MustRegister(NewBlanksAroundHeadersRule()) // MD022
	registry.MustRegister(NewBlanksAroundListsRule())   // MD032
	registry.MustRegister(NewMultipleBlanksRule())      // MD012
	registry.MustRegister(NewFileEndNewlineRule())      // MD047
	registry.MustRegister(NewFencedCodeLanguageRule())  // MD040

	// Detectors
	registry.MustRegister(NewLineLengthRule())               // MD013
	registry.MustRegister(NewDuplicateHeadingRule())         // MD024
	registry.MustRegister(NewMultipleTopLevelHeadingsRule()) // MD025
	registry.MustRegister(NewInlineHTMLRule())               // MD033
	registry.MustRegister(NewLinkFragmentRule())             // MD051
	registry.MustRegister(NewTableMultilineCellRule())       // MD056
	registry.MustRegister(NewEmphasisAsHeadingRule())        // MD036
}

// RegisterLegacyAliases registers older markdownlint names that differ from
// a rule's canonical Name(), so existing configuration files keep working.
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("single-title", lint.MultipleTopLevelHeadings)
	registry.RegisterAlias("first-line-h1", lint.FirstLineHeader)
	registry.RegisterAlias("no-duplicate-header", lint.DuplicateHeading)
	registry.RegisterAlias("blanks-around-headers", lint.BlanksAroundHeaders)
	registry.RegisterAlias("header-style", lint.HeaderStyle)
	registry.RegisterAlias("header-start-left", lint.HeaderLeftAlign)
	registry.RegisterAlias("no-emphasis-as-header", lint.EmphasisAsHeading)
}

// RuleInfos describes the rules of registry for configuration templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          string(rule.ID()),
			Name:        rule.Name(),
			Description: rule.Description(),
			Kind:        rule.ID().Kind().String(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
		})
	}
	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
