package lint

import "github.com/yaklabco/gomdfmt/pkg/config"

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	Rule Rule

	// Severity is applied to every issue the rule reports.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules with their configuration.
//
// Enablement is decided in this order, later steps winning: the rule's
// default, its rules.<id>.enabled entry, the OnlyRules restriction, the
// FixRules restriction (fixers only), and DisableRules. Keys in any of these
// may be IDs, names or aliases; unknown keys are ignored.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	ruleConfigs := resolveRuleConfigs(registry, cfg)
	var only, fixOnly, disabled map[RuleID]bool
	if cfg != nil {
		only = resolveIDSet(registry, cfg.OnlyRules)
		fixOnly = resolveIDSet(registry, cfg.FixRules)
		disabled = resolveIDSet(registry, cfg.DisableRules)
	}

	for _, rule := range registry.Rules() {
		id := rule.ID()
		enabled := rule.DefaultEnabled()
		severity := rule.DefaultSeverity()
		if cfg != nil && cfg.SeverityDefault != "" {
			severity = config.Severity(cfg.SeverityDefault)
		}

		ruleCfg, hasCfg := ruleConfigs[id]
		if hasCfg {
			if ruleCfg.Enabled != nil {
				enabled = *ruleCfg.Enabled
			}
			if ruleCfg.Severity != nil {
				severity = config.Severity(*ruleCfg.Severity)
			}
		}
		if len(only) > 0 {
			enabled = only[id]
		}
		if len(fixOnly) > 0 && id.Kind() == KindFixer {
			enabled = fixOnly[id]
		}
		if disabled[id] {
			enabled = false
		}
		if !enabled {
			continue
		}

		rr := ResolvedRule{Rule: rule, Severity: severity}
		if hasCfg {
			rr.Config = &ruleCfg
		}
		resolved = append(resolved, rr)
	}

	return resolved
}

// Select builds a rule selection from explicit fixer and detector lists.
// A nil list selects the rules of that kind that are enabled by default.
// Unknown IDs, and IDs naming a rule of the other kind, are ignored.
func Select(registry *Registry, fixers, detectors []string) []ResolvedRule {
	fixerSet := resolveIDSet(registry, fixers)
	detectorSet := resolveIDSet(registry, detectors)

	var selected []ResolvedRule
	for _, rule := range registry.Rules() {
		var pick bool
		switch rule.ID().Kind() {
		case KindFixer:
			pick = fixerSet[rule.ID()] || (fixers == nil && rule.DefaultEnabled())
		case KindDetector:
			pick = detectorSet[rule.ID()] || (detectors == nil && rule.DefaultEnabled())
		case KindUnknown:
		}
		if pick {
			selected = append(selected, ResolvedRule{Rule: rule, Severity: rule.DefaultSeverity()})
		}
	}
	return selected
}

func resolveIDSet(registry *Registry, keys []string) map[RuleID]bool {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[RuleID]bool, len(keys))
	for _, key := range keys {
		if id, _, ok := registry.Resolve(key); ok {
			set[id] = true
		}
	}
	return set
}

func resolveRuleConfigs(registry *Registry, cfg *config.Config) map[RuleID]config.RuleConfig {
	if cfg == nil || len(cfg.Rules) == 0 {
		return nil
	}
	out := make(map[RuleID]config.RuleConfig, len(cfg.Rules))
	for key, rc := range cfg.Rules {
		if id, _, ok := registry.Resolve(key); ok {
			out[id] = rc
		}
	}
	return out
}
