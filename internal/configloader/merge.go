package configloader

import (
	"cmp"
	"maps"

	"github.com/yaklabco/gomdfmt/pkg/config"
)

// merge layers override on top of base and returns a new config.
//
// Non-zero scalars in override win. Booleans are sticky: a layer can switch
// a flag on but never off. Slices are replaced wholesale when override sets
// them. Rules merge per rule, and their options per key.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	out.MaxLineLength = cmp.Or(override.MaxLineLength, base.MaxLineLength)
	out.SeverityDefault = cmp.Or(override.SeverityDefault, base.SeverityDefault)
	out.Format = cmp.Or(override.Format, base.Format)
	out.RuleFormat = cmp.Or(override.RuleFormat, base.RuleFormat)
	out.Jobs = cmp.Or(override.Jobs, base.Jobs)
	out.Backups.Mode = cmp.Or(override.Backups.Mode, base.Backups.Mode)

	for _, flag := range []struct {
		dst *bool
		set bool
	}{
		{&out.Check, override.Check},
		{&out.DryRun, override.DryRun},
		{&out.NoRecursive, override.NoRecursive},
		{&out.NoBackups, override.NoBackups},
		{&out.NoVerify, override.NoVerify},
		{&out.Backups.Enabled, override.Backups.Enabled},
	} {
		*flag.dst = *flag.dst || flag.set
	}

	out.Ignore = replaced(base.Ignore, override.Ignore)
	out.Extensions = replaced(base.Extensions, override.Extensions)
	out.OnlyRules = replaced(base.OnlyRules, override.OnlyRules)
	out.DisableRules = replaced(base.DisableRules, override.DisableRules)
	out.FixRules = replaced(base.FixRules, override.FixRules)

	out.Rules = mergeRules(base.Rules, override.Rules)
	return &out
}

func replaced(base, override []string) []string {
	if override != nil {
		return override
	}
	return base
}

// mergeRules returns a fresh map holding base with override layered on.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]config.RuleConfig, len(override))
	}
	for id, rc := range override {
		out[id] = mergeRuleConfig(out[id], rc)
	}
	return out
}

func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	out := base
	if override.Enabled != nil {
		out.Enabled = override.Enabled
	}
	if override.Severity != nil {
		out.Severity = override.Severity
	}
	if override.Options != nil {
		out.Options = maps.Clone(base.Options)
		if out.Options == nil {
			out.Options = make(map[string]any, len(override.Options))
		}
		maps.Copy(out.Options, override.Options)
	}
	return out
}

// MergeAll folds configs left to right; later configs take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
