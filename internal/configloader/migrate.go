package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// MigrationResult contains the result of converting a markdownlint config.
type MigrationResult struct {
	// Config is the converted configuration.
	Config *config.Config

	// Warnings contains keys that could not be carried over.
	Warnings []string

	// SourcePath is the path to the markdownlint config.
	SourcePath string
}

// ConvertMarkdownlintConfig converts a markdownlint JSON, JSONC or YAML
// config. Rule keys (MD codes, names, aliases) and tags resolve through
// registry; the MD013 line_length option becomes max_line_length.
func ConvertMarkdownlintConfig(path string, registry *lint.Registry) (*MigrationResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config %q; write %s by hand", path, DefaultConfigFile)
	}
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if IsJSONConfig(path) {
		if err := json.Unmarshal(stripJSONComments(content), &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	result := &MigrationResult{SourcePath: path}
	cfg := config.NewConfig()

	disableByDefault := processSpecialKeys(raw, result)
	if disableByDefault {
		off := false
		for _, rule := range registry.Rules() {
			cfg.Rules[string(rule.ID())] = config.RuleConfig{Enabled: &off}
		}
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		processRuleKey(cfg, registry, key, raw[key], result)
	}

	result.Config = cfg
	return result, nil
}

// stripJSONComments removes // and /* */ comments outside string literals.
func stripJSONComments(content []byte) []byte {
	out := make([]byte, 0, len(content))
	inString := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if inString {
			out = append(out, ch)
			switch ch {
			case '\\':
				if i+1 < len(content) {
					i++
					out = append(out, content[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		if ch == '/' && i+1 < len(content) {
			switch content[i+1] {
			case '/':
				for i < len(content) && content[i] != '\n' {
					i++
				}
				if i < len(content) {
					out = append(out, '\n')
				}
				continue
			case '*':
				end := strings.Index(string(content[i+2:]), "*/")
				if end < 0 {
					return out
				}
				i += end + 3
				continue
			}
		}

		if ch == '"' {
			inString = true
		}
		out = append(out, ch)
	}
	return out
}

// processSpecialKeys consumes the markdownlint keys that are not rules.
// It reports whether the source disables rules by default.
func processSpecialKeys(raw map[string]any, result *MigrationResult) bool {
	disableByDefault := false
	if value, ok := raw["default"]; ok {
		if b, isBool := value.(bool); isBool && !b {
			disableByDefault = true
		}
		delete(raw, "default")
	}

	if extends, ok := raw["extends"]; ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("'extends: %v' is not supported; merge the referenced config by hand", extends))
		delete(raw, "extends")
	}

	delete(raw, "$schema")
	return disableByDefault
}

// processRuleKey applies one markdownlint key: a rule, a tag, or unknown.
func processRuleKey(cfg *config.Config, registry *lint.Registry, key string, value any, result *MigrationResult) {
	if id, _, ok := registry.Resolve(key); ok {
		ruleCfg := convertRuleValue(value)
		if id == lint.LineLength {
			if n, ok := asInt(ruleCfg.Options["line_length"]); ok {
				cfg.MaxLineLength = n
				delete(ruleCfg.Options, "line_length")
				if len(ruleCfg.Options) == 0 {
					ruleCfg.Options = nil
				}
			}
		}
		cfg.Rules[string(id)] = mergeRuleConfig(cfg.Rules[string(id)], ruleCfg)
		return
	}

	if tagged := rulesWithTag(registry, key); len(tagged) > 0 {
		enabled := valueToBool(value)
		for _, id := range tagged {
			cfg.Rules[string(id)] = config.RuleConfig{Enabled: &enabled}
		}
		return
	}

	result.Warnings = append(result.Warnings,
		fmt.Sprintf("%q has no gomdfmt equivalent; skipping", key))
}

func rulesWithTag(registry *lint.Registry, tag string) []lint.RuleID {
	var ids []lint.RuleID
	for _, rule := range registry.Rules() {
		if slices.ContainsFunc(rule.Tags(), func(t string) bool { return strings.EqualFold(t, tag) }) {
			ids = append(ids, rule.ID())
		}
	}
	return ids
}

// convertRuleValue converts a markdownlint rule value. An object enables
// the rule with options; option names are shared with markdownlint.
func convertRuleValue(value any) config.RuleConfig {
	enabled := valueToBool(value)
	ruleCfg := config.RuleConfig{Enabled: &enabled}

	if options, ok := value.(map[string]any); ok && len(options) > 0 {
		ruleCfg.Options = make(map[string]any, len(options))
		for key, opt := range options {
			if key == "enabled" {
				continue
			}
			ruleCfg.Options[key] = opt
		}
		if b, ok := options["enabled"].(bool); ok {
			ruleCfg.Enabled = &b
		}
	}
	return ruleCfg
}

func valueToBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case nil:
		return false
	case string:
		return !strings.EqualFold(v, "off")
	default:
		return true
	}
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// MigrationHeader returns the comment written above a converted config.
func MigrationHeader(sourcePath string) string {
	return fmt.Sprintf("# gomdfmt configuration\n# Converted from: %s\n", filepath.Base(sourcePath))
}

// CanMigrate returns true if the config file can be converted.
func CanMigrate(path string) bool {
	return !IsJavaScriptConfig(path)
}

// MigrationWarning explains why a markdownlint config cannot be converted.
func MigrationWarning(path string) string {
	if IsJavaScriptConfig(path) {
		return fmt.Sprintf("JavaScript config %s cannot be converted; run 'gomdfmt init' and port it by hand",
			filepath.Base(path))
	}
	return ""
}
