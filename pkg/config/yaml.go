package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML encodes c with two-space indentation.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML decodes a config file. Settings missing from data stay at their
// zero value so that merging leaves lower layers in place.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleConfig{}
	}
	return &cfg, nil
}

// Clone returns a deep copy of c. Nested option values are shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	for _, s := range []*[]string{&out.Ignore, &out.Extensions, &out.OnlyRules, &out.DisableRules, &out.FixRules} {
		*s = slices.Clone(*s)
	}
	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			out.Rules[id] = RuleConfig{
				Enabled:  clonePtr(rc.Enabled),
				Severity: clonePtr(rc.Severity),
				Options:  maps.Clone(rc.Options),
			}
		}
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
