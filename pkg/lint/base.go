package lint

import "github.com/yaklabco/gomdfmt/pkg/config"

// BaseRule implements the metadata half of Rule.
// Embed it in rule implementations and add Fix or Detect.
type BaseRule struct {
	id   RuleID
	name string
	code string
	desc string
	tags []string
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id RuleID, name, code, desc string, tags []string) BaseRule {
	return BaseRule{
		id:   id,
		name: name,
		code: code,
		desc: desc,
		tags: tags,
	}
}

func (r *BaseRule) ID() RuleID          { return r.id }
func (r *BaseRule) Name() string        { return r.name }
func (r *BaseRule) Code() string        { return r.code }
func (r *BaseRule) Description() string { return r.desc }
func (r *BaseRule) Tags() []string      { return r.tags }

// DefaultEnabled returns true. Override it for opt-in rules.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns warning. Override it to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}
