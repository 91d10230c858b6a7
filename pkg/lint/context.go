package lint

import (
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

// RuleContext is what a rule sees of one document. Config and RuleConfig
// may be nil; FilePath is empty for stdin.
type RuleContext struct {
	Doc        *mdline.Document
	Config     *config.Config
	RuleConfig *config.RuleConfig
	FilePath   string
}

// NewRuleContext splits text into a document for rules to read.
func NewRuleContext(text string, cfg *config.Config, ruleCfg *config.RuleConfig) *RuleContext {
	return &RuleContext{Doc: mdline.NewDocument(text), Config: cfg, RuleConfig: ruleCfg}
}

// Text joins the document back together.
func (rc *RuleContext) Text() string { return rc.Doc.Text() }

// MaxLineLength is the rule's line_length option, or max_line_length.
func (rc *RuleContext) MaxLineLength() int {
	return rc.OptionInt("line_length", rc.Config.EffectiveMaxLineLength())
}

func (rc *RuleContext) option(key string) (any, bool) {
	if rc.RuleConfig == nil {
		return nil, false
	}
	v, ok := rc.RuleConfig.Options[key]
	return v, ok
}

// optionAs returns the option key when it holds a T.
func optionAs[T any](rc *RuleContext, key string, def T) T {
	if v, ok := rc.option(key); ok {
		if t, ok := v.(T); ok {
			return t
		}
	}
	return def
}

// OptionInt reads an integer option. YAML and JSON decoding may hand the
// value over as int, int64 or float64.
func (rc *RuleContext) OptionInt(key string, def int) int {
	v, _ := rc.option(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

func (rc *RuleContext) OptionString(key, def string) string {
	return optionAs(rc, key, def)
}

func (rc *RuleContext) OptionBool(key string, def bool) bool {
	return optionAs(rc, key, def)
}

// OptionStringSlice reads a list of strings. Non-string items of a decoded
// []any are dropped; a list with no strings yields def.
func (rc *RuleContext) OptionStringSlice(key string, def []string) []string {
	v, _ := rc.option(key)
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
