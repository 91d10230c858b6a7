package lint

import (
	"fmt"

	"github.com/yaklabco/gomdfmt/pkg/config"
)

// RunResult is the outcome of running a rule selection over one document.
type RunResult struct {
	// Text is the document after every selected fixer ran.
	Text string

	// Changed is true iff Text differs from the input.
	Changed bool

	// Issues holds detector findings against the input text, in detector
	// order and then line order.
	Issues []Issue

	// Applied lists the fixers that changed the text, in the order they ran.
	Applied []RuleID

	// RuleErrors holds rules that panicked. Their output was discarded.
	RuleErrors map[RuleID]error
}

// HasIssues returns true if any issues were found.
func (r *RunResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// Engine runs rule selections over documents.
// It holds no per-document state and is safe for concurrent use.
type Engine struct {
	// Config is passed to every rule through its RuleContext (may be nil).
	Config *config.Config
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{Config: cfg}
}

// Run applies the selected rules to text.
//
// Detectors all see the input text, so reported lines match the document as
// given. Fixers then run in FixerOrder, each on the previous one's output.
// Rules absent from the selection are skipped; selection order is irrelevant.
func (e *Engine) Run(text string, selection []ResolvedRule) RunResult {
	byID := make(map[RuleID]ResolvedRule, len(selection))
	for _, rr := range selection {
		byID[rr.Rule.ID()] = rr
	}

	result := RunResult{Text: text}

	for _, id := range DetectorOrder {
		if rr, ok := byID[id]; ok {
			e.apply(&result, text, rr)
		}
	}
	for _, id := range FixerOrder {
		if rr, ok := byID[id]; ok {
			e.apply(&result, text, rr)
		}
	}

	result.Changed = result.Text != text
	return result
}

// apply runs one rule. Detectors read original; fixers read and replace result.Text.
func (e *Engine) apply(result *RunResult, original string, rr ResolvedRule) {
	defer func() {
		if r := recover(); r != nil {
			if result.RuleErrors == nil {
				result.RuleErrors = make(map[RuleID]error)
			}
			result.RuleErrors[rr.Rule.ID()] = fmt.Errorf("rule %s panicked: %v", rr.Rule.ID(), r)
		}
	}()

	switch rule := rr.Rule.(type) {
	case Fixer:
		rc := NewRuleContext(result.Text, e.Config, rr.Config)
		out := rule.Fix(rc)
		if out != result.Text {
			result.Text = out
			result.Applied = append(result.Applied, rule.ID())
		}
	case Detector:
		rc := NewRuleContext(original, e.Config, rr.Config)
		for _, issue := range rule.Detect(rc) {
			issue.RuleID = rule.ID()
			issue.RuleName = rule.Name()
			issue.Severity = rr.Severity
			result.Issues = append(result.Issues, issue)
		}
	}
}
