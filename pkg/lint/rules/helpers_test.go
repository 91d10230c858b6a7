package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// fixCase is one fixer scenario. Every case is also checked for idempotence.
type fixCase struct {
	name    string
	input   string
	want    string
	options map[string]any
}

func newContext(input string, options map[string]any) *lint.RuleContext {
	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}
	return lint.NewRuleContext(input, nil, ruleCfg)
}

func runFixCases(t *testing.T, fixer lint.Fixer, cases []fixCase) {
	t.Helper()

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fixer.Fix(newContext(tt.input, tt.options))
			assert.Equal(t, tt.want, got)

			again := fixer.Fix(newContext(got, tt.options))
			assert.Equal(t, got, again, "fix is not idempotent")
		})
	}
}

// detect runs a detector and checks that it left the text alone.
func detect(t *testing.T, detector lint.Detector, input string, options map[string]any) []lint.Issue {
	t.Helper()

	rc := newContext(input, options)
	issues := detector.Detect(rc)
	require.Equal(t, input, rc.Text())
	return issues
}

func issueLines(issues []lint.Issue) []int {
	lines := make([]int, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, issue.Line)
	}
	return lines
}
