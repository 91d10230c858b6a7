package lint_test

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// fakeFixer applies fn, or panics with msg when fn is nil.
type fakeFixer struct {
	lint.BaseRule
	fn  func(string) string
	msg string
	off bool
}

func newFakeFixer(id lint.RuleID, fn func(string) string) *fakeFixer {
	return &fakeFixer{
		BaseRule: lint.NewBaseRule(id, "fake-"+strings.ToLower(string(id)), "", "fake fixer", nil),
		fn:       fn,
	}
}

func (f *fakeFixer) DefaultEnabled() bool { return !f.off }

func (f *fakeFixer) Fix(rc *lint.RuleContext) string {
	if f.fn == nil {
		panic(f.msg)
	}
	return f.fn(rc.Text())
}

type fakeDetector struct {
	lint.BaseRule
	lines []int
	seen  *string
}

func newFakeDetector(id lint.RuleID, code string, lines ...int) *fakeDetector {
	return &fakeDetector{
		BaseRule: lint.NewBaseRule(id, "fake-"+strings.ToLower(string(id)), code, "fake detector", nil),
		lines:    lines,
	}
}

func (d *fakeDetector) DefaultSeverity() config.Severity { return config.SeverityError }

func (d *fakeDetector) Detect(rc *lint.RuleContext) []lint.Issue {
	if d.seen != nil {
		*d.seen = rc.Text()
	}
	issues := make([]lint.Issue, 0, len(d.lines))
	for _, line := range d.lines {
		issues = append(issues, lint.NewIssue(d.ID(), line, "", "found").Build())
	}
	return issues
}

// bothRule implements Fixer and Detector at once.
type bothRule struct {
	lint.BaseRule
}

func (b *bothRule) Fix(rc *lint.RuleContext) string         { return rc.Text() }
func (b *bothRule) Detect(_ *lint.RuleContext) []lint.Issue { return nil }

func appendLine(s string) func(string) string {
	return func(text string) string { return text + s }
}
