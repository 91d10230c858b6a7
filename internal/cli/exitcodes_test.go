package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"issues", ErrIssuesFound, ExitIssues},
		{"wrapped issues", fmt.Errorf("run: %w", ErrIssuesFound), ExitIssues},
		{"usage", usageError(errors.New("bad flag")), ExitInvalidUsage},
		{"config", configError(errors.New("bad yaml")), ExitConfigError},
		{"internal", internalError(errors.New("boom")), ExitInternalError},
		{"plain error", errors.New("unknown command"), ExitInvalidUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	t.Parallel()

	base := errors.New("base")
	err := configError(base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "base", err.Error())
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	stats := func(mutate func(*runner.Stats)) *runner.Result {
		result := &runner.Result{Stats: runner.Stats{IssuesBySeverity: map[config.Severity]int{}}}
		mutate(&result.Stats)
		return result
	}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		check  bool
		want   int
	}{
		{"nil result", nil, false, false, ExitSuccess},
		{"clean", stats(func(*runner.Stats) {}), true, true, ExitSuccess},
		{
			"errors",
			stats(func(s *runner.Stats) { s.IssuesBySeverity[config.SeverityError] = 1 }),
			false, false, ExitIssues,
		},
		{
			"warnings",
			stats(func(s *runner.Stats) { s.IssuesBySeverity[config.SeverityWarning] = 2 }),
			false, false, ExitSuccess,
		},
		{
			"warnings strict",
			stats(func(s *runner.Stats) { s.IssuesBySeverity[config.SeverityWarning] = 2 }),
			true, false, ExitIssues,
		},
		{"file errors", stats(func(s *runner.Stats) { s.FilesErrored = 1 }), false, false, ExitIssues},
		{"changed in write mode", stats(func(s *runner.Stats) { s.FilesChanged = 3 }), false, false, ExitSuccess},
		{"changed under check", stats(func(s *runner.Stats) { s.FilesChanged = 3 }), false, true, ExitIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeFromResult(tt.result, tt.strict, tt.check))
		})
	}
}
