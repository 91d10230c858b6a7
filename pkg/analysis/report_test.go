package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdfmt/pkg/config"
)

func TestTotalsPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                    string
		totals                  Totals
		issues, errors, changes bool
	}{
		{"empty", Totals{}, false, false, false},
		{"warnings only", Totals{Issues: 5, Warnings: 5}, true, false, false},
		{"errors", Totals{Issues: 3, Errors: 3}, true, true, false},
		{"fixes without changed files", Totals{Fixes: 2}, false, false, false},
		{"changed file", Totals{FilesChanged: 1}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.issues, tt.totals.HasIssues())
			assert.Equal(t, tt.errors, tt.totals.HasErrors())
			assert.Equal(t, tt.changes, tt.totals.HasChanges())
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Options{
		IncludeIssues: true,
		IncludeFiles:  true,
		IncludeByFile: true,
		IncludeByRule: true,
		SortBy:        SortByCount,
		SortDesc:      true,
		RuleFormat:    config.RuleFormatName,
	}, DefaultOptions())
}

func TestSortFieldIsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []SortField{SortByCount, SortByAlpha, SortBySeverity} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, SortField("invalid").IsValid())
	assert.False(t, SortField("").IsValid())
}

func TestActivity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, FileAnalysis{Issues: 3, Fixes: 2}.Activity())
	assert.Equal(t, 4, RuleAnalysis{Issues: 1, FilesFixed: 3}.Activity())
}
