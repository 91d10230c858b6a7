package runner

import (
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// FileOutcome is the result of one file: either Result or Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesSkipped had pending changes that were not written, because
	// verification failed or the file changed on disk.
	FilesSkipped int

	// FilesChanged have formatted text that differs from the original,
	// written or not. FilesModified counts the ones written.
	FilesChanged  int
	FilesModified int

	FilesWithIssues  int
	IssuesTotal      int
	IssuesBySeverity map[config.Severity]int

	// FixesByRule counts, per fixer, the files it changed.
	FixesByRule map[lint.RuleID]int

	RuleErrors int
}

// Result is the outcome of a run, with Files in discovery order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

func newResult(discovered int) *Result {
	return &Result{
		Files: make([]FileOutcome, 0, discovered),
		Stats: Stats{
			FilesDiscovered:  discovered,
			IssuesBySeverity: make(map[config.Severity]int),
			FixesByRule:      make(map[lint.RuleID]int),
		},
	}
}

// HasFailures reports whether an error-severity issue was found.
func (r *Result) HasFailures() bool {
	return r.Severity(config.SeverityError) > 0
}

// Severity returns the number of issues of severity s.
func (r *Result) Severity(s config.Severity) int {
	if r == nil {
		return 0
	}
	return r.Stats.IssuesBySeverity[s]
}

// HasIssues reports whether a detector reported anything.
func (r *Result) HasIssues() bool { return r != nil && r.Stats.IssuesTotal > 0 }

// HasChanges reports whether any file has pending or written changes.
func (r *Result) HasChanges() bool { return r != nil && r.Stats.FilesChanged > 0 }

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool { return r != nil && r.Stats.FilesErrored > 0 }

func (r *Result) add(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	s := &r.Stats
	res := outcome.Result
	switch {
	case outcome.Error != nil:
		s.FilesErrored++
		return
	case res == nil:
		return
	}

	s.FilesProcessed++
	s.RuleErrors += len(res.RuleErrors)
	s.FilesSkipped += count(res.Skipped)
	s.FilesChanged += count(res.Modified)
	s.FilesModified += count(res.Written)
	s.FilesWithIssues += count(len(res.Issues) > 0)
	s.IssuesTotal += len(res.Issues)

	for _, id := range res.Applied {
		s.FixesByRule[id]++
	}
	for _, issue := range res.Issues {
		if issue.Severity == "" {
			s.IssuesBySeverity[config.SeverityWarning]++
			continue
		}
		s.IssuesBySeverity[issue.Severity]++
	}
}

func count(b bool) int {
	if b {
		return 1
	}
	return 0
}
