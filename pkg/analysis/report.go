package analysis

import "time"

// Report contains pre-computed views of a formatting run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Issues is the flat list for detailed output.
	Issues []IssueEntry `json:"issues,omitempty"`

	// Files lists the outcome of every processed file.
	Files []FileEntry `json:"files,omitempty"`

	// ByFile groups issues and fixes by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups issues and fixes by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// IssueEntry represents a single detector issue in the report.
type IssueEntry struct {
	FilePath    string `json:"filePath"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Line        int    `json:"line"`
	Column      int    `json:"column,omitempty"`
	RelatedLine int    `json:"relatedLine,omitempty"`
	Length      int    `json:"length,omitempty"`
	Context     string `json:"context,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// File statuses used in FileEntry.
const (
	StatusOK        = "ok"
	StatusFormatted = "formatted"
	StatusWouldFix  = "would-reformat"
	StatusSkipped   = "skipped"
	StatusError     = "error"
	StatusHasIssues = "issues"
)

// FileEntry is the outcome of one file.
type FileEntry struct {
	Path     string   `json:"path"`
	Status   string   `json:"status"`
	Encoding string   `json:"encoding,omitempty"`
	Applied  []string `json:"applied,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesChanged    int `json:"filesChanged"`
	FilesWritten    int `json:"filesWritten"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`

	// Fixes counts fixer applications, one per fixer per file.
	Fixes int `json:"fixes"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any issues of error severity.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// HasChanges returns true if any file would be or was reformatted.
func (t Totals) HasChanges() bool {
	return t.FilesChanged > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Fixes    int      `json:"fixes"`
	Rules    []string `json:"rules,omitempty"`
}

// Activity is the number of issues plus fixes for the file.
func (fa FileAnalysis) Activity() int {
	return fa.Issues + fa.Fixes
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Kind     string `json:"kind"`
	Issues   int    `json:"issues"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	Infos    int    `json:"infos"`

	// FilesFixed counts the files this fixer changed.
	FilesFixed int      `json:"filesFixed"`
	Files      []string `json:"files,omitempty"`
}

// Activity is the number of issues plus fixed files for the rule.
func (ra RuleAnalysis) Activity() int {
	return ra.Issues + ra.FilesFixed
}
