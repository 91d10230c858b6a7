package logging

// Keys shared by structured log lines.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// run
	FieldCheck    = "check"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"
	FieldRules    = "rules"
	FieldEncoding = "encoding"
	FieldApplied  = "applied"
	FieldReason   = "reason"

	// totals
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesModified   = "files_modified"
	FieldFilesWithIssues = "files_with_issues"
	FieldIssuesTotal     = "issues_total"

	// version
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// rule catalogue
	FieldRule        = "rule"
	FieldKind        = "kind"
	FieldSeverity    = "severity"
	FieldDescription = "description"
)
