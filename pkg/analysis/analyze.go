package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	registry  *lint.Registry
	ruleMap   map[lint.RuleID]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[lint.RuleID]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext(registry *lint.Registry) *analysisContext {
	return &analysisContext{
		registry:  registry,
		ruleMap:   make(map[lint.RuleID]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[lint.RuleID]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

// normalizeSeverity returns the severity, defaulting to warning.
func normalizeSeverity(sev config.Severity) config.Severity {
	if sev == "" {
		return config.SeverityWarning
	}
	return sev
}

func countSeverity(severity config.Severity, errs, warnings, infos *int) {
	switch severity {
	case config.SeverityError:
		*errs++
	case config.SeverityWarning:
		*warnings++
	case config.SeverityInfo:
		*infos++
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) rule(id lint.RuleID, name string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[id]; !ok {
		if name == "" {
			name = ctx.ruleName(id)
		}
		ctx.ruleMap[id] = &RuleAnalysis{
			RuleID:   string(id),
			RuleName: name,
			Kind:     id.Kind().String(),
		}
		ctx.ruleFiles[id] = make(map[string]bool)
	}
	return ctx.ruleMap[id]
}

func (ctx *analysisContext) ruleName(id lint.RuleID) string {
	if ctx.registry == nil {
		return ""
	}
	if rule, ok := ctx.registry.Get(id); ok {
		return rule.Name()
	}
	return ""
}

func newIssueEntry(path string, severity config.Severity, issue *lint.Issue) IssueEntry {
	return IssueEntry{
		FilePath:    path,
		RuleID:      string(issue.RuleID),
		RuleName:    issue.RuleName,
		Severity:    string(severity),
		Message:     issue.Message,
		Line:        issue.Line,
		Column:      issue.Column,
		RelatedLine: issue.RelatedLine,
		Length:      issue.Length,
		Context:     issue.Context,
		Suggestion:  issue.Suggestion,
	}
}

// fileStatus maps an outcome to one of the Status constants.
func fileStatus(outcome runner.FileOutcome) (string, string) {
	res := outcome.Result
	switch {
	case outcome.Error != nil:
		return StatusError, outcome.Error.Error()
	case res == nil:
		return StatusError, ""
	case res.Skipped:
		return StatusSkipped, res.SkipReason
	case res.Written:
		return StatusFormatted, ""
	case res.Modified:
		return StatusWouldFix, ""
	case res.HasIssues():
		return StatusHasIssues, ""
	default:
		return StatusOK, ""
	}
}

func newFileEntry(path string, outcome runner.FileOutcome) FileEntry {
	status, reason := fileStatus(outcome)
	entry := FileEntry{Path: path, Status: status, Reason: reason}
	if res := outcome.Result; res != nil {
		entry.Encoding = string(res.Encoding)
		for _, id := range res.Applied {
			entry.Applied = append(entry.Applied, string(id))
		}
	}
	return entry
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for id, ra := range ctx.ruleMap {
		ra.Files = slices.Sorted(maps.Keys(ctx.ruleFiles[id]))
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Activity() == 0 {
			continue
		}
		fa.Rules = slices.Sorted(maps.Keys(ctx.fileRules[path]))
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the outcomes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext(opts.Registry)

	for _, outcome := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(outcome.Path, opts.WorkingDir)
		if opts.IncludeFiles {
			report.Files = append(report.Files, newFileEntry(displayPath, outcome))
		}

		if outcome.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		res := outcome.Result
		if res == nil {
			continue
		}

		ctx.tallyFile(report, displayPath, res, opts)
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}

func (ctx *analysisContext) tallyFile(report *Report, path string, res *lint.PipelineResult, opts Options) {
	totals := &report.Totals
	if res.Modified {
		totals.FilesChanged++
	}
	if res.Written {
		totals.FilesWritten++
	}
	if res.Skipped {
		totals.FilesSkipped++
	}
	if len(res.Issues) > 0 {
		totals.FilesWithIssues++
	}

	fa := ctx.file(path)

	for _, id := range res.Applied {
		totals.Fixes++
		fa.Fixes++
		ra := ctx.rule(id, "")
		ra.FilesFixed++
		ctx.ruleFiles[id][path] = true
		ctx.fileRules[path][string(id)] = true
	}

	for i := range res.Issues {
		issue := &res.Issues[i]
		severity := normalizeSeverity(issue.Severity)

		totals.Issues++
		fa.Issues++
		countSeverity(severity, &totals.Errors, &totals.Warnings, &totals.Infos)
		countSeverity(severity, &fa.Errors, &fa.Warnings, &fa.Infos)

		ra := ctx.rule(issue.RuleID, issue.RuleName)
		ra.Issues++
		countSeverity(severity, &ra.Errors, &ra.Warnings, &ra.Infos)
		ctx.ruleFiles[issue.RuleID][path] = true
		ctx.fileRules[path][string(issue.RuleID)] = true

		if opts.IncludeIssues {
			report.Issues = append(report.Issues, newIssueEntry(path, severity, issue))
		}
	}
}

// compareSeverity orders errors first, then warnings, then total activity.
func compareSeverity(leftErr, rightErr, leftWarn, rightWarn, leftAll, rightAll int) int {
	if c := cmp.Compare(rightErr, leftErr); c != 0 {
		return c
	}
	if c := cmp.Compare(rightWarn, leftWarn); c != 0 {
		return c
	}
	return cmp.Compare(rightAll, leftAll)
}

func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.RuleID, right.RuleID)
		case SortBySeverity:
			return cmp.Or(
				compareSeverity(left.Errors, right.Errors, left.Warnings, right.Warnings,
					left.Activity(), right.Activity()),
				cmp.Compare(left.RuleID, right.RuleID),
			)
		default: // SortByCount
			result := cmp.Compare(left.Activity(), right.Activity())
			if desc {
				result = -result
			}
			return cmp.Or(result, cmp.Compare(left.RuleID, right.RuleID))
		}
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		case SortBySeverity:
			return cmp.Or(
				compareSeverity(left.Errors, right.Errors, left.Warnings, right.Warnings,
					left.Activity(), right.Activity()),
				cmp.Compare(left.Path, right.Path),
			)
		default: // SortByCount
			result := cmp.Compare(left.Activity(), right.Activity())
			if desc {
				result = -result
			}
			return cmp.Or(result, cmp.Compare(left.Path, right.Path))
		}
	})
}
