package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/lint"
)

// Runner formats many files with a shared lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
//
// A failure on one file is recorded in its FileOutcome and does not stop
// the others. Outcomes are returned in discovery order, whatever order the
// workers finish in. Cancelling ctx stops the run and returns the outcomes
// collected so far together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := newResult(len(files))
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Each worker owns one slot.
	outcomes := make([]*FileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.processFile(gctx, path, opts)
			return nil
		})
	}

	waitErr := g.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.add(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldIssuesTotal, result.Stats.IssuesTotal,
	)
	return result, nil
}

func (r *Runner) processFile(ctx context.Context, path string, opts Options) *FileOutcome {
	logger := logging.FromContext(ctx)
	outcome := &FileOutcome{Path: path}

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Pipeline)
	if err != nil {
		logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
		outcome.Error = err
		return outcome
	}
	outcome.Result = pr

	switch {
	case pr.Skipped:
		logger.Warn("skipped file", logging.FieldPath, path, logging.FieldReason, pr.SkipReason)
	case pr.Modified:
		logger.Debug("formatted file",
			logging.FieldPath, path,
			logging.FieldEncoding, pr.Encoding,
			logging.FieldApplied, pr.Applied,
		)
	}
	for id, ruleErr := range pr.RuleErrors {
		logger.Warn("rule failed", logging.FieldPath, path, logging.FieldRule, id, logging.FieldError, ruleErr)
	}
	return outcome
}
