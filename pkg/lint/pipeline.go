package lint

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/fix"
	"github.com/yaklabco/gomdfmt/pkg/fsutil"
)

// Errors returned by Pipeline.ProcessFile. Test with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrDecodeFailure    = errors.New("decode failure")
	ErrWriteFailure     = errors.New("write failure")

	// ErrUnsafeFix marks formatted text that failed verification. It is
	// reported through PipelineResult.SkipReason rather than returned.
	ErrUnsafeFix = errors.New("unsafe fix")
)

//nolint:gochecknoglobals // Read-only mapping.
var readErrors = []struct{ cause, kind error }{
	{fsutil.ErrNotFound, ErrFileNotFound},
	{fsutil.ErrPermissionDenied, ErrPermissionDenied},
	{fsutil.ErrUndecodable, ErrDecodeFailure},
}

// Verifier checks that formatting preserved a document's structure.
type Verifier interface {
	Verify(ctx context.Context, original, formatted []byte) error
}

// PipelineResult is what happened to one file.
type PipelineResult struct {
	RunResult

	Path     string
	Encoding fsutil.Encoding

	// Before is the file's state when it was read.
	Before *fsutil.FileInfo

	// Modified means the rules produced different text and it passed
	// verification.
	Modified bool

	// Diff is set in dry-run mode.
	Diff *fix.Diff

	// Skipped files had pending changes that were not written.
	Skipped    bool
	SkipReason string

	Backup  bool // a backup was written before the file
	Written bool
}

// Summary is a short status for text output.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.Backup:
		return "formatted (backup created)"
	case pr.Written:
		return "formatted"
	case pr.Modified:
		return "would reformat"
	case pr.HasIssues():
		return "issues found"
	}
	return "ok"
}

func (pr *PipelineResult) skip(reason string) {
	pr.Skipped = true
	pr.SkipReason = reason
}

// PipelineOptions controls what ProcessFile does with formatted text.
type PipelineOptions struct {
	Check  bool // never write, never diff
	DryRun bool // diff instead of writing
	Verify bool // run the Verifier before accepting changes

	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the file before writing instead of
	// comparing only size and mod time.
	StrictRaceDetection bool
}

// DefaultPipelineOptions writes in place with verification and hashing on.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Verify:              true,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// PipelineOptionsFromConfig derives pipeline options from cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg != nil {
		opts.Check = cfg.Check
		opts.DryRun = cfg.DryRun
		opts.Verify = !cfg.NoVerify
		opts.Backup = BackupConfigFromConfig(cfg)
	}
	return opts
}

// BackupConfigFromConfig derives backup settings; --no-backups wins over
// the config file.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// Pipeline formats files on disk.
type Pipeline struct {
	Engine   *Engine
	Verifier Verifier // optional
	Rules    []ResolvedRule
}

// NewPipeline creates a pipeline running rules through engine.
func NewPipeline(engine *Engine, verifier Verifier, rules []ResolvedRule) *Pipeline {
	return &Pipeline{Engine: engine, Verifier: verifier, Rules: rules}
}

// ProcessFile reads path, runs the rules over it and, depending on opts,
// writes the result back, renders a diff, or only reports.
//
// Formatted text that fails verification is discarded: the result is
// marked skipped with a reason wrapping ErrUnsafeFix and the file keeps
// its content. Likewise a file that changes on disk while it is being
// processed is skipped rather than overwritten.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	doc, err := fsutil.ReadDocument(ctx, path)
	if err != nil {
		return nil, classifyReadError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	result := &PipelineResult{Path: path, Encoding: doc.Encoding, Before: doc.Info}
	result.RunResult = p.Engine.Run(doc.Text, p.Rules)
	for i := range result.Issues {
		result.Issues[i].FilePath = path
	}
	if !result.Changed {
		return result, nil
	}

	if opts.Verify && p.Verifier != nil {
		if err := p.Verifier.Verify(ctx, []byte(doc.Text), []byte(result.Text)); err != nil {
			result.Changed = false
			result.Text = doc.Text
			result.Applied = nil
			result.skip(fmt.Errorf("%w: %w", ErrUnsafeFix, err).Error())
			return result, nil
		}
	}
	result.Modified = true

	switch {
	case opts.Check:
		return result, nil
	case opts.DryRun:
		result.Diff = fix.GenerateDiff(path, []byte(doc.Text), []byte(result.Text))
		return result, nil
	}
	return result, p.write(ctx, result, doc, opts)
}

// write stores the formatted text in the file's original encoding and
// line endings.
func (p *Pipeline) write(ctx context.Context, result *PipelineResult, doc *fsutil.Document, opts PipelineOptions) error {
	content, err := fsutil.Encode(result.Text, doc.Encoding, doc.CRLF)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	changed, err := fsutil.CheckModified(ctx, doc.Info, opts.StrictRaceDetection)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Modified = false
		result.skip("file modified during processing")
		return nil
	}

	if opts.Backup.Enabled {
		if result.Backup, err = fsutil.CreateBackup(ctx, result.Path, opts.Backup); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}
	if err := fsutil.WriteAtomic(ctx, result.Path, content, doc.Info.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return nil
}

func classifyReadError(err error) error {
	for _, e := range readErrors {
		if errors.Is(err, e.cause) {
			return fmt.Errorf("%w: %w", e.kind, err)
		}
	}
	return err
}

// IsPipelineError reports whether err carries one of the pipeline's error
// kinds.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrWriteFailure) || slices.ContainsFunc(readErrors, func(e struct{ cause, kind error }) bool {
		return errors.Is(err, e.kind)
	})
}
