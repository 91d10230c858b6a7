package cli

import (
	"errors"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// Exit codes for gomdfmt.
const (
	// ExitSuccess indicates the run finished with nothing to report.
	ExitSuccess = 0

	// ExitIssues indicates error-severity issues, warnings under --strict,
	// files that failed to process, or files --check would reformat.
	ExitIssues = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ErrIssuesFound is returned when a run should exit with ExitIssues.
// It carries no message worth logging.
var ErrIssuesFound = errors.New("issues found")

// ExitError attaches an exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

func internalError(err error) error {
	return &ExitError{Code: ExitInternalError, Err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
// Errors without an explicit code are usage errors, which is what cobra
// returns for unknown commands and malformed flags.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrIssuesFound) {
		return ExitIssues
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInvalidUsage
}

// ExitCodeFromResult decides the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result, strict, check bool) int {
	switch {
	case result.HasFailures():
		return ExitIssues
	case strict && result.Severity(config.SeverityWarning) > 0:
		return ExitIssues
	case result.HasErrors():
		return ExitIssues
	case check && result.HasChanges():
		return ExitIssues
	default:
		return ExitSuccess
	}
}
