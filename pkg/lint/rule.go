// Package lint provides the rule catalogue, registry and formatting pipeline for gomdfmt.
package lint

import "github.com/yaklabco/gomdfmt/pkg/config"

// Rule is the metadata every catalogue entry exposes.
// A registered rule also implements exactly one of Fixer or Detector.
type Rule interface {
	// ID returns the catalogue identifier (e.g., "TRAILING_WHITESPACE").
	ID() RuleID

	// Name returns the kebab-case name (e.g., "no-trailing-spaces").
	Name() string

	// Code returns the markdownlint code (e.g., "MD009"), or "".
	Code() string

	Description() string

	// DefaultEnabled returns whether the rule runs when not configured.
	DefaultEnabled() bool

	// DefaultSeverity returns the severity of issues this rule reports.
	DefaultSeverity() config.Severity

	Tags() []string
}

// Fixer is a rule that rewrites text.
//
// Fix must be total: a line it cannot make sense of passes through
// unchanged, and running it on its own output must change nothing.
type Fixer interface {
	Rule
	Fix(rc *RuleContext) string
}

// Detector is a rule that reports issues and never changes text.
type Detector interface {
	Rule
	Detect(rc *RuleContext) []Issue
}

// KindOf returns the kind implemented by rule, or KindUnknown if it
// implements both Fixer and Detector or neither.
func KindOf(rule Rule) Kind {
	_, isFixer := rule.(Fixer)
	_, isDetector := rule.(Detector)
	switch {
	case isFixer && !isDetector:
		return KindFixer
	case isDetector && !isFixer:
		return KindDetector
	default:
		return KindUnknown
	}
}
