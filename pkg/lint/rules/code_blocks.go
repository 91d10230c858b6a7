package rules

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/langdetect"
	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/mdline"
)

// FencedCodeLanguageRule tags bare code fences with a guessed language.
type FencedCodeLanguageRule struct {
	lint.BaseRule
}

// NewFencedCodeLanguageRule creates the FENCED_CODE_LANGUAGE fixer.
func NewFencedCodeLanguageRule() *FencedCodeLanguageRule {
	return &FencedCodeLanguageRule{
		BaseRule: lint.NewBaseRule(
			lint.FencedCodeLanguage,
			"fenced-code-language",
			"MD040",
			"Fenced code blocks should have a language specified",
			[]string{"code", "language"},
		),
	}
}

// DefaultEnabled returns false: guessing a language is a heuristic and
// must be asked for.
func (r *FencedCodeLanguageRule) DefaultEnabled() bool {
	return false
}

// Fix appends a language to every opening fence that has no info string.
// The language comes from the first lines of the block; when it cannot be
// guessed, default_language is used, and if that is empty the fence is
// left bare.
func (r *FencedCodeLanguageRule) Fix(rc *lint.RuleContext) string {
	fallback := rc.OptionString("default_language", "")
	doc := rc.Doc
	out := make([]string, doc.Len())
	copy(out, doc.Lines)

	open := false
	for i, line := range doc.Lines {
		if doc.Region(i) != mdline.RegionFence {
			continue
		}
		if open {
			open = false
			continue
		}
		open = true

		if _, info, ok := mdline.FenceMarker(line); !ok || info != "" {
			continue
		}
		lang := langdetect.DetectLines(blockBody(doc, i+1))
		if lang == "" {
			lang = fallback
		}
		if lang == "" {
			continue
		}
		out[i] = strings.TrimRight(line, " \t") + lang
	}
	return mdline.Join(out)
}

// blockBody returns the code lines starting at start, up to the sample size.
func blockBody(doc *mdline.Document, start int) []string {
	end := start
	for end < doc.Len() && end-start < langdetect.SampleLines && doc.Region(end) == mdline.RegionCode {
		end++
	}
	return doc.Lines[start:end]
}
