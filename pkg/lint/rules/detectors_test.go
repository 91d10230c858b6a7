package rules_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/lint"
	"github.com/yaklabco/gomdfmt/pkg/lint/rules"
)

func TestLineLengthRule_Boundary(t *testing.T) {
	t.Parallel()

	rule := rules.NewLineLengthRule()

	assert.Empty(t, detect(t, rule, strings.Repeat("a", 80), nil))

	input := "short\n" + strings.Repeat("a", 81) + "\nshort"
	issues := detect(t, rule, input, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Line)
	assert.Equal(t, 81, issues[0].Length)
	assert.Equal(t, 81, issues[0].Column)
}

func TestLineLengthRule_Exemptions(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 100)
	tests := []struct {
		name  string
		input string
	}{
		{name: "heading", input: "# " + long},
		{name: "list item", input: "- " + long},
		{name: "ordered item", input: "1. " + long},
		{name: "table row", input: "| " + long + " |"},
		{name: "code block", input: "```\n" + long + "\n```"},
		{name: "front matter", input: "---\nk: " + long + "\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Empty(t, detect(t, rules.NewLineLengthRule(), tt.input, nil))
		})
	}
}

func TestLineLengthRule_Limits(t *testing.T) {
	t.Parallel()

	rule := rules.NewLineLengthRule()

	t.Run("rule option", func(t *testing.T) {
		t.Parallel()

		issues := detect(t, rule, "abcdefghijk", map[string]any{"line_length": 10})
		require.Len(t, issues, 1)
		assert.Equal(t, 11, issues[0].Column)
	})

	t.Run("config maximum", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.MaxLineLength = 20
		rc := lint.NewRuleContext(strings.Repeat("b", 21), cfg, nil)
		assert.Len(t, rule.Detect(rc), 1)
	})

	t.Run("wide characters", func(t *testing.T) {
		t.Parallel()

		line := strings.Repeat("中", 50)
		assert.Empty(t, detect(t, rule, line, nil))

		issues := detect(t, rule, line, map[string]any{"measure": "display"})
		require.Len(t, issues, 1)
		assert.Equal(t, 100, issues[0].Length)
	})
}

func TestDuplicateHeadingRule(t *testing.T) {
	t.Parallel()

	rule := rules.NewDuplicateHeadingRule()

	t.Run("reports the repeat", func(t *testing.T) {
		t.Parallel()

		issues := detect(t, rule, "# A\n\ntext\n\n# A\n", nil)
		require.Len(t, issues, 1)
		assert.Equal(t, 5, issues[0].Line)
		assert.Equal(t, 1, issues[0].RelatedLine)
	})

	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{name: "wide characters", input: "# 第一章\n內容1\n\n# 第一章\n內容2", want: []int{4}},
		{name: "setext and atx", input: "A\n===\n\n# A", want: []int{4}},
		{name: "different levels", input: "# A\n\n## A", want: []int{3}},
		{name: "case sensitive", input: "# A\n# a", want: []int{}},
		{name: "code block", input: "# A\n```\n# A\n```", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, issueLines(detect(t, rule, tt.input, nil)))
		})
	}
}

func TestMultipleTopLevelHeadingsRule(t *testing.T) {
	t.Parallel()

	issues := detect(t, rules.NewMultipleTopLevelHeadingsRule(), "# A\n# B\n## C\n# D", nil)
	assert.Equal(t, []int{2, 4}, issueLines(issues))
	for _, issue := range issues {
		assert.Equal(t, 1, issue.RelatedLine)
	}

	assert.Empty(t, detect(t, rules.NewMultipleTopLevelHeadingsRule(), "# A\n## B\n", nil))
}

func TestInlineHTMLRule(t *testing.T) {
	t.Parallel()

	rule := rules.NewInlineHTMLRule()

	t.Run("reports each tag with its column", func(t *testing.T) {
		t.Parallel()

		issues := detect(t, rule, "text <b>bold</b>", nil)
		require.Len(t, issues, 2)
		assert.Equal(t, 6, issues[0].Column)
		assert.Equal(t, 13, issues[1].Column)
	})

	t.Run("column counts characters", func(t *testing.T) {
		t.Parallel()

		issues := detect(t, rule, "中文<br>", nil)
		require.Len(t, issues, 1)
		assert.Equal(t, 3, issues[0].Column)
	})

	tests := []struct {
		name    string
		input   string
		options map[string]any
	}{
		{name: "autolink", input: "<https://x.com>"},
		{name: "email autolink", input: "<a@b.com>"},
		{name: "comment", input: "<!-- note -->"},
		{name: "code span", input: "`<b>`"},
		{name: "code block", input: "```\n<b>\n```"},
		{name: "comparison", input: "a < b > c"},
		{name: "allowed element", input: "a<br>b", options: map[string]any{"allowed_elements": []any{"BR"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Empty(t, detect(t, rule, tt.input, tt.options))
		})
	}
}

func TestLinkFragmentRule(t *testing.T) {
	t.Parallel()

	rule := rules.NewLinkFragmentRule()

	t.Run("reports unknown fragment", func(t *testing.T) {
		t.Parallel()

		issues := detect(t, rule, "# Intro\n\nSee [x](#intro) and [y](#missing)\n", nil)
		require.Len(t, issues, 1)
		assert.Equal(t, 3, issues[0].Line)
		assert.Equal(t, 21, issues[0].Column)
	})

	tests := []struct {
		name  string
		input string
	}{
		{name: "duplicate heading suffix", input: "# A\n# A\n[x](#a-1)"},
		{name: "wide characters", input: "# 安裝 指南\n[x](#安裝-指南)"},
		{name: "percent encoded", input: "# 安裝 指南\n[x](#%E5%AE%89%E8%A3%9D-%E6%8C%87%E5%8D%97)"},
		{name: "html anchor", input: "<a id=\"custom\"></a>\n[x](#custom)"},
		{name: "top of page", input: "[x](#top)"},
		{name: "case insensitive", input: "# Intro\n[x](#Intro)"},
		{name: "code span", input: "`[x](#nope)`"},
		{name: "setext heading", input: "Getting Started\n---\n[x](#getting-started)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Empty(t, detect(t, rule, tt.input, nil))
		})
	}
}

func TestEmphasisAsHeadingRule(t *testing.T) {
	t.Parallel()

	rule := rules.NewEmphasisAsHeadingRule()

	tests := []struct {
		name    string
		input   string
		want    []int
		options map[string]any
	}{
		{name: "bold paragraph", input: "**Section**\n\ntext", want: []int{1}},
		{name: "underscore bold", input: "text\n\n__Title__\n", want: []int{3}},
		{name: "italic", input: "_x_", want: []int{1}},
		{name: "wide characters", input: "**中文標題**", want: []int{1}},
		{name: "inside paragraph", input: "text\n**Section**\n", want: []int{}},
		{name: "ends with punctuation", input: "**Note.**", want: []int{}},
		{name: "custom punctuation", input: "**Note.**", want: []int{1}, options: map[string]any{"punctuation": ""}},
		{name: "two spans", input: "*a* and *b*", want: []int{}},
		{name: "list item", input: "- **item**", want: []int{}},
		{name: "thematic break", input: "***", want: []int{}},
		{name: "too long", input: "**" + strings.Repeat("w", 100) + "**", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, issueLines(detect(t, rule, tt.input, tt.options)))
		})
	}
}
