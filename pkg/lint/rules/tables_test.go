package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/lint/rules"
)

func TestTablePipeStyleRule(t *testing.T) {
	t.Parallel()

	runFixCases(t, rules.NewTablePipeStyleRule(), []fixCase{
		{name: "pads cells", input: "|a|b|", want: "| a | b |"},
		{name: "collapses padding", input: "|  a  |   |b|", want: "| a || b |"},
		{name: "separator kept", input: "|---|:--:|", want: "|---|:--:|"},
		{name: "spaced separator kept", input: "| --- | --- |", want: "| --- | --- |"},
		{name: "keeps indentation", input: "  |a|", want: "  | a |"},
		{name: "no leading pipe", input: "a | b", want: "a | b"},
		{name: "pipe inside code span", input: "| `a|b` | c |", want: "| `a|b` | c |"},
		{name: "escaped pipe", input: `|a \| b|`, want: `| a \| b |`},
		{name: "escaped closing pipe", input: `| a | b \|`, want: `| a | b \|`},
		{name: "code block untouched", input: "```\n|a|b|\n```", want: "```\n|a|b|\n```"},
	})
}

func TestTableMultilineCellRule(t *testing.T) {
	t.Parallel()

	rule := rules.NewTableMultilineCellRule()

	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{
			name:  "cell continues on next line",
			input: "| a | b |\n| --- | --- |\n| c | d\ncontinued |\n",
			want:  []int{3, 4},
		},
		{
			name:  "blank line after open row",
			input: "| a | b\n\nx",
			want:  []int{1, 2},
		},
		{
			name:  "heading after open row",
			input: "| a | b\n# H",
			want:  []int{1},
		},
		{
			name:  "well formed table",
			input: "| a | b |\n| --- | --- |\n| c | d |\n",
			want:  []int{},
		},
		{
			name:  "code block",
			input: "```\n| a | b\ntext\n```",
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			issues := detect(t, rule, tt.input, nil)
			assert.Equal(t, tt.want, issueLines(issues))
		})
	}
}

func TestTableMultilineCellRule_RelatedLine(t *testing.T) {
	t.Parallel()

	issues := detect(t, rules.NewTableMultilineCellRule(), "| a | b\nmore", nil)
	require.Len(t, issues, 2)
	assert.Equal(t, 1, issues[1].RelatedLine)
	assert.Equal(t, "more", issues[1].Context)
}
