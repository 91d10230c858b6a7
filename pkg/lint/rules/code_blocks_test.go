package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdfmt/pkg/lint/rules"
)

func TestFencedCodeLanguageRule(t *testing.T) {
	t.Parallel()

	runFixCases(t, rules.NewFencedCodeLanguageRule(), []fixCase{
		{
			name:  "python",
			input: "```\ndef hello():\n    print('Hello')\n```\n",
			want:  "```python\ndef hello():\n    print('Hello')\n```\n",
		},
		{
			name:  "closing fence stays bare",
			input: "```\nconsole.log(1)\n```\n\n```\nSELECT 1 FROM t\n```",
			want:  "```javascript\nconsole.log(1)\n```\n\n```sql\nSELECT 1 FROM t\n```",
		},
		{
			name:  "tilde fence",
			input: "~~~\n#!/bin/bash\necho hi\n~~~",
			want:  "~~~bash\n#!/bin/bash\necho hi\n~~~",
		},
		{
			name:  "info string kept",
			input: "```go\nx := 1\n```",
			want:  "```go\nx := 1\n```",
		},
		{
			name:  "unknown language left bare",
			input: "```\nsome random text\n```",
			want:  "```\nsome random text\n```",
		},
		{
			name:    "default language",
			input:   "```\nsome random text\n```",
			want:    "```text\nsome random text\n```",
			options: map[string]any{"default_language": "text"},
		},
	})
}

func TestFencedCodeLanguageRule_OptIn(t *testing.T) {
	t.Parallel()

	assert.False(t, rules.NewFencedCodeLanguageRule().DefaultEnabled())
}
