package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdfmt/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct{ name, body, want string }{
		{"bash shebang", "#!/bin/bash\napt-get update", "bash"},
		{"sh shebang maps to bash", "#!/bin/sh\necho hello", "bash"},
		{"env python shebang", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"python def", "def hello():\n    print('Hello')", "python"},
		{"javascript function", "function hello() {\n    console.log('Hello');\n}", "javascript"},
		{"package install", "pip install requests", "bash"},
		{"sql", "SELECT * FROM users\nWHERE id = 1", "sql"},
		{"json", `{ "name": "test" }`, "json"},
		{"prose", "some random text", ""},
		{"empty", "", ""},
		{"blank lines", "  \n\t\n", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, langdetect.Detect(tc.body))
		})
	}
}

func TestDetectLines_UsesLeadingSample(t *testing.T) {
	t.Parallel()

	lines := []string{"a", "b", "c", "d", "console.log('late')"}
	assert.Empty(t, langdetect.DetectLines(lines))
	assert.Equal(t, "javascript", langdetect.DetectLines(lines[1:]))
}
