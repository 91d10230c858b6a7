package cli_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/internal/cli"
)

const (
	messyDoc     = "#標題\n\n\n行尾空格   \n\t製表符\n- 項目1\n- 項目2\n內容"
	formattedDoc = "# 標題\n\n行尾空格\n    製表符\n\n- 項目1\n- 項目2\n\n內容\n"
)

// workspace creates a directory with a config file and one Markdown file.
// The explicit config keeps the run independent of the caller's project.
func workspace(t *testing.T, configYAML, doc string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".gomdfmt.yml")
	writeFile(t, cfgPath, configYAML)

	docPath := filepath.Join(dir, "doc.md")
	writeFile(t, docPath, doc)
	return cfgPath, docPath
}

type jsonReport struct {
	Files []struct {
		Path    string   `json:"path"`
		Status  string   `json:"status"`
		Applied []string `json:"applied"`
	} `json:"files"`
	Issues []struct {
		RuleID   string `json:"ruleId"`
		Severity string `json:"severity"`
		Line     int    `json:"line"`
	} `json:"issues"`
	Summary struct {
		Files        int `json:"filesChecked"`
		FilesChanged int `json:"filesChanged"`
		FilesWritten int `json:"filesWritten"`
		Issues       int `json:"totalIssues"`
	} `json:"summary"`
}

func TestFormat_RewritesFile(t *testing.T) {
	t.Parallel()

	cfgPath, docPath := workspace(t, "max_line_length: 80\n", messyDoc)

	_, _, err := execute(t, "format", "--config", cfgPath, "--color", "never", docPath)
	require.NoError(t, err)
	assert.Equal(t, formattedDoc, readFile(t, docPath))

	// A second run finds nothing left to do.
	stdout, _, err := execute(t, "format", "--config", cfgPath, "--format", "json", docPath)
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 1, report.Summary.Files)
	assert.Zero(t, report.Summary.FilesChanged)
	assert.Equal(t, formattedDoc, readFile(t, docPath))
}

func TestFormat_CheckDoesNotWrite(t *testing.T) {
	t.Parallel()

	cfgPath, docPath := workspace(t, "", messyDoc)

	stdout, _, err := execute(t, "format", "--check", "--format", "json", "--config", cfgPath, docPath)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitIssues, cli.ExitCode(err))
	assert.Equal(t, messyDoc, readFile(t, docPath))

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Files, 1)
	assert.Equal(t, "would-reformat", report.Files[0].Status)
	assert.Contains(t, report.Files[0].Applied, "HASH_SPACING_MISSING")
	assert.Equal(t, 1, report.Summary.FilesChanged)
	assert.Zero(t, report.Summary.FilesWritten)
}

func TestFormat_CheckPassesOnCleanFile(t *testing.T) {
	t.Parallel()

	cfgPath, docPath := workspace(t, "", formattedDoc)

	_, _, err := execute(t, "format", "--check", "--config", cfgPath, "--color", "never", docPath)
	require.NoError(t, err)
}

func TestFormat_DryRunShowsDiff(t *testing.T) {
	t.Parallel()

	cfgPath, docPath := workspace(t, "", messyDoc)

	stdout, _, err := execute(t, "format", "--dry-run", "--config", cfgPath, "--color", "never", docPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "-#標題")
	assert.Contains(t, stdout, "+# 標題")
	assert.Equal(t, messyDoc, readFile(t, docPath))
}

func TestFormat_RuleSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "only one fixer by MD code",
			args: []string{"--rules", "MD018"},
			want: "# 標題\n\n\n行尾空格   \n\t製表符\n- 項目1\n- 項目2\n內容",
		},
		{
			name: "rule names resolve",
			args: []string{"--rules", "no-missing-space-atx,single-trailing-newline"},
			want: "# 標題\n\n\n行尾空格   \n\t製表符\n- 項目1\n- 項目2\n內容\n",
		},
		{
			name: "disable by ID",
			args: []string{"--disable", "BLANKS_AROUND_LISTS"},
			want: "# 標題\n\n行尾空格\n    製表符\n- 項目1\n- 項目2\n內容\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfgPath, docPath := workspace(t, "", messyDoc)
			args := append([]string{"format", "--config", cfgPath, "--color", "never"}, tt.args...)
			_, _, err := execute(t, append(args, docPath)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, docPath))
		})
	}
}

func TestFormat_ConfigDisablesRuleByName(t *testing.T) {
	t.Parallel()

	cfgPath, docPath := workspace(t, "rules:\n  no-hard-tabs:\n    enabled: false\n", "# T\n\n\tx\n")

	_, _, err := execute(t, "format", "--config", cfgPath, "--color", "never", docPath)
	require.NoError(t, err)
	assert.Equal(t, "# T\n\n\tx\n", readFile(t, docPath))
}

func TestFormat_SeverityControlsExitCode(t *testing.T) {
	t.Parallel()

	doc := "# A\n\ntext\n\n## B\n\nmore\n\n## A\n"

	tests := []struct {
		name     string
		config   string
		args     []string
		wantCode int
	}{
		{name: "warnings pass", wantCode: cli.ExitSuccess},
		{name: "warnings fail under strict", args: []string{"--strict"}, wantCode: cli.ExitIssues},
		{
			name:     "error severity fails",
			config:   "rules:\n  DUPLICATE_HEADING:\n    severity: error\n",
			wantCode: cli.ExitIssues,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfgPath, docPath := workspace(t, tt.config, doc)
			args := append([]string{"format", "--config", cfgPath, "--format", "json"}, tt.args...)
			stdout, _, err := execute(t, append(args, docPath)...)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err))

			var report jsonReport
			require.NoError(t, json.Unmarshal([]byte(stdout), &report))
			require.Len(t, report.Issues, 1)
			assert.Equal(t, "DUPLICATE_HEADING", report.Issues[0].RuleID)
			assert.Equal(t, 9, report.Issues[0].Line)
		})
	}
}

func TestFormat_RuleFormatInOutput(t *testing.T) {
	t.Parallel()

	doc := "# A\n\n## A\n\n## A\n"

	tests := []struct {
		ruleFormat string
		want       string
		notWant    string
	}{
		{"id", "DUPLICATE_HEADING", "no-duplicate-heading"},
		{"name", "no-duplicate-heading", "DUPLICATE_HEADING"},
		{"combined", "DUPLICATE_HEADING/no-duplicate-heading", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ruleFormat, func(t *testing.T) {
			t.Parallel()

			cfgPath, docPath := workspace(t, "", doc)
			stdout, _, err := execute(t, "format", "--config", cfgPath, "--color", "never",
				"--no-context", "--rule-format", tt.ruleFormat, docPath)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, stdout, tt.notWant)
			}
		})
	}
}

func TestFormat_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   string
		args     []string
		wantCode int
	}{
		{name: "check with dry-run", args: []string{"--check", "--dry-run"}, wantCode: cli.ExitInvalidUsage},
		{name: "bad summary order", args: []string{"--summary-order", "sideways"}, wantCode: cli.ExitInvalidUsage},
		{name: "unknown format", args: []string{"--format", "xml"}, wantCode: cli.ExitConfigError},
		{name: "unknown rule", args: []string{"--rules", "NOT_A_RULE"}, wantCode: cli.ExitConfigError},
		{name: "detector cannot fix", args: []string{"--fix-rules", "LINE_LENGTH"}, wantCode: cli.ExitConfigError},
		{name: "broken config", config: "max_line_length: [\n", wantCode: cli.ExitConfigError},
		{name: "missing path", args: []string{"missing"}, wantCode: cli.ExitInvalidUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfgPath, docPath := workspace(t, tt.config, formattedDoc)
			args := []string{"format", "--config", cfgPath}
			for _, arg := range tt.args {
				if arg == "missing" {
					arg = filepath.Join(filepath.Dir(docPath), "does-not-exist.md")
				}
				args = append(args, arg)
			}
			args = append(args, docPath)

			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err), err.Error())
			assert.Equal(t, formattedDoc, readFile(t, docPath))
		})
	}
}

func TestFormat_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".gomdfmt.yml")
	writeFile(t, cfgPath, "ignore:\n  - \"**/vendor/**\"\n")
	writeFile(t, filepath.Join(dir, "a.md"), "#A\n")
	writeFile(t, filepath.Join(dir, "sub", "b.markdown"), "#B\n")
	writeFile(t, filepath.Join(dir, "vendor", "c.md"), "#C\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "#D\n")

	_, _, err := execute(t, "format", "--config", cfgPath, "--color", "never", dir)
	require.NoError(t, err)

	assert.Equal(t, "# A\n", readFile(t, filepath.Join(dir, "a.md")))
	assert.Equal(t, "# B\n", readFile(t, filepath.Join(dir, "sub", "b.markdown")))
	assert.Equal(t, "#C\n", readFile(t, filepath.Join(dir, "vendor", "c.md")))
	assert.Equal(t, "#D\n", readFile(t, filepath.Join(dir, "notes.txt")))

	writeFile(t, filepath.Join(dir, "sub", "b.markdown"), "#B\n")
	_, _, err = execute(t, "format", "--config", cfgPath, "--no-recursive", "--color", "never", dir)
	require.NoError(t, err)
	assert.Equal(t, "#B\n", readFile(t, filepath.Join(dir, "sub", "b.markdown")))
}
