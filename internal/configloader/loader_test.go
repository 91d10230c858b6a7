package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/config"
	_ "github.com/yaklabco/gomdfmt/pkg/lint/rules" // Register rules
)

// isolated returns options that only look at dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func boolPtr(b bool) *bool { return &b }

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.DefaultMaxLineLength, result.Config.MaxLineLength)
	assert.Equal(t, "warning", result.Config.SeverityDefault)
	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".gomdfmt.yml")
	writeFile(t, configPath, `
max_line_length: 120
rules:
  TRAILING_WHITESPACE:
    enabled: false
ignore:
  - "vendor/**"
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, 120, result.Config.MaxLineLength)
	assert.Equal(t, []string{"vendor/**"}, result.Config.Ignore)
	require.Contains(t, result.Config.Rules, "TRAILING_WHITESPACE")
	assert.False(t, *result.Config.Rules["TRAILING_WHITESPACE"].Enabled)
	assert.Equal(t, []string{configPath}, result.LoadedFrom)
}

func TestLoad_ProjectConfigSearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".gomdfmt.yaml"), "max_line_length: 100\n")

	sub := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Config.MaxLineLength)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".gomdfmt.yml"), "max_line_length: 100\n")

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path, "search must not leave the repository")
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdfmt.yml"), "max_line_length: 100\nseverity_default: info\n")
	explicit := filepath.Join(tmpDir, "other", "custom.yml")
	writeFile(t, explicit, "max_line_length: 72\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 72, result.Config.MaxLineLength)
	assert.Equal(t, "info", result.Config.SeverityDefault, "unset keys keep the project value")
	assert.Equal(t, explicit, result.Paths.Explicit)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdfmt.yml"), `
max_line_length: 100
rules:
  LINE_LENGTH:
    severity: error
`)

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		MaxLineLength: 60,
		Check:         true,
		Jobs:          4,
		Format:        config.FormatJSON,
		DisableRules:  []string{"no-hard-tabs"},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 60, cfg.MaxLineLength)
	assert.True(t, cfg.Check)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, []string{"no-hard-tabs"}, cfg.DisableRules)
	assert.Equal(t, "error", *cfg.Rules["LINE_LENGTH"].Severity)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "rules: [unclosed\n", "load project config"},
		{"bad severity", "severity_default: fatal\n", "invalid severity"},
		{"bad rule severity", "rules:\n  LINE_LENGTH:\n    severity: loud\n", "rules.LINE_LENGTH.severity"},
		{"bad backup mode", "backups:\n  mode: cloud\n", "invalid backup mode"},
		{"negative line length", "max_line_length: -1\n", "max_line_length"},
		{"bad extension", "extensions: [md]\n", "must start with a dot"},
		{"bad glob", "ignore: ['docs/[']\n", "invalid glob pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, ".gomdfmt.yml"), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdfmt.yml"), `
rules:
  no-trailing-spaces:
    enabled: false
  MD013:
    options:
      line_length: 100
  single-title:
    severity: error
  hard_tabs:
    enabled: false
  not-a-rule:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	rules := result.Config.Rules
	assert.Contains(t, rules, "TRAILING_WHITESPACE", "resolved by name")
	assert.Contains(t, rules, "LINE_LENGTH", "resolved by markdownlint code")
	assert.Contains(t, rules, "MULTIPLE_TOP_LEVEL_HEADINGS", "resolved by legacy alias")
	assert.Contains(t, rules, "HARD_TABS", "IDs match case-insensitively")
	assert.Contains(t, rules, "not-a-rule", "unknown keys are kept")
	assert.NotContains(t, rules, "no-trailing-spaces")

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown rule "not-a-rule"`)
}

func TestLoad_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdfmt.yml"), `
rules:
  MD009:
    enabled: true
  no-trailing-spaces:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate rule configuration")
	// Keys are visited in sorted order, so the name wins over the code.
	assert.False(t, *result.Config.Rules["TRAILING_WHITESPACE"].Enabled)
}

func TestLoad_RejectsUnknownRuleSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cli     *config.Config
		wantErr string
	}{
		{"unknown only", &config.Config{OnlyRules: []string{"nope"}}, `unknown rule "nope"`},
		{"unknown disable", &config.Config{DisableRules: []string{"MD999"}}, `unknown rule "MD999"`},
		{"detector in fix-rules", &config.Config{FixRules: []string{"LINE_LENGTH"}}, "cannot fix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolated(t.TempDir())
			opts.CLIConfig = tt.cli

			_, err := Load(context.Background(), opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MarkdownlintConfig(t *testing.T) {
	t.Parallel()

	t.Run("warns when non-interactive", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeFile(t, filepath.Join(tmpDir, ".markdownlint.json"), `{"MD013": {"line_length": 100}}`)

		result, err := Load(context.Background(), isolated(tmpDir))
		require.NoError(t, err)

		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "gomdfmt migrate")
		assert.False(t, result.MigrationPerformed)
		assert.Equal(t, config.DefaultMaxLineLength, result.Config.MaxLineLength)
	})

	t.Run("converts when accepted", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeFile(t, filepath.Join(tmpDir, ".markdownlint.json"), `{"MD013": {"line_length": 100}, "MD010": false}`)

		var out strings.Builder
		opts := isolated(tmpDir)
		opts.NonInteractive = false
		opts.Prompt = &PromptIO{In: strings.NewReader("y\n"), Out: &out}

		result, err := Load(context.Background(), opts)
		require.NoError(t, err)

		assert.True(t, result.MigrationPerformed)
		assert.Contains(t, out.String(), "Convert it to gomdfmt format?")
		assert.FileExists(t, filepath.Join(tmpDir, DefaultConfigFile))
		assert.Equal(t, 100, result.Config.MaxLineLength)
		assert.False(t, *result.Config.Rules["HARD_TABS"].Enabled)
	})

	t.Run("declined leaves no file", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeFile(t, filepath.Join(tmpDir, ".markdownlint.yaml"), "MD010: false\n")

		opts := isolated(tmpDir)
		opts.NonInteractive = false
		opts.Prompt = &PromptIO{In: strings.NewReader("n\n"), Out: &strings.Builder{}}

		result, err := Load(context.Background(), opts)
		require.NoError(t, err)
		assert.False(t, result.MigrationPerformed)
		assert.NoFileExists(t, filepath.Join(tmpDir, DefaultConfigFile))
	})

	t.Run("project config wins", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeFile(t, filepath.Join(tmpDir, ".markdownlint.yaml"), "MD010: false\n")
		writeFile(t, filepath.Join(tmpDir, ".gomdfmt.yml"), "max_line_length: 90\n")

		result, err := Load(context.Background(), isolated(tmpDir))
		require.NoError(t, err)
		assert.Equal(t, 90, result.Config.MaxLineLength)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "both .gomdfmt.yml and .markdownlint.yaml exist")
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOMDFMT_MAX_LINE_LENGTH", "99")
	t.Setenv("GOMDFMT_CHECK", "true")
	t.Setenv("GOMDFMT_FORMAT", "summary")
	t.Setenv("GOMDFMT_IGNORE", " vendor/** , ,node_modules/**")
	t.Setenv("GOMDFMT_EXTENSIONS", ".md,.mdx")
	t.Setenv("GOMDFMT_BACKUPS_MODE", "none")
	t.Setenv("GOMDFMT_NO_VERIFY", "1")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, 99, cfg.MaxLineLength)
	assert.True(t, cfg.Check)
	assert.Equal(t, config.FormatSummary, cfg.Format)
	assert.Equal(t, []string{"vendor/**", "node_modules/**"}, cfg.Ignore)
	assert.Equal(t, []string{".md", ".mdx"}, cfg.Extensions)
	assert.Equal(t, "none", cfg.Backups.Mode)
	assert.True(t, cfg.NoVerify)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"GOMDFMT_JOBS", "many"},
		{"GOMDFMT_DRY_RUN", "perhaps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)

			err := LoadFromEnv(config.NewConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestLoad_EnvOverridesFileButNotCLI(t *testing.T) {
	t.Setenv("GOMDFMT_MAX_LINE_LENGTH", "90")
	t.Setenv("GOMDFMT_JOBS", "2")

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdfmt.yml"), "max_line_length: 120\n")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Jobs: 8}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 90, result.Config.MaxLineLength)
	assert.Equal(t, 8, result.Config.Jobs)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.Len(t, vars, len(envVars))
	for i, v := range vars {
		assert.True(t, strings.HasPrefix(v.Name, envVarPrefix), v.Name)
		assert.NotEmpty(t, v.Description, v.Name)
		if i > 0 {
			assert.Less(t, vars[i-1].Name, v.Name)
		}
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &config.Config{
		MaxLineLength: 80,
		Ignore:        []string{"a/**"},
		Rules: map[string]config.RuleConfig{
			"LINE_LENGTH": {Enabled: boolPtr(true), Options: map[string]any{"measure": "chars", "line_length": 90}},
		},
		Backups: config.BackupsConfig{Mode: "sidecar"},
	}
	override := &config.Config{
		DryRun: true,
		Rules: map[string]config.RuleConfig{
			"LINE_LENGTH": {Options: map[string]any{"measure": "display"}},
			"HARD_TABS":   {Enabled: boolPtr(false)},
		},
		Backups: config.BackupsConfig{Enabled: true},
	}

	merged := MergeAll(base, override)

	assert.Equal(t, 80, merged.MaxLineLength)
	assert.True(t, merged.DryRun)
	assert.Equal(t, []string{"a/**"}, merged.Ignore)
	assert.True(t, merged.Backups.Enabled)
	assert.Equal(t, "sidecar", merged.Backups.Mode)

	lineLength := merged.Rules["LINE_LENGTH"]
	assert.True(t, *lineLength.Enabled)
	assert.Equal(t, map[string]any{"measure": "display", "line_length": 90}, lineLength.Options)
	assert.False(t, *merged.Rules["HARD_TABS"].Enabled)

	assert.Equal(t, "chars", base.Rules["LINE_LENGTH"].Options["measure"], "base is not mutated")
	assert.Nil(t, MergeAll())
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Format = "sarif"
	cfg.Rules["mystery"] = config.RuleConfig{}

	result := ValidateWithFile(cfg, "/etc/gomdfmt/config.yaml")
	require.False(t, result.Valid())
	assert.Equal(t, "/etc/gomdfmt/config.yaml: format: invalid format \"sarif\"; must be one of: text, table, json, diff, summary",
		result.Errors[0].Error())

	messages := result.AllMessages()
	require.Len(t, messages, 2)
	assert.True(t, strings.HasPrefix(messages[0], "error: "))
	assert.True(t, strings.HasPrefix(messages[1], "warning: "))

	assert.True(t, IsValidSeverity("info"))
	assert.False(t, IsValidFormat("sarif"))
}
