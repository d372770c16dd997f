package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "builtin", config.Formatter.Engine)
	assert.Equal(t, 30, config.Formatter.TimeoutSeconds)
	assert.Equal(t, "formatted_code", config.Export.DefaultBasename)
	assert.True(t, config.Export.OverwritePrompt)
	assert.Equal(t, "dracula", config.Image.Theme)
	assert.Equal(t, "Code", config.Document.Heading)
	assert.True(t, config.Clipboard.OSC52Fallback)
	assert.Equal(t, 9, config.Analysis.LowThreshold)
	assert.Equal(t, 19, config.Analysis.MediumThreshold)
	assert.Equal(t, "error", config.Logging.Level)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Formatter, config.Formatter)
	assert.Empty(t, config.Source)
}

func TestLoadConfig_DiscoversFileInParent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".pyformat.toml"), `
[formatter]
engine = "black"
line_length = 100

[export]
default_basename = "snippet"
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	config, err := LoadConfig("", nested)
	require.NoError(t, err)
	assert.Equal(t, "black", config.Formatter.Engine)
	assert.Equal(t, 100, config.Formatter.LineLength)
	assert.Equal(t, "snippet", config.Export.DefaultBasename)
	// untouched keys keep their defaults
	assert.Equal(t, 30, config.Formatter.TimeoutSeconds)
	assert.Equal(t, filepath.Join(root, ".pyformat.toml"), config.Source)
}

func TestLoadConfig_Pyproject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"), `
[project]
name = "demo"

[tool.pyformat.analysis]
auto_report = true
low_threshold = 4
medium_threshold = 8
`)

	config, err := LoadConfig("", root)
	require.NoError(t, err)
	assert.True(t, config.Analysis.AutoReport)
	assert.Equal(t, 4, config.Analysis.LowThreshold)
	assert.Equal(t, 8, config.Analysis.MediumThreshold)
	assert.Equal(t, filepath.Join(root, "pyproject.toml"), config.Source)
}

func TestLoadConfig_PyprojectWithoutSection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"), "[project]\nname = \"demo\"\n")

	config, err := LoadConfig("", root)
	require.NoError(t, err)
	assert.Empty(t, config.Source)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, "[image]\nwidth = 800\ntheme = \"monokai\"\n")

	config, err := LoadConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, 800, config.Image.Width)
	assert.Equal(t, "monokai", config.Image.Theme)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("PYFORMAT_FORMATTER_ENGINE", "ruff")
	t.Setenv("PYFORMAT_LOGGING_LEVEL", "debug")

	config, err := LoadConfig("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "ruff", config.Formatter.Engine)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "missing.toml"), "")
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		writeFile(t, path, "[formatter]\nengine = \"gofmt\"\n")
		_, err := LoadConfig(path, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "formatter.engine")
	})

	t.Run("broken pyproject", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pyproject.toml"), "[tool.pyformat\n")
		_, err := LoadConfig("", root)
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"command engine without command", func(c *Config) { c.Formatter.Engine = "command" }, "formatter.command"},
		{"zero timeout", func(c *Config) { c.Formatter.TimeoutSeconds = 0 }, "formatter.timeout_seconds"},
		{"empty basename", func(c *Config) { c.Export.DefaultBasename = " " }, "export.default_basename"},
		{"narrow image", func(c *Config) { c.Image.Width = 10 }, "image.width"},
		{"unknown theme", func(c *Config) { c.Image.Theme = "neon" }, "image.theme"},
		{"font size", func(c *Config) { c.Document.FontSize = 0 }, "document.font_size"},
		{"thresholds", func(c *Config) { c.Analysis.MediumThreshold = c.Analysis.LowThreshold }, "analysis.medium_threshold"},
		{"no include patterns", func(c *Config) { c.Analysis.IncludePatterns = nil }, "analysis.include_patterns"},
		{"color mode", func(c *Config) { c.Display.Color = "sometimes" }, "display.color"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.False(t, domain.IsRecoverable(err))
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	c := DefaultConfig()
	o := Overrides{
		Engine:      "black",
		LineLength:  120,
		Theme:       "monokai",
		LineNumbers: true,
		NoColor:     true,
		OutputDir:   "ignored",
	}
	explicit := map[string]bool{
		FlagEngine:      true,
		FlagLineLength:  true,
		FlagTheme:       true,
		FlagLineNumbers: true,
		FlagNoColor:     true,
	}

	require.NoError(t, c.ApplyOverrides(o, explicit))
	assert.Equal(t, "black", c.Formatter.Engine)
	assert.Equal(t, 120, c.Formatter.LineLength)
	assert.Equal(t, "monokai", c.Image.Theme)
	assert.Equal(t, "monokai", c.Display.Theme)
	assert.True(t, c.Display.LineNumbers)
	assert.Equal(t, "never", c.Display.Color)
	// not explicitly set
	assert.Equal(t, ".", c.Export.OutputDir)
}

func TestApplyOverrides_Invalid(t *testing.T) {
	c := DefaultConfig()
	err := c.ApplyOverrides(Overrides{Engine: "nope"}, map[string]bool{FlagEngine: true})
	require.Error(t, err)
}

func TestGenerateDefaultConfigTOML(t *testing.T) {
	content, err := GenerateDefaultConfigTOML()
	require.NoError(t, err)
	assert.Contains(t, content, `engine = "builtin"`)
	assert.Contains(t, content, `default_basename = "formatted_code"`)
	assert.Contains(t, content, "dracula, github-light, monokai")

	// The rendered template loads back to the defaults
	path := filepath.Join(t.TempDir(), ".pyformat.toml")
	writeFile(t, path, content)
	loaded, err := LoadConfig(path, "")
	require.NoError(t, err)

	expected := DefaultConfig()
	assert.Equal(t, expected.Formatter.Engine, loaded.Formatter.Engine)
	assert.Equal(t, expected.Formatter.TimeoutSeconds, loaded.Formatter.TimeoutSeconds)
	assert.Equal(t, expected.Export, loaded.Export)
	assert.Equal(t, expected.Image, loaded.Image)
	assert.Equal(t, expected.Document, loaded.Document)
	assert.Equal(t, expected.Clipboard, loaded.Clipboard)
	assert.Equal(t, expected.Display, loaded.Display)
	assert.Equal(t, expected.Logging, loaded.Logging)
	assert.Equal(t, expected.Analysis.IncludePatterns, loaded.Analysis.IncludePatterns)
	assert.Equal(t, expected.Analysis.ExcludePatterns, loaded.Analysis.ExcludePatterns)
}
