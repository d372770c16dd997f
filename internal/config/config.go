package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/highlight"
	"github.com/spf13/viper"
)

// ConfigFileNames are looked up, in order, in every directory from the
// start directory up to the filesystem root.
var ConfigFileNames = []string{".pyformat.toml", "pyformat.toml"}

// EnvPrefix prefixes the environment variables that override config keys:
// PYFORMAT_FORMATTER_ENGINE overrides formatter.engine.
const EnvPrefix = "PYFORMAT"

// Config represents the main configuration structure
type Config struct {
	Formatter FormatterConfig `mapstructure:"formatter" yaml:"formatter"`
	Export    ExportConfig    `mapstructure:"export" yaml:"export"`
	Image     ImageConfig     `mapstructure:"image" yaml:"image"`
	Document  DocumentConfig  `mapstructure:"document" yaml:"document"`
	Clipboard ClipboardConfig `mapstructure:"clipboard" yaml:"clipboard"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" yaml:"analysis"`
	Display   DisplayConfig   `mapstructure:"display" yaml:"display"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`

	// Source is the file the configuration was read from, empty for defaults
	Source string `mapstructure:"-" yaml:"-"`
}

// FormatterConfig selects and tunes the formatting engine
type FormatterConfig struct {
	// Engine is one of builtin, autopep8, black, ruff, command
	Engine string `mapstructure:"engine" yaml:"engine"`

	// Command is the argv of the "command" engine. Source is written to its
	// stdin and the formatted text read from its stdout.
	Command []string `mapstructure:"command" yaml:"command"`

	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	LineLength     int `mapstructure:"line_length" yaml:"line_length"`

	// Aggressive is the number of --aggressive flags passed to autopep8
	Aggressive int `mapstructure:"aggressive" yaml:"aggressive"`
}

// ExportConfig holds settings shared by the file-writing export backends
type ExportConfig struct {
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir"`
	DefaultBasename string `mapstructure:"default_basename" yaml:"default_basename"`

	// OverwritePrompt asks before replacing an existing file. When false
	// existing files are replaced silently.
	OverwritePrompt bool `mapstructure:"overwrite_prompt" yaml:"overwrite_prompt"`

	// OpenAfterExport opens written images with the system viewer
	OpenAfterExport bool `mapstructure:"open_after_export" yaml:"open_after_export"`
}

// ImageConfig configures the headless browser used for image export
type ImageConfig struct {
	ChromePath     string `mapstructure:"chrome_path" yaml:"chrome_path"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Width          int    `mapstructure:"width" yaml:"width"`
	Theme          string `mapstructure:"theme" yaml:"theme"`
	LineNumbers    bool   `mapstructure:"line_numbers" yaml:"line_numbers"`
}

// DocumentConfig configures Word export
type DocumentConfig struct {
	Heading  string `mapstructure:"heading" yaml:"heading"`
	Font     string `mapstructure:"font" yaml:"font"`
	FontSize int    `mapstructure:"font_size" yaml:"font_size"`
}

// ClipboardConfig configures clipboard export
type ClipboardConfig struct {
	// OSC52Fallback writes an OSC52 escape sequence to the terminal when no
	// system clipboard is available
	OSC52Fallback bool `mapstructure:"osc52_fallback" yaml:"osc52_fallback"`
}

// AnalysisConfig holds static analysis configuration
type AnalysisConfig struct {
	// AutoReport renders the analysis summary right after formatting
	AutoReport bool `mapstructure:"auto_report" yaml:"auto_report"`

	LowThreshold    int `mapstructure:"low_threshold" yaml:"low_threshold"`
	MediumThreshold int `mapstructure:"medium_threshold" yaml:"medium_threshold"`

	// IncludePatterns and ExcludePatterns filter files in batch mode
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// DisplayConfig controls terminal rendering
type DisplayConfig struct {
	LineNumbers  bool `mapstructure:"line_numbers" yaml:"line_numbers"`
	ShowOriginal bool `mapstructure:"show_original" yaml:"show_original"`

	// Color is auto, always or never
	Color string `mapstructure:"color" yaml:"color"`
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LoggingConfig configures the log file
type LoggingConfig struct {
	// File is the log path. Empty means code_formatter.log next to the executable.
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			Engine:         string(domain.DefaultFormatterEngine),
			Command:        []string{},
			TimeoutSeconds: domain.DefaultFormatterTimeoutSeconds,
			LineLength:     domain.DefaultLineLength,
			Aggressive:     domain.DefaultAggressiveLevel,
		},
		Export: ExportConfig{
			OutputDir:       ".",
			DefaultBasename: domain.DefaultExportBasename,
			OverwritePrompt: true,
		},
		Image: ImageConfig{
			TimeoutSeconds: domain.DefaultImageTimeoutSeconds,
			Width:          domain.DefaultImageWidth,
			Theme:          domain.DefaultImageTheme,
		},
		Document: DocumentConfig{
			Heading:  domain.DefaultDocumentHeading,
			Font:     domain.DefaultDocumentFont,
			FontSize: domain.DefaultDocumentFontSize,
		},
		Clipboard: ClipboardConfig{
			OSC52Fallback: true,
		},
		Analysis: AnalysisConfig{
			LowThreshold:    domain.DefaultComplexityLowThreshold,
			MediumThreshold: domain.DefaultComplexityMediumThreshold,
			IncludePatterns: []string{"**/*.py"},
			ExcludePatterns: []string{"**/.venv/**", "**/venv/**", "**/__pycache__/**", "**/.git/**"},
		},
		Display: DisplayConfig{
			ShowOriginal: true,
			Color:        "auto",
			Theme:        domain.DefaultImageTheme,
		},
		Logging: LoggingConfig{
			Level: domain.DefaultLogLevel,
		},
	}
}

// LoadConfig loads configuration from configPath, or discovers a config file
// starting at startDir when configPath is empty. Environment variables are
// applied on top of whatever was found.
func LoadConfig(configPath, startDir string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	setDefaults(v, config)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" && startDir != "" {
		configPath = findDefaultConfig(startDir)
	}

	switch {
	case configPath != "" && filepath.Base(configPath) == pyprojectFileName:
		section, err := readPyprojectSection(configPath)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(section); err != nil {
			return nil, domain.NewConfigError(fmt.Sprintf("failed to merge [tool.pyformat] from %s", configPath), err)
		}
		config.Source = configPath
	case configPath != "":
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
		}
		config.Source = configPath
	case startDir != "":
		section, path, err := LoadPyprojectSection(startDir)
		if err != nil {
			return nil, err
		}
		if section != nil {
			if err := v.MergeConfigMap(section); err != nil {
				return nil, domain.NewConfigError(fmt.Sprintf("failed to merge [tool.pyformat] from %s", path), err)
			}
			config.Source = path
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// setDefaults registers every key with viper so environment overrides and
// partial files are merged over the defaults.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("formatter.engine", c.Formatter.Engine)
	v.SetDefault("formatter.command", c.Formatter.Command)
	v.SetDefault("formatter.timeout_seconds", c.Formatter.TimeoutSeconds)
	v.SetDefault("formatter.line_length", c.Formatter.LineLength)
	v.SetDefault("formatter.aggressive", c.Formatter.Aggressive)

	v.SetDefault("export.output_dir", c.Export.OutputDir)
	v.SetDefault("export.default_basename", c.Export.DefaultBasename)
	v.SetDefault("export.overwrite_prompt", c.Export.OverwritePrompt)
	v.SetDefault("export.open_after_export", c.Export.OpenAfterExport)

	v.SetDefault("image.chrome_path", c.Image.ChromePath)
	v.SetDefault("image.timeout_seconds", c.Image.TimeoutSeconds)
	v.SetDefault("image.width", c.Image.Width)
	v.SetDefault("image.theme", c.Image.Theme)
	v.SetDefault("image.line_numbers", c.Image.LineNumbers)

	v.SetDefault("document.heading", c.Document.Heading)
	v.SetDefault("document.font", c.Document.Font)
	v.SetDefault("document.font_size", c.Document.FontSize)

	v.SetDefault("clipboard.osc52_fallback", c.Clipboard.OSC52Fallback)

	v.SetDefault("analysis.auto_report", c.Analysis.AutoReport)
	v.SetDefault("analysis.low_threshold", c.Analysis.LowThreshold)
	v.SetDefault("analysis.medium_threshold", c.Analysis.MediumThreshold)
	v.SetDefault("analysis.include_patterns", c.Analysis.IncludePatterns)
	v.SetDefault("analysis.exclude_patterns", c.Analysis.ExcludePatterns)

	v.SetDefault("display.line_numbers", c.Display.LineNumbers)
	v.SetDefault("display.show_original", c.Display.ShowOriginal)
	v.SetDefault("display.color", c.Display.Color)
	v.SetDefault("display.theme", c.Display.Theme)

	v.SetDefault("logging.file", c.Logging.File)
	v.SetDefault("logging.level", c.Logging.Level)
}

// findDefaultConfig walks up from startDir looking for a config file
func findDefaultConfig(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

var validEngines = map[string]bool{
	string(domain.EngineBuiltin):  true,
	string(domain.EngineAutopep8): true,
	string(domain.EngineBlack):    true,
	string(domain.EngineRuff):     true,
	string(domain.EngineCommand):  true,
}

var validColorModes = map[string]bool{"auto": true, "always": true, "never": true}

var validLogLevels = map[string]bool{"debug": true, "info": true, "error": true}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !validEngines[c.Formatter.Engine] {
		return domain.NewConfigError(fmt.Sprintf("invalid formatter.engine '%s', must be one of: builtin, autopep8, black, ruff, command", c.Formatter.Engine), nil)
	}
	if c.Formatter.Engine == string(domain.EngineCommand) && len(c.Formatter.Command) == 0 {
		return domain.NewConfigError("formatter.command must be set when formatter.engine is 'command'", nil)
	}
	if c.Formatter.TimeoutSeconds < 1 {
		return domain.NewConfigError(fmt.Sprintf("formatter.timeout_seconds must be >= 1, got %d", c.Formatter.TimeoutSeconds), nil)
	}
	if c.Formatter.LineLength < 1 {
		return domain.NewConfigError(fmt.Sprintf("formatter.line_length must be >= 1, got %d", c.Formatter.LineLength), nil)
	}
	if c.Formatter.Aggressive < 0 {
		return domain.NewConfigError(fmt.Sprintf("formatter.aggressive must be >= 0, got %d", c.Formatter.Aggressive), nil)
	}

	if strings.TrimSpace(c.Export.DefaultBasename) == "" {
		return domain.NewConfigError("export.default_basename cannot be empty", nil)
	}

	if c.Image.TimeoutSeconds < 1 {
		return domain.NewConfigError(fmt.Sprintf("image.timeout_seconds must be >= 1, got %d", c.Image.TimeoutSeconds), nil)
	}
	if c.Image.Width < 100 {
		return domain.NewConfigError(fmt.Sprintf("image.width must be >= 100, got %d", c.Image.Width), nil)
	}

	for key, theme := range map[string]string{"image.theme": c.Image.Theme, "display.theme": c.Display.Theme} {
		if _, ok := highlight.LookupTheme(theme); !ok {
			return domain.NewConfigError(fmt.Sprintf("invalid %s '%s', must be one of: %s", key, theme, strings.Join(highlight.ThemeNames(), ", ")), nil)
		}
	}

	if c.Document.FontSize < 1 {
		return domain.NewConfigError(fmt.Sprintf("document.font_size must be >= 1, got %d", c.Document.FontSize), nil)
	}

	if c.Analysis.LowThreshold < 1 {
		return domain.NewConfigError(fmt.Sprintf("analysis.low_threshold must be >= 1, got %d", c.Analysis.LowThreshold), nil)
	}
	if c.Analysis.MediumThreshold <= c.Analysis.LowThreshold {
		return domain.NewConfigError(fmt.Sprintf("analysis.medium_threshold (%d) must be > low_threshold (%d)",
			c.Analysis.MediumThreshold, c.Analysis.LowThreshold), nil)
	}
	if len(c.Analysis.IncludePatterns) == 0 {
		return domain.NewConfigError("analysis.include_patterns cannot be empty", nil)
	}

	if !validColorModes[c.Display.Color] {
		return domain.NewConfigError(fmt.Sprintf("invalid display.color '%s', must be one of: auto, always, never", c.Display.Color), nil)
	}

	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return domain.NewConfigError(fmt.Sprintf("invalid logging.level '%s', must be one of: debug, info, error", c.Logging.Level), nil)
	}

	return nil
}
