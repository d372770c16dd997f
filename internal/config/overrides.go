package config

// Flag names that map onto config keys
const (
	FlagEngine      = "engine"
	FlagLineLength  = "line-length"
	FlagOutputDir   = "output-dir"
	FlagTheme       = "theme"
	FlagLineNumbers = "line-numbers"
	FlagNoColor     = "no-color"
	FlagAnalyze     = "analyze"
	FlagChromePath  = "chrome-path"
	FlagLogFile     = "log-file"
	FlagLogLevel    = "log-level"
)

// Overrides carries command line values. A value only replaces the
// configured one when its flag was set explicitly.
type Overrides struct {
	Engine      string
	LineLength  int
	OutputDir   string
	Theme       string
	LineNumbers bool
	NoColor     bool
	AutoReport  bool
	ChromePath  string
	LogFile     string
	LogLevel    string
}

// WasExplicitlySet checks if a flag was explicitly set by the user
func WasExplicitlySet(flags map[string]bool, flagName string) bool {
	if flags == nil {
		return false
	}
	return flags[flagName]
}

// merge returns override when flagName was set explicitly, base otherwise
func merge[T any](base, override T, flagName string, flags map[string]bool) T {
	if WasExplicitlySet(flags, flagName) {
		return override
	}
	return base
}

// ApplyOverrides merges explicitly set flags into c and validates the result
func (c *Config) ApplyOverrides(o Overrides, explicit map[string]bool) error {
	c.Formatter.Engine = merge(c.Formatter.Engine, o.Engine, FlagEngine, explicit)
	c.Formatter.LineLength = merge(c.Formatter.LineLength, o.LineLength, FlagLineLength, explicit)
	c.Export.OutputDir = merge(c.Export.OutputDir, o.OutputDir, FlagOutputDir, explicit)
	c.Image.ChromePath = merge(c.Image.ChromePath, o.ChromePath, FlagChromePath, explicit)
	c.Analysis.AutoReport = merge(c.Analysis.AutoReport, o.AutoReport, FlagAnalyze, explicit)
	c.Logging.File = merge(c.Logging.File, o.LogFile, FlagLogFile, explicit)
	c.Logging.Level = merge(c.Logging.Level, o.LogLevel, FlagLogLevel, explicit)

	if WasExplicitlySet(explicit, FlagTheme) {
		c.Image.Theme = o.Theme
		c.Display.Theme = o.Theme
	}
	if WasExplicitlySet(explicit, FlagLineNumbers) {
		c.Display.LineNumbers = o.LineNumbers
		c.Image.LineNumbers = o.LineNumbers
	}
	if WasExplicitlySet(explicit, FlagNoColor) && o.NoColor {
		c.Display.Color = "never"
	}

	return c.Validate()
}
