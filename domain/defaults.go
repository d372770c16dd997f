package domain

// Formatter defaults
const (
	// DefaultFormatterEngine is the engine used when none is configured.
	// The builtin engine needs no external process.
	DefaultFormatterEngine = EngineBuiltin

	// DefaultFormatterTimeoutSeconds bounds a single external formatter run
	DefaultFormatterTimeoutSeconds = 30

	// DefaultLineLength is passed to external formatters that accept one
	DefaultLineLength = 79

	// DefaultAggressiveLevel is the number of --aggressive flags given to autopep8
	DefaultAggressiveLevel = 2
)

// Complexity thresholds, McCabe style
const (
	// DefaultComplexityLowThreshold is the upper bound for low risk units
	DefaultComplexityLowThreshold = 9

	// DefaultComplexityMediumThreshold is the upper bound for medium risk units
	DefaultComplexityMediumThreshold = 19
)

// Export defaults
const (
	DefaultExportBasename = "formatted_code"

	DefaultImageTimeoutSeconds = 30
	DefaultImageWidth          = 1200
	DefaultImageTheme          = "dracula"

	DefaultDocumentHeading  = "Code"
	DefaultDocumentFont     = "Courier New"
	DefaultDocumentFontSize = 10
)

// Logging defaults
const (
	DefaultLogFile  = "code_formatter.log"
	DefaultLogLevel = "error"
)

// AssessRiskLevel maps a complexity score to low / medium / high
func AssessRiskLevel(complexity, low, medium int) string {
	switch {
	case complexity <= low:
		return "low"
	case complexity <= medium:
		return "medium"
	default:
		return "high"
	}
}
