package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/highlight"
	"github.com/pelletier/go-toml/v2"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package to ensure a single source of truth.
type DefaultConfigValues struct {
	FormatterEngine         string
	FormatterTimeoutSeconds int
	LineLength              int
	AggressiveLevel         int

	ExportBasename string

	ImageTimeoutSeconds int
	ImageWidth          int
	ImageTheme          string
	ThemeList           string

	DocumentHeading  string
	DocumentFont     string
	DocumentFontSize int

	ComplexityLowThreshold    int
	ComplexityMediumThreshold int

	LogFile  string
	LogLevel string
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		FormatterEngine:         string(domain.DefaultFormatterEngine),
		FormatterTimeoutSeconds: domain.DefaultFormatterTimeoutSeconds,
		LineLength:              domain.DefaultLineLength,
		AggressiveLevel:         domain.DefaultAggressiveLevel,

		ExportBasename: domain.DefaultExportBasename,

		ImageTimeoutSeconds: domain.DefaultImageTimeoutSeconds,
		ImageWidth:          domain.DefaultImageWidth,
		ImageTheme:          domain.DefaultImageTheme,
		ThemeList:           strings.Join(highlight.ThemeNames(), ", "),

		DocumentHeading:  domain.DefaultDocumentHeading,
		DocumentFont:     domain.DefaultDocumentFont,
		DocumentFontSize: domain.DefaultDocumentFontSize,

		ComplexityLowThreshold:    domain.DefaultComplexityLowThreshold,
		ComplexityMediumThreshold: domain.DefaultComplexityMediumThreshold,

		LogFile:  domain.DefaultLogFile,
		LogLevel: domain.DefaultLogLevel,
	}
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	// The rendered file must stay valid TOML
	var probe map[string]interface{}
	if err := toml.Unmarshal(buf.Bytes(), &probe); err != nil {
		return "", fmt.Errorf("default config template is not valid TOML: %w", err)
	}

	return buf.String(), nil
}
