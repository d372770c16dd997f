package mcp

import (
	"github.com/ludo-technologies/pyformat/app"
	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/logging"
	"github.com/ludo-technologies/pyformat/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	logger     *logging.Logger
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, logger *logging.Logger) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		logger:     logger,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// BuildFormatter creates a formatter service for one call. A non-empty engine
// and a positive line length replace the configured values.
func (d *Dependencies) BuildFormatter(engine string, lineLength int) (*service.FormatterServiceImpl, error) {
	cfg := d.config.Formatter
	if engine != "" {
		if !domain.FormatterEngine(engine).IsValid() {
			return nil, domain.NewInvalidInputError("unknown engine: "+engine, nil)
		}
		cfg.Engine = engine
	}
	if lineLength > 0 {
		cfg.LineLength = lineLength
	}
	return service.NewFormatterServiceFromConfig(cfg, d.logger)
}

// BuildFormatUseCase assembles a FormatUseCase around formatter.
func (d *Dependencies) BuildFormatUseCase(formatter domain.FormatterService) (*app.FormatUseCase, error) {
	return app.NewFormatUseCaseBuilder().
		WithFormatter(formatter).
		WithFileReader(d.fileReader).
		WithLogger(d.logger).
		Build()
}

// BuildAnalyzeUseCase assembles a fresh AnalyzeUseCase with injected dependencies.
func (d *Dependencies) BuildAnalyzeUseCase() (*app.AnalyzeUseCase, error) {
	return app.NewAnalyzeUseCaseBuilder().
		WithAnalysis(service.NewAnalysisServiceFromConfig(d.config.Analysis, d.logger)).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewReportFormatter()).
		WithLogger(d.logger).
		Build()
}
