package app

import (
	"fmt"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// SessionControllerBuilder provides a builder pattern for creating SessionController
type SessionControllerBuilder struct {
	formatter       domain.FormatterService
	analysis        domain.AnalysisService
	backends        []domain.ExportBackend
	input           domain.SessionInput
	view            domain.SessionView
	logger          *logging.Logger
	overwritePrompt bool
	autoReport      bool
}

// NewSessionControllerBuilder creates a new builder
func NewSessionControllerBuilder() *SessionControllerBuilder {
	return &SessionControllerBuilder{overwritePrompt: true}
}

// WithFormatter sets the formatter service
func (b *SessionControllerBuilder) WithFormatter(f domain.FormatterService) *SessionControllerBuilder {
	b.formatter = f
	return b
}

// WithAnalysis sets the analysis service
func (b *SessionControllerBuilder) WithAnalysis(a domain.AnalysisService) *SessionControllerBuilder {
	b.analysis = a
	return b
}

// WithBackend adds an export backend. A later backend of the same kind
// replaces an earlier one.
func (b *SessionControllerBuilder) WithBackend(backends ...domain.ExportBackend) *SessionControllerBuilder {
	b.backends = append(b.backends, backends...)
	return b
}

// WithInput sets the keystroke and text source
func (b *SessionControllerBuilder) WithInput(input domain.SessionInput) *SessionControllerBuilder {
	b.input = input
	return b
}

// WithView sets the renderer
func (b *SessionControllerBuilder) WithView(view domain.SessionView) *SessionControllerBuilder {
	b.view = view
	return b
}

// WithLogger sets the logger
func (b *SessionControllerBuilder) WithLogger(logger *logging.Logger) *SessionControllerBuilder {
	b.logger = logger
	return b
}

// WithOverwritePrompt asks before replacing existing files when enabled,
// and replaces them silently otherwise
func (b *SessionControllerBuilder) WithOverwritePrompt(enabled bool) *SessionControllerBuilder {
	b.overwritePrompt = enabled
	return b
}

// WithAutoReport renders the analysis report right after formatting
func (b *SessionControllerBuilder) WithAutoReport(enabled bool) *SessionControllerBuilder {
	b.autoReport = enabled
	return b
}

// Build creates the SessionController with the configured dependencies
func (b *SessionControllerBuilder) Build() (*SessionController, error) {
	if b.formatter == nil {
		return nil, fmt.Errorf("formatter service is required")
	}
	if b.analysis == nil {
		return nil, fmt.Errorf("analysis service is required")
	}
	if b.input == nil {
		return nil, fmt.Errorf("session input is required")
	}
	if b.view == nil {
		return nil, fmt.Errorf("session view is required")
	}

	logger := b.logger
	if logger == nil {
		logger = logging.Nop()
	}

	backends := make(map[domain.ExportKind]domain.ExportBackend, len(b.backends))
	for _, backend := range b.backends {
		backends[backend.Kind()] = backend
	}

	c := &SessionController{
		formatter:       b.formatter,
		analysis:        b.analysis,
		backends:        backends,
		input:           b.input,
		view:            b.view,
		logger:          logger,
		overwritePrompt: b.overwritePrompt,
		autoReport:      b.autoReport,
		state:           domain.StateAwaitingSource,
	}
	c.registerCommands()
	return c, nil
}
