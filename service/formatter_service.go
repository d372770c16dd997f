package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/formatter"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// FormatterServiceImpl runs one formatting engine and computes the
// statistics shown after formatting.
type FormatterServiceImpl struct {
	engine    domain.FormatterEngine
	formatter domain.SourceFormatter
	logger    *logging.Logger
	now       func() time.Time
}

// NewFormatterService creates a formatter service around an engine
func NewFormatterService(engine domain.FormatterEngine, f domain.SourceFormatter, logger *logging.Logger) *FormatterServiceImpl {
	return &FormatterServiceImpl{
		engine:    engine,
		formatter: f,
		logger:    logger,
		now:       time.Now,
	}
}

// NewFormatterServiceFromConfig selects the engine named in cfg
func NewFormatterServiceFromConfig(cfg config.FormatterConfig, logger *logging.Logger) (*FormatterServiceImpl, error) {
	engine := domain.FormatterEngine(cfg.Engine)
	if engine == "" {
		engine = domain.DefaultFormatterEngine
	}
	if engine == domain.EngineBuiltin {
		return NewFormatterService(engine, formatter.New(), logger), nil
	}

	external, err := NewExternalFormatter(cfg)
	if err != nil {
		return nil, err
	}
	return NewFormatterService(engine, external, logger), nil
}

// Engine returns the engine name
func (s *FormatterServiceImpl) Engine() domain.FormatterEngine {
	return s.engine
}

// Format implements domain.FormatterService
func (s *FormatterServiceImpl) Format(ctx context.Context, source string) (*domain.FormattedResult, error) {
	if strings.TrimSpace(source) == "" {
		s.logger.Errorf("format failed: no source code provided")
		return nil, domain.NewFormatError("no source code provided", nil)
	}

	s.logger.Infof("formatting %d characters with %s", utf8.RuneCountInString(source), s.engine)
	start := s.now()
	text, err := s.formatter.Format(ctx, source)
	elapsed := s.now().Sub(start)
	if err != nil {
		s.logger.Errorf("format failed with %s: %v", s.engine, err)
		return nil, domain.NewFormatError(formatFailureMessage(err, s.engine), err)
	}

	result := &domain.FormattedResult{
		Source:      source,
		Text:        text,
		Engine:      s.engine,
		Duration:    elapsed,
		LinesBefore: domain.CountLines(source),
		LinesAfter:  domain.CountLines(text),
		Characters:  utf8.RuneCountInString(text),
	}
	s.logger.Infof("formatted %d lines into %d lines in %s", result.LinesBefore, result.LinesAfter, elapsed)
	return result, nil
}

func formatFailureMessage(err error, engine domain.FormatterEngine) string {
	var syntaxErr *domain.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "invalid Python source"
	}
	return fmt.Sprintf("%s failed", engine)
}

var _ domain.FormatterService = (*FormatterServiceImpl)(nil)
