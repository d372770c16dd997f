package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/analyzer"
	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// AnalysisServiceImpl adapts the static analyzer to the session
type AnalysisServiceImpl struct {
	analyzer *analyzer.Analyzer
	logger   *logging.Logger
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(a *analyzer.Analyzer, logger *logging.Logger) *AnalysisServiceImpl {
	return &AnalysisServiceImpl{analyzer: a, logger: logger}
}

// NewAnalysisServiceFromConfig creates an analysis service with the
// configured risk thresholds
func NewAnalysisServiceFromConfig(cfg config.AnalysisConfig, logger *logging.Logger) *AnalysisServiceImpl {
	return NewAnalysisService(analyzer.New(analyzer.WithThresholds(cfg.LowThreshold, cfg.MediumThreshold)), logger)
}

// Analyze implements domain.AnalysisService. Every failure, including a
// panic inside the analyzer, is returned as an ANALYSIS_ERROR.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, source string) (report *domain.AnalysisReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("analysis panicked: %v", r)
			report = nil
			err = domain.NewAnalysisError("analysis failed", fmt.Errorf("%v", r))
		}
	}()

	s.logger.Debugf("analyzing %d bytes", len(source))
	report, err = s.analyzer.Analyze(ctx, source)
	if err != nil {
		s.logger.Errorf("analysis failed: %v", err)
		var syntaxErr *domain.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, domain.NewAnalysisError("cannot analyze invalid Python source", err)
		}
		return nil, domain.NewAnalysisError("analysis failed", err)
	}

	s.logger.Infof("analysis found %d dependencies, complexity %d, %d unused symbols",
		len(report.Dependencies), report.Complexity, len(report.Unused))
	return report, nil
}

var _ domain.AnalysisService = (*AnalysisServiceImpl)(nil)
