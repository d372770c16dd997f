package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/pyformat/domain"
)

// ReportFormatterImpl writes analysis reports as text, JSON or YAML
type ReportFormatterImpl struct {
	utils *FormatUtils
}

// NewReportFormatter creates a report formatter
func NewReportFormatter() *ReportFormatterImpl {
	return &ReportFormatterImpl{utils: NewFormatUtils()}
}

// Write encodes a single report
func (f *ReportFormatterImpl) Write(report *domain.AnalysisReport, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		_, err := io.WriteString(w, f.utils.FormatMainHeader("Analysis Report")+f.FormatText(report))
		if err != nil {
			return domain.NewOutputError("failed to write report", err)
		}
		return nil
	case domain.OutputFormatJSON:
		return WriteJSON(w, report)
	case domain.OutputFormatYAML:
		return WriteYAML(w, report)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteFiles encodes the reports of a batch analysis
func (f *ReportFormatterImpl) WriteFiles(results []domain.FileAnalysis, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		var b strings.Builder
		b.WriteString(f.utils.FormatMainHeader("Analysis Report"))
		for _, r := range results {
			b.WriteString(r.Path + "\n")
			b.WriteString(strings.Repeat("-", len(r.Path)) + "\n")
			if r.Error != "" {
				b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Error", r.Error))
				b.WriteString(f.utils.FormatSectionSeparator())
				continue
			}
			b.WriteString(f.FormatText(r.Report))
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return domain.NewOutputError("failed to write report", err)
		}
		return nil
	case domain.OutputFormatJSON:
		return WriteJSON(w, results)
	case domain.OutputFormatYAML:
		return WriteYAML(w, results)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatText renders the sections of a report as plain text
func (f *ReportFormatterImpl) FormatText(report *domain.AnalysisReport) string {
	u := f.utils
	var b strings.Builder

	b.WriteString(u.FormatSectionHeader("Dependencies"))
	if len(report.Dependencies) == 0 {
		b.WriteString(u.FormatItem(SectionPadding, "(none)"))
	}
	for _, dep := range report.Dependencies {
		b.WriteString(u.FormatItem(SectionPadding, dep))
	}
	b.WriteString(u.FormatSectionSeparator())

	b.WriteString(u.FormatSectionHeader("Complexity"))
	b.WriteString(u.FormatLabelWithIndent(SectionPadding, "Score", report.Complexity))
	for _, unit := range report.Units {
		b.WriteString(u.FormatItem(ItemPadding, fmt.Sprintf("%-30s %3d  %-6s (line %d)",
			unit.Name, unit.Complexity, unit.RiskLevel, unit.Line)))
	}
	b.WriteString(u.FormatSectionSeparator())

	b.WriteString(u.FormatSectionHeader("Unused code"))
	if len(report.Unused) == 0 {
		b.WriteString(u.FormatItem(SectionPadding, "(none)"))
	}
	for _, kind := range []domain.SymbolKind{domain.SymbolImport, domain.SymbolVariable, domain.SymbolFunction, domain.SymbolClass} {
		symbols := report.UnusedOfKind(kind)
		if len(symbols) == 0 {
			continue
		}
		b.WriteString(u.FormatItem(SectionPadding, unusedHeading(kind)+":"))
		for _, s := range symbols {
			b.WriteString(u.FormatItem(ItemPadding, fmt.Sprintf("%s (line %d, %s)", s.Name, s.Line, s.Scope)))
		}
	}
	b.WriteString(u.FormatSectionSeparator())

	b.WriteString(u.FormatSectionHeader("Counts"))
	b.WriteString(u.FormatLabelWithIndent(SectionPadding, "Classes", report.ClassCount))
	b.WriteString(u.FormatLabelWithIndent(SectionPadding, "Functions", report.FunctionCount))
	b.WriteString(u.FormatLabelWithIndent(SectionPadding, "Variables", report.VariableCount))
	b.WriteString(u.FormatSectionSeparator())

	return b.String()
}

func unusedHeading(kind domain.SymbolKind) string {
	switch kind {
	case domain.SymbolImport:
		return "Imports"
	case domain.SymbolVariable:
		return "Variables"
	case domain.SymbolFunction:
		return "Functions"
	case domain.SymbolClass:
		return "Classes"
	}
	return string(kind)
}

var _ domain.ReportFormatter = (*ReportFormatterImpl)(nil)
