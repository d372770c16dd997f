package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewExportError("failed to write file", cause)

	assert.Equal(t, "[EXPORT_ERROR] failed to write file: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeExportError, ErrorCode(err))
	assert.Equal(t, ErrCodeExportError, ErrorCode(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "", ErrorCode(cause))
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"format", NewFormatError("bad", nil), false},
		{"config", NewConfigError("bad", nil), false},
		{"analysis", NewAnalysisError("bad", nil), true},
		{"export", NewExportError("bad", nil), true},
		{"resource", NewResourceError("bad", nil), true},
		{"plain", errors.New("bad"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecoverable(tt.err))
		})
	}
}

func TestIsFormatError(t *testing.T) {
	assert.True(t, IsFormatError(fmt.Errorf("x: %w", NewFormatError("bad", nil))))
	assert.False(t, IsFormatError(NewExportError("bad", nil)))
}

func TestSyntaxError(t *testing.T) {
	err := &SyntaxError{Location: &SourceLocation{Line: 3, Column: 7}}
	assert.Equal(t, "syntax error at line 3, column 7", err.Error())
	assert.Equal(t, "syntax error", (&SyntaxError{}).Error())
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("")
	assert.NoError(t, err)
	assert.Equal(t, OutputFormatText, f)

	f, err = ParseOutputFormat("yaml")
	assert.NoError(t, err)
	assert.Equal(t, OutputFormatYAML, f)

	_, err = ParseOutputFormat("xml")
	assert.Equal(t, ErrCodeUnsupportedFormat, ErrorCode(err))
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, CountLines(""))
	assert.Equal(t, 1, CountLines("x"))
	assert.Equal(t, 1, CountLines("x\n"))
	assert.Equal(t, 2, CountLines("x\ny"))
	assert.Equal(t, 3, CountLines("\n\n\n"))
}

func TestExportKind(t *testing.T) {
	assert.Equal(t, ".docx", ExportDocument.Extension())
	assert.Equal(t, "", ExportClipboard.Extension())
	assert.Equal(t, "Word document", ExportDocument.Label())
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "AwaitingCommand", StateAwaitingCommand.String())
	assert.Equal(t, "Unknown", SessionState(99).String())
}

func TestAnalysisReportUnusedOfKind(t *testing.T) {
	r := &AnalysisReport{Unused: []UnusedSymbol{
		{Name: "a", Kind: SymbolVariable},
		{Name: "b", Kind: SymbolImport},
		{Name: "c", Kind: SymbolVariable},
	}}
	got := r.UnusedOfKind(SymbolVariable)
	assert.Len(t, got, 2)
	assert.Equal(t, "c", got[1].Name)
	assert.Empty(t, r.UnusedOfKind(SymbolClass))
}
