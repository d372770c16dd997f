package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/logging"
	"github.com/ludo-technologies/pyformat/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func newFormatUseCase(t *testing.T) *FormatUseCase {
	t.Helper()
	formatter, err := service.NewFormatterServiceFromConfig(config.DefaultConfig().Formatter, logging.Nop())
	require.NoError(t, err)

	uc, err := NewFormatUseCaseBuilder().
		WithFormatter(formatter).
		WithFileReader(service.NewFileReader()).
		Build()
	require.NoError(t, err)
	return uc
}

func newAnalyzeUseCase(t *testing.T) *AnalyzeUseCase {
	t.Helper()
	uc, err := NewAnalyzeUseCaseBuilder().
		WithAnalysis(service.NewAnalysisServiceFromConfig(config.DefaultConfig().Analysis, logging.Nop())).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewReportFormatter()).
		Build()
	require.NoError(t, err)
	return uc
}

func TestFormatUseCase_Stdin(t *testing.T) {
	var out bytes.Buffer
	summary, err := newFormatUseCase(t).Execute(context.Background(), domain.FormatRequest{
		Input:  strings.NewReader("x=1\n"),
		Output: &out,
	})

	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", out.String())
	assert.Equal(t, 1, summary.Files)
	assert.Equal(t, []string{"-"}, summary.Changed)
}

func TestFormatUseCase_Write(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.py":     "x=1\n",
		"b.py":     "y = 2\n",
		"empty.py": "",
		"pkg/c.py": "def f( a ):\n    return a\n",
	})

	var out bytes.Buffer
	summary, err := newFormatUseCase(t).Execute(context.Background(), domain.FormatRequest{
		FileSelection: domain.FileSelection{Paths: []string{dir}, Recursive: true},
		Write:         true,
		Output:        &out,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Files)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a.py"), filepath.Join(dir, "pkg", "c.py")}, summary.Changed)
	assert.Empty(t, summary.Failures)

	a, err := os.ReadFile(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(a))

	c, err := os.ReadFile(filepath.Join(dir, "pkg", "c.py"))
	require.NoError(t, err)
	assert.Equal(t, "def f(a):\n    return a\n", string(c))

	assert.Contains(t, out.String(), "reformatted "+filepath.Join(dir, "a.py"))
	assert.NotContains(t, out.String(), "b.py")
}

func TestFormatUseCase_Check(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.py": "x=1\n", "broken.py": "def f(:\n"})

	var out bytes.Buffer
	summary, err := newFormatUseCase(t).Execute(context.Background(), domain.FormatRequest{
		FileSelection: domain.FileSelection{Paths: []string{dir}, Recursive: true},
		Check:         true,
		Output:        &out,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "a.py")}, summary.Changed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, filepath.Join(dir, "broken.py"), summary.Failures[0].Path)
	assert.Contains(t, out.String(), "would reformat")

	a, err := os.ReadFile(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "x=1\n", string(a), "check must not modify files")
}

func TestFormatUseCase_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  domain.FormatRequest
	}{
		{name: "no output", req: domain.FormatRequest{Input: strings.NewReader("x")}},
		{name: "write and check", req: domain.FormatRequest{Write: true, Check: true, Output: &bytes.Buffer{}}},
		{name: "no input", req: domain.FormatRequest{Output: &bytes.Buffer{}}},
		{
			name: "no python files",
			req: domain.FormatRequest{
				FileSelection: domain.FileSelection{Paths: []string{t.TempDir()}},
				Output:        &bytes.Buffer{},
			},
		},
	}

	uc := newFormatUseCase(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
		})
	}
}

func TestFormatUseCaseBuilder_Validation(t *testing.T) {
	_, err := NewFormatUseCaseBuilder().WithFileReader(service.NewFileReader()).Build()
	assert.Error(t, err)

	formatter, err := service.NewFormatterServiceFromConfig(config.DefaultConfig().Formatter, logging.Nop())
	require.NoError(t, err)
	_, err = NewFormatUseCaseBuilder().WithFormatter(formatter).Build()
	assert.Error(t, err)
}

func TestAnalyzeUseCase_Stdin(t *testing.T) {
	var out bytes.Buffer
	failed, err := newAnalyzeUseCase(t).Execute(context.Background(), domain.AnalyzeRequest{
		Format: domain.OutputFormatJSON,
		Input:  strings.NewReader("import os\nx = 1\n"),
		Output: &out,
	})
	require.NoError(t, err)
	assert.Zero(t, failed)

	var report domain.AnalysisReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, []string{"os"}, report.Dependencies)
}

func TestAnalyzeUseCase_Files(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.py": "import os\n", "broken.py": "def f(:\n"})

	var out bytes.Buffer
	failed, err := newAnalyzeUseCase(t).Execute(context.Background(), domain.AnalyzeRequest{
		FileSelection: domain.FileSelection{Paths: []string{dir}, Recursive: true},
		Format:        domain.OutputFormatJSON,
		Output:        &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var results []domain.FileAnalysis
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(dir, "a.py"), results[0].Path)
	assert.NotNil(t, results[0].Report)
	assert.NotEmpty(t, results[1].Error)
}

func TestAnalyzeUseCase_UnsupportedFormat(t *testing.T) {
	_, err := newAnalyzeUseCase(t).Execute(context.Background(), domain.AnalyzeRequest{
		Format: "xml",
		Input:  strings.NewReader("x = 1\n"),
		Output: &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeUnsupportedFormat, domain.ErrorCode(err))
}
