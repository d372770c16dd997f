package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFormatter returns a canned result
type stubFormatter struct {
	text  string
	err   error
	calls int
}

func (s *stubFormatter) Format(ctx context.Context, source string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestFormatterService_Builtin(t *testing.T) {
	svc, err := NewFormatterServiceFromConfig(config.DefaultConfig().Formatter, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, domain.EngineBuiltin, svc.Engine())

	result, err := svc.Format(context.Background(), "x=1")
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", result.Text)
	assert.Equal(t, "x=1", result.Source)
	assert.Equal(t, 1, result.LinesBefore)
	assert.Equal(t, 1, result.LinesAfter)
	assert.Equal(t, 6, result.Characters)
	assert.True(t, result.Changed())
}

func TestFormatterService_Stats(t *testing.T) {
	stub := &stubFormatter{text: "a = 1\nb = 2\n"}
	svc := NewFormatterService(domain.EngineCommand, stub, logging.Nop())

	ticks := []time.Time{time.Unix(0, 0), time.Unix(0, int64(15*time.Millisecond))}
	svc.now = func() time.Time {
		t := ticks[0]
		ticks = ticks[1:]
		return t
	}

	result, err := svc.Format(context.Background(), "a=1\n\n\nb=2\n")
	require.NoError(t, err)
	assert.Equal(t, 4, result.LinesBefore)
	assert.Equal(t, 2, result.LinesAfter)
	assert.Equal(t, 12, result.Characters)
	assert.Equal(t, 15*time.Millisecond, result.Duration)
	assert.Equal(t, domain.EngineCommand, result.Engine)
}

func TestFormatterService_EmptyInput(t *testing.T) {
	stub := &stubFormatter{}
	svc := NewFormatterService(domain.EngineBuiltin, stub, logging.Nop())

	for _, src := range []string{"", "   \n\t\n"} {
		_, err := svc.Format(context.Background(), src)
		require.Error(t, err)
		assert.True(t, domain.IsFormatError(err))
		assert.Contains(t, err.Error(), "no source code provided")
	}
	assert.Zero(t, stub.calls)
}

func TestFormatterService_SyntaxError(t *testing.T) {
	svc, err := NewFormatterServiceFromConfig(config.DefaultConfig().Formatter, logging.Nop())
	require.NoError(t, err)

	_, err = svc.Format(context.Background(), "def broken(:\n    pass\n")
	require.Error(t, err)
	assert.True(t, domain.IsFormatError(err))

	var syntaxErr *domain.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, syntaxErr.Location.Line)
	assert.Contains(t, err.Error(), "invalid Python source")
}

func TestFormatterService_EngineError(t *testing.T) {
	stub := &stubFormatter{err: errors.New("black exited with status 123: cannot parse")}
	svc := NewFormatterService(domain.EngineBlack, stub, logging.Nop())

	_, err := svc.Format(context.Background(), "x = (\n")
	require.Error(t, err)
	assert.True(t, domain.IsFormatError(err))
	assert.Contains(t, err.Error(), "black failed")
	assert.Contains(t, err.Error(), "cannot parse")
}

func TestExternalArgv(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.FormatterConfig
		want    []string
		wantErr bool
	}{
		{
			name: "autopep8",
			cfg:  config.FormatterConfig{Engine: "autopep8", LineLength: 79, Aggressive: 2},
			want: []string{"autopep8", "--max-line-length", "79", "--aggressive", "--aggressive", "-"},
		},
		{
			name: "black",
			cfg:  config.FormatterConfig{Engine: "black", LineLength: 88},
			want: []string{"black", "--quiet", "--line-length", "88", "-"},
		},
		{
			name: "ruff",
			cfg:  config.FormatterConfig{Engine: "ruff", LineLength: 100},
			want: []string{"ruff", "format", "--line-length", "100", "-"},
		},
		{
			name: "command",
			cfg:  config.FormatterConfig{Engine: "command", Command: []string{"yapf", "--style", "pep8"}},
			want: []string{"yapf", "--style", "pep8"},
		},
		{name: "command without argv", cfg: config.FormatterConfig{Engine: "command"}, wantErr: true},
		{name: "builtin", cfg: config.FormatterConfig{Engine: "builtin"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewExternalFormatter(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Argv())
		})
	}
}

func TestExternalFormatter_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("stdout is the result", func(t *testing.T) {
		f, err := NewExternalFormatter(config.FormatterConfig{Engine: "command", Command: []string{"cat"}})
		require.NoError(t, err)
		got, err := f.Format(ctx, "x = 1\n")
		require.NoError(t, err)
		assert.Equal(t, "x = 1\n", got)
	})

	t.Run("non-zero exit carries stderr", func(t *testing.T) {
		f, err := NewExternalFormatter(config.FormatterConfig{
			Engine:  "command",
			Command: []string{"sh", "-c", "echo 'cannot format: line 1' >&2; exit 3"},
		})
		require.NoError(t, err)
		_, err = f.Format(ctx, "x\n")
		require.Error(t, err)
		assert.Equal(t, "sh exited with status 3: cannot format: line 1", err.Error())
	})

	t.Run("missing executable", func(t *testing.T) {
		f, err := NewExternalFormatter(config.FormatterConfig{Engine: "command", Command: []string{"pyformat-no-such-binary"}})
		require.NoError(t, err)
		_, err = f.Format(ctx, "x\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("timeout", func(t *testing.T) {
		f, err := NewExternalFormatter(config.FormatterConfig{Engine: "command", Command: []string{"sleep", "5"}})
		require.NoError(t, err)
		f.timeout = 50 * time.Millisecond
		_, err = f.Format(ctx, "x\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
