package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/config"
)

// ExternalFormatter runs a formatter process with the source on stdin and
// reads the formatted text from stdout.
type ExternalFormatter struct {
	argv    []string
	timeout time.Duration
}

// NewExternalFormatter builds the command line for an external engine
func NewExternalFormatter(cfg config.FormatterConfig) (*ExternalFormatter, error) {
	argv, err := externalArgv(cfg)
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = domain.DefaultFormatterTimeoutSeconds * time.Second
	}
	return &ExternalFormatter{argv: argv, timeout: timeout}, nil
}

func externalArgv(cfg config.FormatterConfig) ([]string, error) {
	lineLength := strconv.Itoa(cfg.LineLength)
	switch domain.FormatterEngine(cfg.Engine) {
	case domain.EngineAutopep8:
		argv := []string{"autopep8", "--max-line-length", lineLength}
		for i := 0; i < cfg.Aggressive; i++ {
			argv = append(argv, "--aggressive")
		}
		return append(argv, "-"), nil
	case domain.EngineBlack:
		return []string{"black", "--quiet", "--line-length", lineLength, "-"}, nil
	case domain.EngineRuff:
		return []string{"ruff", "format", "--line-length", lineLength, "-"}, nil
	case domain.EngineCommand:
		if len(cfg.Command) == 0 {
			return nil, domain.NewConfigError("formatter.command is required for the command engine", nil)
		}
		return append([]string(nil), cfg.Command...), nil
	}
	return nil, domain.NewConfigError(fmt.Sprintf("engine %q does not run an external process", cfg.Engine), nil)
}

// Argv returns the command line the formatter runs
func (f *ExternalFormatter) Argv() []string {
	return f.argv
}

// Format implements domain.SourceFormatter
func (f *ExternalFormatter) Format(ctx context.Context, source string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.argv[0], f.argv[1:]...)
	cmd.Stdin = strings.NewReader(source)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return "", fmt.Errorf("%s timed out after %s: %w", f.argv[0], f.timeout, ctxErr)
		}
		return "", ctxErr
	}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("formatter %q not found in PATH: %w", f.argv[0], err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = "no error output"
			}
			return "", fmt.Errorf("%s exited with status %d: %s", f.argv[0], exitErr.ExitCode(), msg)
		}
		return "", fmt.Errorf("failed to run %s: %w", f.argv[0], err)
	}

	return stdout.String(), nil
}
