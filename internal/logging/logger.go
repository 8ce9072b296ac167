// Package logging builds the process logger from the tool configuration and
// tags each invocation with a run id.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agripots/appdesc/internal/config"
)

type ctxKey string

// RunIDKey is the context key for the invocation run id.
const RunIDKey ctxKey = "run_id"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger from cfg. The returned closer releases the log file
// when output is a path; it is a no-op for stdout and stderr.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	output, file, err := selectOutput(cfg.Output)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("failed to open log output %q: %w", cfg.Output, err)
	}

	var closer io.Closer = nopCloser{}
	if file != os.Stdout && file != os.Stderr {
		closer = file
	}

	if shouldUsePretty(cfg, file) {
		output = consoleWriter(output)
	}

	logger := zerolog.New(output).
		Level(cfg.ParseLevel()).
		With().
		Timestamp().
		Logger()

	return logger, closer, nil
}

func selectOutput(out string) (io.Writer, *os.File, error) {
	switch out {
	case "", "stderr":
		return os.Stderr, os.Stderr, nil
	case "stdout":
		return os.Stdout, os.Stdout, nil
	default:
		f, err := os.OpenFile(filepath.Clean(out), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	}
}

// shouldUsePretty picks console rendering: forced by Pretty or the pretty
// format, never for json, otherwise only on a terminal.
func shouldUsePretty(cfg config.LoggingConfig, f *os.File) bool {
	if cfg.Pretty {
		return true
	}
	switch cfg.Format {
	case "pretty":
		return true
	case "json":
		return false
	default:
		return f != nil && isatty.IsTerminal(f.Fd())
	}
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:             out,
		TimeFormat:      "15:04:05",
		FormatLevel:     formatLevel,
		FormatMessage:   formatMessage,
		FormatFieldName: formatFieldName,
		FormatFieldValue: func(i any) string {
			return fmt.Sprintf("%s", i)
		},
	}
}

var levelColors = map[string]string{
	"debug": "\033[36mDBG\033[0m",
	"info":  "\033[32mINF\033[0m",
	"warn":  "\033[33mWRN\033[0m",
	"error": "\033[31mERR\033[0m",
	"fatal": "\033[35mFTL\033[0m",
	"panic": "\033[35mPNC\033[0m",
}

func formatLevel(i any) string {
	s, ok := i.(string)
	if !ok {
		return ""
	}
	if colored, exists := levelColors[s]; exists {
		return colored
	}
	return s
}

func formatMessage(i any) string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("-> %s", i)
}

func formatFieldName(i any) string {
	return fmt.Sprintf("\033[2m%s=\033[0m", i)
}

// WithRunID attaches logger to ctx tagged with a run id. An empty runID
// generates a new UUID.
func WithRunID(ctx context.Context, logger zerolog.Logger, runID string) context.Context {
	if runID == "" {
		runID = uuid.New().String()
	}
	ctx = context.WithValue(ctx, RunIDKey, runID)
	tagged := logger.With().Str("run_id", runID).Logger()
	return tagged.WithContext(ctx)
}

// RunID returns the run id stored by WithRunID, or "".
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}
