package di

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"github.com/agripots/appdesc/internal/cache"
	"github.com/agripots/appdesc/internal/descriptor"
	"github.com/agripots/appdesc/internal/logging"
)

// LoggerService owns the process logger and its output.
type LoggerService struct {
	Logger *zerolog.Logger
	closer io.Closer
}

// NewLogger builds the logger from the logging config and hands it to the
// packages that log on their own.
func NewLogger(i do.Injector) (*LoggerService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)

	logger, closer, err := logging.New(cfgSvc.Config.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cache.SetLogger(&logger)
	descriptor.SetLogger(&logger)

	return &LoggerService{Logger: &logger, closer: closer}, nil
}

// Shutdown closes a file-backed log output.
func (l *LoggerService) Shutdown() error {
	return l.closer.Close()
}
