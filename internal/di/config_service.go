package di

import (
	"errors"
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/agripots/appdesc/internal/config"
)

// ConfigService holds the validated tool configuration.
type ConfigService struct {
	Config *config.Config
	Path   string
}

// NewConfig loads the tool config, falling back to defaults when no file
// exists.
func NewConfig(i do.Injector) (*ConfigService, error) {
	path := do.MustInvokeNamed[string](i, ConfigPathKey)

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) && fileExists(path) {
			verr.File = path
		}
		return nil, err
	}

	return &ConfigService{Config: cfg, Path: path}, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
