package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agripots/appdesc/internal/config"
	"github.com/agripots/appdesc/internal/descriptor"
	"github.com/agripots/appdesc/internal/di"
	"github.com/agripots/appdesc/internal/logging"
)

// app is the per-invocation service graph.
type app struct {
	container *di.Container
	ctx       context.Context
	log       zerolog.Logger
	path      string
}

// globalOptions reads the persistent flags.
func globalOptions(cmd *cobra.Command) (di.Options, error) {
	cfgPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return di.Options{}, fmt.Errorf("failed to get %s flag: %w", flagConfig, err)
	}
	file, err := cmd.Flags().GetString(flagFile)
	if err != nil {
		return di.Options{}, fmt.Errorf("failed to get %s flag: %w", flagFile, err)
	}
	overrides, err := cmd.Flags().GetStringArray(flagSet)
	if err != nil {
		return di.Options{}, fmt.Errorf("failed to get %s flag: %w", flagSet, err)
	}

	if cfgPath == "" {
		cfgPath = findConfigFile()
	}
	return di.Options{ConfigPath: cfgPath, DescriptorPath: file, Overrides: overrides}, nil
}

// newApp builds the container and a run-scoped logger. Callers must Close it.
func newApp(cmd *cobra.Command) (*app, error) {
	opts, err := globalOptions(cmd)
	if err != nil {
		return nil, err
	}

	c := di.NewContainer(opts)
	logSvc, err := di.Invoke[*di.LoggerService](c)
	if err != nil {
		_ = c.Shutdown()
		return nil, err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx := logging.WithRunID(parent, *logSvc.Logger, "")
	a := &app{
		container: c,
		ctx:       ctx,
		log:       *zerolog.Ctx(ctx),
		path:      opts.DescriptorPath,
	}
	a.log.Debug().Str("command", cmd.Name()).Str("descriptor", a.path).Msg("invocation started")
	return a, nil
}

// Close shuts the container down.
func (a *app) Close() {
	if err := a.container.Shutdown(); err != nil {
		a.log.Warn().Err(err).Msg("container shutdown failed")
	}
}

func (a *app) config() *config.Config {
	return di.MustInvoke[*di.ConfigService](a.container).Config
}

func (a *app) descriptorService() (*di.DescriptorService, error) {
	return di.Invoke[*di.DescriptorService](a.container)
}

func (a *app) descriptor() (*descriptor.Descriptor, error) {
	svc, err := a.descriptorService()
	if err != nil {
		return nil, err
	}
	return svc.Get(), nil
}

// validDescriptor loads the descriptor and fails on validation errors.
func (a *app) validDescriptor() (*descriptor.Descriptor, error) {
	d, err := a.descriptor()
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// findConfigFile searches the tool config in default locations.
func findConfigFile() string {
	if found := findConfigIn("."); found != "" {
		return found
	}
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		dir := filepath.Join(home, ".config", "appdesc")
		for _, name := range []string{"config.yaml", "config.toml"} {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

// findConfigIn returns the tool config in dir, or "" when there is none.
func findConfigIn(dir string) string {
	for _, name := range []string{defaultConfigFile, ".appdesc.toml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
