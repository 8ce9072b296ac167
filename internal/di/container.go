// Package di wires the appdesc services together with samber/do v2.
package di

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"
)

// Named values provided to the container.
const (
	ConfigPathKey     = "config.path"
	DescriptorPathKey = "descriptor.path"
	OverridesKey      = "descriptor.overrides"
)

// Options are the inputs of one CLI invocation.
type Options struct {
	// ConfigPath is the tool config file. Empty or missing uses defaults.
	ConfigPath string

	// DescriptorPath is the build descriptor file.
	DescriptorPath string

	// Overrides are raw "path=value" pairs applied to the descriptor.
	Overrides []string
}

// Container wraps the do.Injector.
type Container struct {
	injector *do.RootScope
}

// NewContainer creates the container and registers every service. Nothing
// is constructed until first invoked.
func NewContainer(opts Options) *Container {
	injector := do.New()

	do.ProvideNamedValue(injector, ConfigPathKey, opts.ConfigPath)
	do.ProvideNamedValue(injector, DescriptorPathKey, opts.DescriptorPath)
	do.ProvideNamedValue(injector, OverridesKey, append([]string(nil), opts.Overrides...))

	RegisterSingletons(injector)

	return &Container{injector: injector}
}

// Injector returns the underlying injector.
func (c *Container) Injector() *do.RootScope {
	return c.injector
}

// Invoke resolves a service from the container.
func Invoke[T any](c *Container) (T, error) {
	return do.Invoke[T](c.injector)
}

// MustInvoke resolves a service or panics.
func MustInvoke[T any](c *Container) T {
	return do.MustInvoke[T](c.injector)
}

// Shutdown shuts services down in reverse order of initialization.
func (c *Container) Shutdown() error {
	report := c.injector.Shutdown()
	if report != nil && !report.Succeed {
		return fmt.Errorf("shutdown failed: %s", report.Error())
	}
	return nil
}

// ShutdownWithContext is Shutdown bounded by ctx.
func (c *Container) ShutdownWithContext(ctx context.Context) error {
	report := c.injector.ShutdownWithContext(ctx)
	if report != nil && !report.Succeed {
		return fmt.Errorf("shutdown failed: %s", report.Error())
	}
	return nil
}
