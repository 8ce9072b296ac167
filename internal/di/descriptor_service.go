package di

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/do/v2"

	"github.com/agripots/appdesc/internal/descriptor"
)

// DescriptorService holds the loaded build descriptor. The watch command
// swaps in reloaded values through the runtime.
type DescriptorService struct {
	runtime   *descriptor.Runtime
	watcher   *descriptor.Watcher
	overrides []descriptor.Override
	Path      string
	mu        sync.Mutex
}

// NewDescriptor loads the descriptor file with the invocation overrides. It
// does not validate; commands decide how to report problems.
func NewDescriptor(i do.Injector) (*DescriptorService, error) {
	do.MustInvoke[*LoggerService](i)
	path := do.MustInvokeNamed[string](i, DescriptorPathKey)
	pairs := do.MustInvokeNamed[[]string](i, OverridesKey)

	overrides, err := descriptor.ParseOverrides(pairs)
	if err != nil {
		return nil, err
	}

	d, err := descriptor.Load(path, overrides...)
	if err != nil {
		return nil, fmt.Errorf("failed to load descriptor: %w", err)
	}

	return &DescriptorService{
		runtime:   descriptor.NewRuntime(d),
		overrides: overrides,
		Path:      path,
	}, nil
}

// Get returns the current descriptor.
func (s *DescriptorService) Get() *descriptor.Descriptor {
	return s.runtime.Get()
}

// Watch reloads the descriptor on every change until ctx is canceled. Valid
// reloads replace the current value before onReload runs; failures go to
// onError and keep the previous value.
func (s *DescriptorService) Watch(ctx context.Context, onReload descriptor.ReloadCallback, onError descriptor.ErrorCallback, opts ...descriptor.WatcherOption) error {
	s.mu.Lock()
	if s.watcher != nil {
		s.mu.Unlock()
		return fmt.Errorf("descriptor %s is already watched", s.Path)
	}
	opts = append([]descriptor.WatcherOption{descriptor.WithOverrides(s.overrides...)}, opts...)
	w, err := descriptor.NewWatcher(s.Path, opts...)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.watcher = w
	s.mu.Unlock()

	w.OnReload(func(d *descriptor.Descriptor) error {
		s.runtime.Store(d)
		return nil
	})
	if onReload != nil {
		w.OnReload(onReload)
	}
	if onError != nil {
		w.OnError(onError)
	}

	return w.Watch(ctx)
}

// Shutdown stops the watcher if one was started.
func (s *DescriptorService) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
