package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agripots/appdesc/internal/descriptor"
	"github.com/agripots/appdesc/internal/reload"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate the descriptor whenever it changes",
	Long: `Watch the descriptor file and validate and lint it after every change until
interrupted. Invalid edits are reported and the last valid descriptor is kept.
Saves that do not change the descriptor are not reported. Dependency conflicts
are reported after every reload; resolutions are cached, so edits that leave
the dependencies alone do not resolve them again.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.descriptorService()
	if err != nil {
		return err
	}
	resolver, err := a.resolver("")
	if err != nil {
		return err
	}

	emitter := reload.NewEmitter(4)
	if err := svc.Get().Validate(); err != nil {
		emitter.Emit(reload.Failed(err))
	} else {
		emitter.Emit(reload.Loaded(svc.Get()))
	}

	ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchErr := make(chan error, 1)
	go func() {
		defer emitter.Close()
		watchErr <- svc.Watch(ctx,
			func(d *descriptor.Descriptor) error {
				emitter.Emit(reload.Loaded(d))
				return nil
			},
			func(err error) {
				emitter.Emit(reload.Failed(err))
			},
		)
	}()

	a.log.Info().Str("path", a.path).Msg("watching descriptor")
	out := cmd.OutOrStdout()
	events := reload.Stream(ctx, emitter.C(), resolver, a.config().Lint.Disabled...)
	err = reload.Consume(events, func(e reload.Event) {
		if e.Err != nil {
			fmt.Fprintf(out, "✗ %s: %s\n", a.path, e.Err)
			return
		}
		fmt.Fprintf(out, "✓ %s is valid\n", a.path)
		printConflicts(out, e.Resolution)
		printFindings(cmd, e.Findings)
	})
	if err != nil {
		return err
	}

	stats := resolver.Stats()
	a.log.Debug().
		Uint64("resolution_cache_hits", stats.Hits).
		Uint64("resolution_cache_misses", stats.Misses).
		Msg("watch stopped")
	return <-watchErr
}
