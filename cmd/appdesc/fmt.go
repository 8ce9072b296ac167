package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agripots/appdesc/internal/descriptor"
	"github.com/agripots/appdesc/internal/plugin"
)

// errNotFormatted is returned by fmt --check when the file would change.
var errNotFormatted = errors.New("descriptor is not formatted")

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite the descriptor in canonical form",
	Long: `Rewrite the descriptor in its own format with plugins in activation order and
canonical field names. Environment references are expanded and --set overrides
are written through. With --check nothing is written and a non-canonical file
is an error.`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	addFmtFlags(fmtCmd)
}

func addFmtFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "report whether the file is formatted without writing it")
}

func runFmt(cmd *cobra.Command, _ []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.descriptor()
	if err != nil {
		return err
	}
	canonical, err := canonicalize(d)
	if err != nil {
		return err
	}

	format, err := descriptor.DetectFormat(a.path)
	if err != nil {
		return err
	}
	formatted, err := descriptor.Marshal(canonical, format)
	if err != nil {
		return err
	}
	current, err := os.ReadFile(a.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", a.path, err)
	}

	out := cmd.OutOrStdout()
	if bytes.Equal(current, formatted) {
		fmt.Fprintf(out, "✓ %s is formatted\n", a.path)
		return nil
	}
	if check {
		fmt.Fprintf(out, "✗ %s needs formatting\n", a.path)
		return fmt.Errorf("%w: %s", errNotFormatted, a.path)
	}

	if err := os.WriteFile(a.path, formatted, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.path, err)
	}
	fmt.Fprintf(out, "✓ formatted %s\n", a.path)
	return nil
}

// canonicalize returns a copy of d with plugins in activation order.
func canonicalize(d *descriptor.Descriptor) (*descriptor.Descriptor, error) {
	sorted, err := plugin.Sort(d.Plugins)
	if err != nil {
		return nil, err
	}
	out := *d
	out.Plugins = sorted
	return &out, nil
}
