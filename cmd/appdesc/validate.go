package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agripots/appdesc/internal/descriptor"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the build descriptor",
	Long: `Validate the build descriptor: package identity, minSdk <= targetSdk <= compileSdk,
Java language levels, signing references, plugin order and dependency coordinates.
With lint.strict set in the tool config, lint findings fail validation too.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	d, err := a.validDescriptor()
	if err != nil {
		fmt.Fprintf(out, "✗ %s: %s\n", a.path, err)
		return err
	}

	if lint := a.config().Lint; lint.Strict {
		if findings := d.Lint(lint.Disabled...); len(findings) > 0 {
			printFindings(cmd, findings)
			err := fmt.Errorf("%d lint findings with lint.strict enabled", len(findings))
			fmt.Fprintf(out, "✗ %s: %s\n", a.path, err)
			return err
		}
	}

	a.log.Info().Str("path", a.path).Msg("descriptor valid")
	fmt.Fprintf(out, "✓ %s is valid\n", a.path)
	return nil
}

func printFindings(cmd *cobra.Command, findings []descriptor.Finding) {
	for _, f := range findings {
		fmt.Fprintf(cmd.OutOrStdout(), "! %s\n", f)
	}
}
