package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report advisory findings for the build descriptor",
	Long: `Report advisory findings: release builds signed with debug keys, the multidex
library on minSdk >= 21, duplicate dependencies, mismatched JVM targets and a
targetSdk below compileSdk. Rules listed in lint.disabled are skipped.`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.descriptor()
	if err != nil {
		return err
	}

	lint := a.config().Lint
	findings := d.Lint(lint.Disabled...)
	a.log.Debug().Int("findings", len(findings)).Msg("lint finished")

	if len(findings) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: no findings\n", a.path)
		return nil
	}
	printFindings(cmd, findings)
	if lint.Strict {
		return fmt.Errorf("%d lint findings with lint.strict enabled", len(findings))
	}
	return nil
}
