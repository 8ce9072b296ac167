package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agripots/appdesc/internal/gradle"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the descriptor as build.gradle.kts",
	Long: `Render the validated descriptor as a Gradle Kotlin DSL build script. Plugins
are emitted in activation order and dependencies with their resolved versions.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addRenderFlags(renderCmd)
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "write to this path instead of stdout")
}

func runRender(cmd *cobra.Command, _ []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.validDescriptor()
	if err != nil {
		return err
	}
	resolver, err := a.resolver("")
	if err != nil {
		return err
	}
	res, err := resolver.Resolve(a.ctx, d.Dependencies)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gradle.Render(&buf, d, res); err != nil {
		return err
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	a.log.Info().Str("output", output).Msg("build script rendered")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ rendered %s\n", output)
	return nil
}
