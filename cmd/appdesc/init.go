package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agripots/appdesc/internal/descriptor"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter build descriptor",
	Long: `Write the descriptor of a Flutter application with maps and location
support to --file (default appdesc.yaml). The format follows the file extension.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	addInitFlags(initCmd)
}

func addInitFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "overwrite an existing descriptor")
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString(flagFile)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", flagFile, err)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("descriptor already exists at %s (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := descriptor.Write(path, descriptor.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Descriptor created at %s\n", path)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Set applicationId and namespace")
	fmt.Fprintln(out, "  2. Add a release signing config")
	fmt.Fprintln(out, "  3. Validate with: appdesc validate")
	fmt.Fprintln(out, "  4. Render with: appdesc render -o android/app/build.gradle.kts")
	return nil
}
