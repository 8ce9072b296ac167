package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agripots/appdesc/internal/descriptor"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the descriptor to another format",
	Long: `Convert the descriptor between YAML, TOML and JSON. The target format comes
from --to, or from the extension of --output.`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addConvertFlags(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().String("to", "", "target format: yaml, toml or json")
	cmd.Flags().StringP("output", "o", "", "write to this path instead of stdout")
}

func runConvert(cmd *cobra.Command, _ []string) error {
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return fmt.Errorf("failed to get to flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	var format descriptor.Format
	switch {
	case to != "":
		format, err = descriptor.ParseFormat(to)
	case output != "":
		format, err = descriptor.DetectFormat(output)
	default:
		err = fmt.Errorf("%w: pass --to or --output", descriptor.ErrUnsupportedFormat)
	}
	if err != nil {
		return err
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
	data, err := descriptor.Marshal(d, format)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ converted %s to %s\n", a.path, output)
	return nil
}
