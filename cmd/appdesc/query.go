package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agripots/appdesc/internal/descriptor"
)

var queryCmd = &cobra.Command{
	Use:   "query <path>",
	Short: "Print one descriptor field",
	Long: `Print the descriptor field at a gjson path, e.g. "minSdk", "plugins.#.id" or
"dependencies.#(platform==true).coordinate". Strings print unquoted, everything
else as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.descriptor()
	if err != nil {
		return err
	}
	value, err := descriptor.Query(d, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
