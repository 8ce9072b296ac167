// Package main is the entry point for appdesc.
package main

import (
	"context"
	"os"

	"charm.land/fang/v2"
	"github.com/spf13/cobra"
)

const (
	defaultDescriptorFile = "appdesc.yaml"
	defaultConfigFile     = ".appdesc.yaml"
)

// Persistent flag names.
const (
	flagConfig = "config"
	flagFile   = "file"
	flagSet    = "set"
)

var rootCmd = &cobra.Command{
	Use:   "appdesc",
	Short: "Validate, resolve and render Android application build descriptors",
	Long: `appdesc reads an application build descriptor (YAML, TOML or JSON), checks
its SDK window, language levels, signing, plugin order and dependencies, resolves
duplicate libraries and renders the equivalent build.gradle.kts.`,
	SilenceUsage: true,
}

func init() {
	addGlobalFlags(rootCmd)
}

// addGlobalFlags registers the flags every subcommand reads.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(flagConfig, "",
		"tool config path (default: ./"+defaultConfigFile+" or ~/.config/appdesc/config.yaml)")
	cmd.PersistentFlags().StringP(flagFile, "f", defaultDescriptorFile, "build descriptor path")
	cmd.PersistentFlags().StringArray(flagSet, nil, "override a descriptor field, e.g. --set minSdk=23 (repeatable)")
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
