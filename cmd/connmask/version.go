package main

import (
	"fmt"

	"github.com/reglet-dev/connmask/internal/infrastructure/build"
	"github.com/spf13/cobra"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of connmask",
	Run: func(cmd *cobra.Command, _ []string) {
		info := build.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "connmask version %s\n", info.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
