package main

import (
	"fmt"
	"io"

	"github.com/reglet-dev/connmask/internal/infrastructure/sensitivedata"
	"github.com/reglet-dev/connmask/internal/infrastructure/system"
	"github.com/spf13/cobra"
)

var matchPattern string

// matchCmd reports which keys the mask pattern covers.
var matchCmd = &cobra.Command{
	Use:   "match <key>...",
	Short: "Report which configuration keys would be masked",
	Args:  cobra.MinimumNArgs(1),
	RunE: withContainer(
		func(s *system.Settings) {
			if matchPattern != "" {
				s.Masking.Pattern = matchPattern
			}
		},
		func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			return writeMatches(cmd.OutOrStdout(), ctx, args)
		},
	),
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&matchPattern, "pattern", "", "Regular expression for sensitive keys, matched against the whole key")
}

//nolint:errcheck // Best-effort terminal output
func writeMatches(w io.Writer, ctx *CommandContext, keys []string) error {
	pattern := ctx.Container.MaskPattern()
	for _, key := range keys {
		status := "plain "
		if sensitivedata.MatchesKey(pattern, key) {
			status = "masked"
		}
		fmt.Fprintf(w, "%s  %s\n", status, key)
	}
	return nil
}
