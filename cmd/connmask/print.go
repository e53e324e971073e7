package main

import (
	"fmt"
	"io"
	"os"

	"github.com/reglet-dev/connmask/internal/application/dto"
	"github.com/reglet-dev/connmask/internal/application/ports"
	"github.com/reglet-dev/connmask/internal/infrastructure/output"
	"github.com/reglet-dev/connmask/internal/infrastructure/system"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// printOptions holds the print command's flags after env overrides.
type printOptions struct {
	Component   string
	Pattern     string
	Format      string
	OutFile     string
	NoMask      bool
	ScrubValues bool
}

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:   "print <connector.yaml>...",
	Short: "Log connector configuration with credentials masked",
	Long: `Load one or more connector configuration files and log each of them as:

  Starting <Component> with configuration:
     key = value
     ...

Nested YAML maps are flattened to dotted keys. Values of keys ending in
"password" or "sasl.jaas.config", and of keys containing
"basic.auth.user.info" or "registry.auth.client-secret", are printed as
********. Nothing is printed unless every file loads.

Use --format to also write a summary of the masked keys to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withContainer(
		func(s *system.Settings) { printOptionsFromViper().apply(s) },
		func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			return runPrintAction(ctx, printOptionsFromViper(), args, cmd.OutOrStdout())
		},
	),
}

func init() {
	rootCmd.AddCommand(printCmd)

	flags := printCmd.Flags()
	flags.StringP("component", "c", "", "Component name for the header line (default: file name)")
	flags.String("pattern", "", "Regular expression for sensitive keys, matched against the whole key")
	flags.Bool("no-mask", false, "Print values unmasked")
	flags.Bool("scrub-values", false, "Also scrub secrets embedded in non-sensitive values")
	flags.String("format", "", "Summary format written to stdout: table, json, yaml, sarif")
	flags.StringP("output", "o", "", "Summary output file path (default: stdout)")

	for _, name := range []string{"component", "pattern", "no-mask", "scrub-values", "format", "output"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func printOptionsFromViper() printOptions {
	return printOptions{
		Component:   viper.GetString("component"),
		Pattern:     viper.GetString("pattern"),
		Format:      viper.GetString("format"),
		OutFile:     viper.GetString("output"),
		NoMask:      viper.GetBool("no-mask"),
		ScrubValues: viper.GetBool("scrub-values"),
	}
}

// apply overlays flag values on the settings file.
func (o printOptions) apply(s *system.Settings) {
	if o.Pattern != "" {
		s.Masking.Pattern = o.Pattern
	}
	if o.NoMask {
		s.Masking.Disabled = true
	}
	if o.ScrubValues {
		s.Redaction.ScrubValues = true
	}
}

// runPrintAction implements the core logic for the print command
func runPrintAction(ctx *CommandContext, opts printOptions, paths []string, stdout io.Writer) error {
	var formatter ports.OutputFormatter
	writer := stdout
	if opts.Format != "" {
		if opts.OutFile != "" {
			//nolint:gosec // G304: User-controlled output file path is intentional
			file, err := os.Create(opts.OutFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() {
				_ = file.Close() // Best-effort cleanup
			}()
			writer = file
		}

		var err error
		formatter, err = output.NewFormatterFactory().Create(opts.Format, writer, ports.FormatterOptions{Indent: true})
		if err != nil {
			return err
		}
		if table, ok := formatter.(*output.TableFormatter); ok && opts.OutFile != "" {
			table.EnableColor = false
		}
	}

	resp, err := ctx.Container.PrintConfigUseCase().Execute(ctx.Context, dto.PrintConfigRequest{
		Component: opts.Component,
		Paths:     paths,
	})
	if err != nil {
		return fmt.Errorf("failed to print configuration: %w", err)
	}

	if formatter == nil {
		return nil
	}
	if err := formatter.Format(resp); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}
