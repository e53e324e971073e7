package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/connmask/internal/application/dto"
)

const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// TableFormatter formats print summaries as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true,
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the summary as a table.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) Format(resp *dto.PrintConfigResponse) error {
	rule := f.colorize(strings.Repeat("─", 80), colorGray)

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "Run: %s\n", resp.RunID)
	fmt.Fprintln(f.writer)

	if len(resp.Printed) == 0 {
		fmt.Fprintln(f.writer, "No configurations printed.")
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize("Configurations:", colorBold))
	fmt.Fprintln(f.writer, rule)

	keys, masked := 0, 0
	for _, p := range resp.Printed {
		f.formatConfig(p)
		keys += p.Keys
		masked += len(p.MaskedKeys)
	}

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintln(f.writer)
	fmt.Fprintf(f.writer, "Summary: %d configurations, %d keys, %s\n",
		len(resp.Printed), keys, f.colorize(fmt.Sprintf("%d masked", masked), colorYellow))

	return nil
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatConfig(p dto.PrintedConfig) {
	fmt.Fprintf(f.writer, "%s (%s)\n", f.colorize(p.Component, colorBold), p.Path)
	fmt.Fprintf(f.writer, "  Keys: %d\n", p.Keys)
	if len(p.MaskedKeys) == 0 {
		fmt.Fprintln(f.writer, "  Masked: none")
		return
	}
	fmt.Fprintf(f.writer, "  Masked: %s\n", f.colorize(strings.Join(p.MaskedKeys, ", "), colorYellow))
}
