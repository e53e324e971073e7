// Package output provides formatters for connmask print summaries.
package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/connmask/internal/application/dto"
	"github.com/reglet-dev/connmask/internal/infrastructure/build"
)

// SARIFFormatter formats print summaries as SARIF 2.1.0 JSON.
// Every masked key becomes a result located in its configuration file, so
// code-scanning tools can show where credentials live in connector configs.
// File contents are never embedded.
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(writer io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: writer}
}

// Format writes the summary as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(resp *dto.PrintConfigResponse) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("connmask", "https://github.com/reglet-dev/connmask")
	version := build.Get().Version
	run.Tool.Driver.Version = &version
	run.Tool.Driver.Organization = ptrString("Reglet")

	newSARIFMapper(resp).mapToRun(run)

	report.AddRun(run)

	if err := report.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

func ptrString(s string) *string {
	return &s
}

func ptrBool(b bool) *bool {
	return &b
}
