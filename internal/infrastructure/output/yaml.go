package output

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/connmask/internal/application/dto"
)

// YAMLFormatter formats print summaries as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the summary as YAML.
func (f *YAMLFormatter) Format(resp *dto.PrintConfigResponse) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(resp); err != nil {
		return err
	}

	return encoder.Close()
}
