// Package dto contains data transfer objects for application layer use cases.
package dto

// PrintConfigRequest encapsulates the inputs for printing connector configs.
type PrintConfigRequest struct {
	// Component names the connector in the header line. When empty each
	// file is labeled by its base name without extension.
	Component string
	// Paths lists the connector configuration files to print, in order.
	Paths []string
}

// PrintConfigResponse summarizes what was printed.
type PrintConfigResponse struct {
	RunID   string          `json:"run_id" yaml:"run_id"`
	Printed []PrintedConfig `json:"printed" yaml:"printed"`
}

// PrintedConfig describes one printed configuration.
type PrintedConfig struct {
	Path       string   `json:"path" yaml:"path"`
	Component  string   `json:"component" yaml:"component"`
	Keys       int      `json:"keys" yaml:"keys"`
	MaskedKeys []string `json:"masked_keys,omitempty" yaml:"masked_keys,omitempty"`
}
