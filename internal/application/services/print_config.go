// Package services contains application use cases.
package services

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/reglet-dev/connmask/internal/application/dto"
	"github.com/reglet-dev/connmask/internal/application/ports"
	"github.com/reglet-dev/connmask/internal/domain/values"
	"github.com/reglet-dev/connmask/internal/infrastructure/sensitivedata"
)

// PrintConfigUseCase loads connector configuration files and logs each of
// them with credentials masked.
type PrintConfigUseCase struct {
	loader   ports.ConfigLoader
	expander ports.PlaceholderExpander
	provider ports.SensitiveValueProvider
	printer  *ConfigPrinter
	pattern  *regexp.Regexp
	logger   *slog.Logger
}

// NewPrintConfigUseCase creates the use case. expander and provider may be nil.
func NewPrintConfigUseCase(
	loader ports.ConfigLoader,
	expander ports.PlaceholderExpander,
	provider ports.SensitiveValueProvider,
	pattern *regexp.Regexp,
	printer *ConfigPrinter,
	logger *slog.Logger,
) *PrintConfigUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrintConfigUseCase{
		loader:   loader,
		expander: expander,
		provider: provider,
		printer:  printer,
		pattern:  pattern,
		logger:   logger,
	}
}

// Execute prints every requested file. Nothing is printed unless all files
// load, so a failure never leaves a partial dump behind.
func (uc *PrintConfigUseCase) Execute(ctx context.Context, req dto.PrintConfigRequest) (*dto.PrintConfigResponse, error) {
	uc.logger.Debug("loading connector configuration", "files", len(req.Paths))

	loaded, err := uc.loader.LoadAll(ctx, req.Paths)
	if err != nil {
		return nil, sensitivedata.SafeError(err, uc.provider)
	}

	configs := make([]*values.Properties, len(loaded))
	for i, props := range loaded {
		if uc.expander != nil {
			props, err = uc.expander.Substitute(props)
			if err != nil {
				return nil, sensitivedata.SafeError(err, uc.provider)
			}
		}
		uc.track(props)
		configs[i] = props
	}

	resp := &dto.PrintConfigResponse{
		RunID:   uuid.NewString(),
		Printed: make([]dto.PrintedConfig, 0, len(configs)),
	}
	for i, props := range configs {
		component := req.Component
		if component == "" {
			component = componentName(req.Paths[i])
		}

		uc.printer.Print(component, props)
		resp.Printed = append(resp.Printed, dto.PrintedConfig{
			Path:       req.Paths[i],
			Component:  component,
			Keys:       props.Len(),
			MaskedKeys: uc.sensitiveKeys(props),
		})
	}

	return resp, nil
}

// sensitiveKeys lists the keys of props that the mask pattern covers.
func (uc *PrintConfigUseCase) sensitiveKeys(props *values.Properties) []string {
	view, ok := sensitivedata.MaskWithPattern(uc.pattern, props).(*sensitivedata.MaskedConfig)
	if !ok {
		return nil
	}
	var keys []string
	for _, k := range view.Keys() {
		if view.Matches(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// track records the raw values of sensitive keys so they are scrubbed if
// they surface anywhere else in the output.
func (uc *PrintConfigUseCase) track(props *values.Properties) {
	if uc.provider == nil {
		return
	}
	for _, k := range uc.sensitiveKeys(props) {
		v, _ := props.Get(k)
		uc.provider.Track(v)
	}
}

// componentName derives a label from a file path: "conf/mysql-source.yaml"
// becomes "mysql-source".
func componentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
