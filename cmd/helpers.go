package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/statkit-cli/internal/config"
	"github.com/KaramelBytes/statkit-cli/internal/dataset"
	"go.uber.org/zap"
)

func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		return &cfgpkg.Global{Precision: 6, Top: 3, Sample: true}
	}
	return cfg
}

// loaderOptions maps the effective configuration to dataset loader options.
func loaderOptions(c *cfgpkg.Global) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	opt.Column = c.Column
	opt.MaxRows = c.MaxRows
	switch c.Delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", c.Delimiter)
	}
	switch strings.ToLower(strings.TrimSpace(c.DecimalSeparator)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", c.DecimalSeparator)
	}
	// checked untrimmed so that a literal " " selects space
	switch strings.ToLower(c.ThousandsSeparator) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", c.ThousandsSeparator)
	}
	return opt, nil
}

// loadDataset reads path (or stdin for "-") using the effective configuration.
func loadDataset(path string, weighted bool) (*dataset.Dataset, error) {
	opt, err := loaderOptions(currentConfig())
	if err != nil {
		return nil, err
	}
	load := dataset.Load
	if weighted {
		load = dataset.LoadWeighted
	}
	ds, err := load(path, opt)
	if err != nil {
		return nil, err
	}
	log.Debug("dataset loaded",
		zap.String("source", ds.Name),
		zap.String("column", ds.Column),
		zap.Int("rows", ds.Rows),
		zap.Int("values", len(ds.Values)),
		zap.Int("distinct_weighted", len(ds.Weights)),
		zap.Int("skipped", ds.Skipped),
	)
	return ds, nil
}

// parseValue parses a number given on the command line with the configured locale.
func parseValue(s string) (float64, error) {
	opt, err := loaderOptions(currentConfig())
	if err != nil {
		return 0, err
	}
	ds, err := dataset.Read(strings.NewReader(s), "argument", opt, false)
	if err != nil || len(ds.Values) != 1 {
		return 0, fmt.Errorf("invalid number: %q", s)
	}
	return ds.Values[0], nil
}
