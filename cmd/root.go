package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/statkit-cli/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
	// Input/output flags (override config if set)
	flagColumn    string
	flagDelimiter string
	flagDecimal   string
	flagThousands string
	flagPrecision int
	flagMaxRows   int

	// Loaded configuration
	cfg *cfgpkg.Global
)

// log is replaced by a development logger when --debug is set.
var log = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "statkit",
	Short: "statkit: descriptive statistics for numeric datasets",
	Long: `statkit loads numbers from text, CSV or TSV files and reports descriptive statistics:
size, min, max, mean, median, sample and population variance, standard deviation,
frequency rankings and mode.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !debug {
			log = zap.NewNop()
			return nil
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log = l
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.statkit/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVarP(&flagColumn, "column", "c", "", "CSV/TSV value column: header name or 1-based index (overrides config)")
	pf.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (default from file extension)")
	pf.StringVar(&flagDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	pf.StringVar(&flagThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	pf.IntVar(&flagPrecision, "precision", 0, "significant digits in output, 0 = shortest exact (overrides config)")
	pf.IntVar(&flagMaxRows, "max-rows", 0, "maximum rows to read, 0 = unlimited (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{Precision: 6, Top: 3, Sample: true}
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("column") {
		cfg.Column = flagColumn
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	if f.Changed("decimal") {
		cfg.DecimalSeparator = flagDecimal
	}
	if f.Changed("thousands") {
		cfg.ThousandsSeparator = flagThousands
	}
	if f.Changed("precision") && flagPrecision >= 0 {
		cfg.Precision = flagPrecision
	}
	if f.Changed("max-rows") && flagMaxRows >= 0 {
		cfg.MaxRows = flagMaxRows
	}
}
