package cmd

import (
	"fmt"

	"github.com/KaramelBytes/statkit-cli/internal/dataset"
	"github.com/KaramelBytes/statkit-cli/internal/stats"
	"github.com/KaramelBytes/statkit-cli/internal/summary"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	descWeighted bool
	descTop      int
)

var describeCmd = &cobra.Command{
	Use:   "describe <file|->",
	Short: "Print the full statistics summary for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		a, ds, err := analyze(args[0], descWeighted)
		if err != nil {
			return err
		}
		top := c.Top
		if cmd.Flags().Changed("top") {
			top = descTop
		}
		if top < 0 {
			return fmt.Errorf("--top must be >= 0, got %d", top)
		}
		s, err := summary.Build(a, ds, summary.Options{Precision: c.Precision, Top: top})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), s.Text())
		return nil
	},
}

// analyze loads path and ingests it into a fresh Analyzer.
func analyze(path string, weighted bool) (*stats.Analyzer, *dataset.Dataset, error) {
	ds, err := loadDataset(path, weighted)
	if err != nil {
		return nil, nil, err
	}
	a := stats.NewAnalyzer()
	if weighted {
		err = a.IngestWeighted(ds.Weights)
	} else {
		err = a.Ingest(ds.Values)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("analyze %s: %w", ds.Name, err)
	}
	n, _ := a.SetSize()
	log.Debug("dataset ingested", zap.String("source", ds.Name), zap.Int("set_size", n), zap.Bool("weighted", weighted))
	return a, ds, nil
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().BoolVarP(&descWeighted, "weighted", "w", false, "input rows are value,count pairs")
	describeCmd.Flags().IntVar(&descTop, "top", 3, "values to cover in most/least frequent sections, 0 to omit (overrides config)")
}
