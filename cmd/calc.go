package cmd

import (
	"fmt"

	"github.com/KaramelBytes/statkit-cli/internal/stats"
	"github.com/KaramelBytes/statkit-cli/internal/summary"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var calcPopulation bool

var calcCmd = &cobra.Command{
	Use:   "calc <file|->",
	Short: "One-shot sum, min, max, mean, variance and standard deviation",
	Long: `Compute basic statistics without building frequency indexes.
Variance and standard deviation use the sample (n-1) form unless --population is set
or the config has sample: false.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0], false)
		if err != nil {
			return err
		}
		c := currentConfig()
		sample := c.Sample
		if cmd.Flags().Changed("population") {
			sample = !calcPopulation
		}
		log.Debug("calc", zap.String("source", ds.Name), zap.Bool("sample", sample))

		vals := ds.Values
		rows := []struct {
			label string
			fn    func([]float64) (float64, error)
		}{
			{"sum", stats.Sum},
			{"min", stats.Min},
			{"max", stats.Max},
			{"mean", stats.Mean},
			{"variance", func(v []float64) (float64, error) { return stats.Variance(v, sample) }},
			{"std_deviation", func(v []float64) (float64, error) { return stats.StandardDeviation(v, sample) }},
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "count: %d\n", len(vals))
		for _, r := range rows {
			v, err := r.fn(vals)
			if err != nil {
				return fmt.Errorf("%s: %w", r.label, err)
			}
			fmt.Fprintf(out, "%s: %s\n", r.label, summary.FormatFloat(v, c.Precision))
		}
		return nil
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode <file|->",
	Short: "Print the single most common value",
	Long:  `Print the most common value. Fails when two or more values tie for the highest count.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0], false)
		if err != nil {
			return err
		}
		m, err := stats.Mode(ds.Values)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary.FormatFloat(m, currentConfig().Precision))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(modeCmd)
	calcCmd.Flags().BoolVar(&calcPopulation, "population", false, "divide variance by n instead of n-1")
}
