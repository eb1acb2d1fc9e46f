package cmd

import (
	"fmt"

	"github.com/KaramelBytes/statkit-cli/internal/summary"
	"github.com/spf13/cobra"
)

var (
	freqWeighted bool
	freqValue    string
	freqPercent  bool
	freqMost     int
	freqLeast    int
)

var freqCmd = &cobra.Command{
	Use:   "freq <file|->",
	Short: "Query value frequencies and most/least frequent values",
	Long: `Query the frequency distribution of a dataset.

--value prints how often a value occurs (0 when absent); add --percent for its share.
--most N and --least N print whole frequency buckets until at least N values are
covered, so values tied at the cutoff are all listed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if !f.Changed("value") && !f.Changed("most") && !f.Changed("least") {
			return fmt.Errorf("specify at least one of --value, --most or --least")
		}
		a, _, err := analyze(args[0], freqWeighted)
		if err != nil {
			return err
		}
		c := currentConfig()
		out := cmd.OutOrStdout()
		if f.Changed("value") {
			v, err := parseValue(freqValue)
			if err != nil {
				return err
			}
			pct := c.Percent
			if f.Changed("percent") {
				pct = freqPercent
			}
			fmt.Fprintf(out, "frequency(%s): %s\n", summary.FormatFloat(v, c.Precision), summary.FormatFloat(a.Frequency(v, pct), c.Precision))
		}
		if f.Changed("most") {
			b, err := a.MostFrequent(freqMost)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "most frequent: %s\n", summary.FormatBuckets(b, c.Precision))
		}
		if f.Changed("least") {
			b, err := a.LeastFrequent(freqLeast)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "least frequent: %s\n", summary.FormatBuckets(b, c.Precision))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(freqCmd)
	freqCmd.Flags().BoolVarP(&freqWeighted, "weighted", "w", false, "input rows are value,count pairs")
	freqCmd.Flags().StringVar(&freqValue, "value", "", "value to look up")
	freqCmd.Flags().BoolVar(&freqPercent, "percent", false, "report --value frequency as a share of the dataset (overrides config)")
	freqCmd.Flags().IntVar(&freqMost, "most", 1, "list the most frequent values covering at least N values")
	freqCmd.Flags().IntVar(&freqLeast, "least", 1, "list the least frequent values covering at least N values")
}
