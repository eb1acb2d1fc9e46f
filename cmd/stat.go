package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/statkit-cli/internal/stats"
	"github.com/KaramelBytes/statkit-cli/internal/summary"
	"github.com/spf13/cobra"
)

var statWeighted bool

var statCmd = &cobra.Command{
	Use:   "stat <name> <file|->",
	Short: "Print a single derived statistic",
	Long: `Print one derived statistic by name. Canonical names are
` + strings.Join(stats.StatNames, ", ") + `.
Synonyms are accepted: average, setCount, stdDev, popStdDev, as well as camelCase
and get-prefixed forms such as getSetSize.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, path := args[0], args[1]
		// fail on unknown names before reading any input
		if _, err := stats.ResolveStatName(name); err != nil {
			return err
		}
		a, _, err := analyze(path, statWeighted)
		if err != nil {
			return err
		}
		v, err := a.Stat(name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary.FormatFloat(v, currentConfig().Precision))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statCmd)
	statCmd.Flags().BoolVarP(&statWeighted, "weighted", "w", false, "input rows are value,count pairs")
}
