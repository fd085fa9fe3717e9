package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentquiz/internal/store"
	"github.com/abhisek/talentquiz/internal/talent"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show average category scores over saved results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDisabled(cmd) {
			return errHistoryDisabled
		}

		var opts store.QueryOpts
		if cmd.Flags().Changed("variant") {
			v, err := resolveVariant(cmd)
			if err != nil {
				return err
			}
			opts.Variant = v
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.ResultRepo().List(commandContext(cmd), opts)
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No saved results.")
			return nil
		}

		avg := averageScores(results)
		fmt.Fprintf(out, "%d results (%s)\n", len(results), variantOrAll(opts.Variant))
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, c := range talent.AllCategories() {
			a, ok := avg[c]
			if !ok {
				continue
			}
			fmt.Fprintf(out, "%s  %s  %5.1f\n", c, pad(c.Name(), 16), a)
		}
		return nil
	},
}

// averageScores returns the mean total per category over the results that
// scored it.
func averageScores(results []store.Result) map[talent.Category]float64 {
	sums := map[talent.Category]int{}
	counts := map[talent.Category]int{}
	for _, r := range results {
		for c, total := range r.Scores {
			sums[c] += total
			counts[c]++
		}
	}
	avg := make(map[talent.Category]float64, len(sums))
	for c, sum := range sums {
		avg[c] = float64(sum) / float64(counts[c])
	}
	return avg
}
