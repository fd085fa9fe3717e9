package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/store"
	"github.com/abhisek/talentquiz/internal/talent"
)

var errHistoryDisabled = errors.New("history is disabled by --no-history")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDisabled(cmd) {
			return errHistoryDisabled
		}
		limit, _ := cmd.Flags().GetInt("limit")

		opts := store.QueryOpts{Limit: limit}
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

		fmt.Fprintf(out, "%s  %s  %s  %s  %s  %s\n",
			pad("ID", 8), pad("Submitted", 16), pad("Name", 12), pad("Variant", 12), pad("Total", 5), "Strongest")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, r := range results {
			report := scoring.BuildReport(r.Scores, scoring.SchemeFor(r.Variant))
			fmt.Fprintf(out, "%s  %s  %s  %s  %5d  %s\n",
				pad(truncate(r.ID, 8), 8),
				r.SubmittedAt.Local().Format("2006-01-02 15:04"),
				pad(truncate(r.Respondent, 12), 12),
				pad(string(r.Variant), 12),
				r.Scores.Total(),
				scoring.JoinNames(report.Strongest),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
}

// variantOrAll formats an optional variant filter.
func variantOrAll(v talent.Variant) string {
	if v == "" {
		return "all variants"
	}
	return string(v)
}
