package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentquiz/internal/talent"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		variant, err := resolveVariant(cmd)
		if err != nil {
			return err
		}
		if err := talent.Validate(); err != nil {
			return fmt.Errorf("question bank: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n\n", variant.DisplayName(), variant)
		for i, q := range talent.Bank(variant) {
			fmt.Fprintf(out, "%2d. [%s] %s\n", i+1, q.Category, q.Text)
		}

		fmt.Fprintln(out)
		for _, o := range talent.Options() {
			fmt.Fprintf(out, "  %d = %s\n", o.Value, o.Label)
		}
		fmt.Fprintf(out, "\n每类 %d 题，得分 %d-%d\n",
			talent.QuestionsPerCategory(variant), talent.MinScore(variant), talent.MaxScore(variant))
		for _, c := range talent.AllCategories() {
			fmt.Fprintf(out, "  %s = %s\n", c, c.Name())
		}
		return nil
	},
}
