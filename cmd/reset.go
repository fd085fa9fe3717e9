package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all saved quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDisabled(cmd) {
			return errHistoryDisabled
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := commandContext(cmd)
		repo := s.ResultRepo()
		n, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count results: %w", err)
		}

		out := cmd.OutOrStdout()
		if n == 0 {
			fmt.Fprintln(out, "No saved results.")
			return nil
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprintf(out, "Delete %d saved results? [y/N] ", n)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		deleted, err := repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("delete results: %w", err)
		}
		fmt.Fprintf(out, "Deleted %d results.\n", deleted)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
