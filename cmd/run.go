package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentquiz/internal/app"
	"github.com/abhisek/talentquiz/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	variant, err := resolveVariant(cmd)
	if err != nil {
		return err
	}

	opts := app.Options{Variant: variant}

	var events store.EventRepo
	if !historyDisabled(cmd) {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		events = st.EventRepo()
		opts.Services.Results = st.ResultRepo()
	}
	opts.Services.Insights = newInsightService(ctx, events)

	return app.Run(opts)
}
