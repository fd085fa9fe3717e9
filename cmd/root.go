package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentquiz/internal/insight"
	"github.com/abhisek/talentquiz/internal/llm"
	"github.com/abhisek/talentquiz/internal/store"
	"github.com/abhisek/talentquiz/internal/talent"
)

var rootCmd = &cobra.Command{
	Use:   "talentquiz",
	Short: "Multiple-intelligence talent self-assessment",
	Long:  "talentquiz: a 40-question self-assessment across ten talent categories, with a radar chart and a talent report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite file or Postgres DSN (overrides TALENTQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("db-driver", "sqlite", "Database driver: sqlite or postgres")
	rootCmd.PersistentFlags().String("variant", "", "Question bank: self-rating or statement (default self-rating)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not read or record saved results")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database location using --db flag (highest
// priority), then TALENTQUIZ_DB env var, then the default XDG path. Postgres
// has no default location.
func resolveDBPath(cmd *cobra.Command, driver store.Driver) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if driver == store.DriverSQLite {
			return p, store.EnsureDir(p)
		}
		return p, nil
	}
	if driver == store.DriverPostgres {
		if p := os.Getenv("TALENTQUIZ_DB"); p != "" {
			return p, nil
		}
		return "", errors.New("--db or TALENTQUIZ_DB is required with --db-driver postgres")
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by the persistent flags.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	name, _ := cmd.Flags().GetString("db-driver")
	driver, err := store.ParseDriver(name)
	if err != nil {
		return nil, err
	}
	dsn, err := resolveDBPath(cmd, driver)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(commandContext(cmd), driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// resolveVariant parses --variant.
func resolveVariant(cmd *cobra.Command) (talent.Variant, error) {
	v, _ := cmd.Flags().GetString("variant")
	return talent.ParseVariant(v)
}

func historyDisabled(cmd *cobra.Command) bool {
	off, _ := cmd.Flags().GetBool("no-history")
	return off
}

// newInsightService builds the talent report service. Without a configured
// provider it serves the offline template only.
func newInsightService(ctx context.Context, events store.EventRepo) *insight.Service {
	cfg, ok := llm.ResolveConfig()
	if !ok {
		return insight.NewService(nil, insight.DefaultConfig())
	}
	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Talent reports will use the offline template.")
		return insight.NewService(nil, insight.DefaultConfig())
	}
	return insight.NewService(provider, insight.DefaultConfig())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
