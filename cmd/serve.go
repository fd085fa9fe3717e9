package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/talentquiz/internal/store"
	"github.com/abhisek/talentquiz/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz over HTTP",
	Long:  "Serve the quiz as web pages plus a JSON scoring API. Settings come from TALENTQUIZ_* env vars; flags override them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := web.LoadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("cors-origins") {
			origins, _ := cmd.Flags().GetString("cors-origins")
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
		if cmd.Flags().Changed("session-ttl") {
			cfg.SessionTTL, _ = cmd.Flags().GetDuration("session-ttl")
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var results store.ResultRepo
		var events store.EventRepo
		if !historyDisabled(cmd) {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			results = st.ResultRepo()
			events = st.EventRepo()
			log.Printf("recording results (%s)", st.Driver())
		} else {
			log.Printf("history disabled, results are not recorded")
		}

		insights := newInsightService(ctx, events)
		if !insights.HasProvider() {
			log.Printf("no LLM provider configured, talent reports use the offline template")
		}

		srv, err := web.NewServer(cfg, results, insights)
		if err != nil {
			return err
		}
		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		log.Printf("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address (overrides TALENTQUIZ_HTTP_ADDR)")
	serveCmd.Flags().String("cors-origins", "*", "Comma-separated allowed origins for the JSON API")
	serveCmd.Flags().Duration("session-ttl", 0, "Idle time before an unfinished quiz is dropped")
}
