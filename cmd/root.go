package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/signalquiz/internal/config"
	"github.com/abhisek/signalquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "signalquiz",
	Short: "Signal Creator Quiz",
	Long:  "Signal Creator Quiz: answer ten questions, pay a small on-chain fee to reveal your creator type, and compare scores on the leaderboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SIGNALQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides SIGNALQUIZ_CONFIG env var)")

	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SIGNALQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig reads --config (or SIGNALQUIZ_CONFIG) over the defaults and
// validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
