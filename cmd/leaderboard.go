package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/signalquiz/internal/leaderboard"
	"github.com/abhisek/signalquiz/internal/quiz"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the top leaderboard entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		kvStore, closeKV, err := openKV(ctx, cfg, s)
		if err != nil {
			return err
		}
		defer closeKV()

		entries := leaderboard.New(kvStore).Top(ctx, limit)
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No scores recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-24s  %-7s  %-26s  %s\n", "#", "Player", "Score", "Type", "When")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for i, e := range entries {
			fmt.Fprintf(out, "%-4d  %-24s  %-7s  %-26s  %s\n",
				i+1,
				truncate(e.Username, 24),
				fmt.Sprintf("%d/%d", e.Score, quiz.MaxScore),
				quiz.Classify(e.Score).Title,
				time.UnixMilli(e.Timestamp).Local().Format("2006-01-02 15:04"),
			)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
