package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/signalquiz/internal/quiz"
	"github.com/abhisek/signalquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().Results(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No quizzes completed yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-7s  %-20s  %-8s  %s\n",
			"Seq", "Timestamp", "Session", "Score", "Category", "Revealed", "Name")
		fmt.Fprintln(out, strings.Repeat("─", 92))
		for _, e := range events {
			revealed := "no"
			if e.Revealed {
				revealed = "yes"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-8s  %-7s  %-20s  %-8s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.SessionID, 8),
				fmt.Sprintf("%d/%d", e.Score, quiz.MaxScore),
				e.Category,
				revealed,
				e.DisplayName,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
}
