package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/signalquiz/internal/store"
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List payment gate transitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().Payments(cmd.Context(), store.QueryOpts{Limit: limit, SessionID: session})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No payment events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-24s  %-14s  %s\n",
			"Seq", "Timestamp", "Session", "Transition", "Tx", "Detail")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, e := range events {
			fmt.Fprintf(out, "%-5d  %-19s  %-8s  %-24s  %-14s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.SessionID, 8),
				e.From+" -> "+e.To,
				truncate(e.TxHash, 14),
				e.Error,
			)
		}
		return nil
	},
}

func init() {
	paymentsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	paymentsCmd.Flags().StringP("session", "s", "", "Only show one payment session")
}
