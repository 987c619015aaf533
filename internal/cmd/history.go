package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"chatbot/internal/database"
	"chatbot/internal/repository"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent logged exchanges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := database.Open(ctx, a.cfg.DatabaseDriver, a.cfg.DatabaseUrl, a.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			exchanges, err := repository.NewSQLExchangeRepository(db, a.logger).List(ctx, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tUSER\tBOT")
			for _, ex := range exchanges {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", ex.ID, ex.Timestamp.Format(time.DateTime), ex.UserMessage, ex.BotResponse)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of exchanges to show (0 for all)")
	return cmd
}
