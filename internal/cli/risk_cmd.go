package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avelinecarr/dealsense/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRiskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "risk DEAL",
		Short: "Show a deal's full risk signals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enriched, err := app.Signals.EnrichDeal(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatRiskReport(enriched.ScoredDeal, time.Now().UTC()))
			return nil
		},
	}
}

func newQueueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show the action queue, most pressing first",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := app.Queue.Build(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatActionQueue(q.Urgent, q.Important, q.Safe))
			return nil
		},
	}
}
