package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avelinecarr/dealsense/internal/cli/formatter"
	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Log and inspect deal activity",
	}

	cmd.AddCommand(
		newEventLogCmd(app),
		newEventTimelineCmd(app),
	)

	return cmd
}

func newEventLogCmd(app *App) *cobra.Command {
	var eventType, competitor, note string

	cmd := &cobra.Command{
		Use:   "log DEAL",
		Short: "Log a timeline event against a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Deals.Get(ctx, args[0])
			if err != nil {
				return err
			}

			var metadata domain.EventMetadata
			if competitor != "" {
				eventType = "competitor_mention"
				metadata = domain.CompetitorMention{Competitor: competitor}
			} else if note != "" {
				metadata = domain.Note{Text: note}
			}

			ev, err := app.Events.LogEvent(ctx, d.ID, eventType, metadata)
			if err != nil {
				return err
			}

			fmt.Printf("Logged %s on deal %s\n", ev.EventType, d.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventType, "type", "note", "Event type (email|call|meeting|note|demo|proposal_sent|contract_sent|competitor_mention)")
	cmd.Flags().StringVar(&competitor, "competitor", "", "Competitor name (implies --type competitor_mention)")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note text")

	return cmd
}

func newEventTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline DEAL",
		Short: "Show a deal's activity timeline, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Deals.Get(ctx, args[0])
			if err != nil {
				return err
			}
			events, err := app.Events.Timeline(ctx, d.ID)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Printf("No events logged for %s.\n", d.Name)
				return nil
			}

			now := time.Now().UTC()
			headers := []string{"WHEN", "TYPE", "DETAIL"}
			rows := make([][]string, 0, len(events))
			for _, ev := range events {
				detail := formatter.Dim("--")
				switch m := ev.Metadata.(type) {
				case domain.CompetitorMention:
					detail = formatter.StyleRed.Render(m.Competitor)
				case domain.StageChange:
					detail = formatter.Dim(fmt.Sprintf("%s → %s", m.From, m.To))
				case domain.Note:
					detail = formatter.Dim(m.Text)
				}
				rows = append(rows, []string{
					formatter.Dim(formatter.HumanTimestamp(ev.CreatedAt, now)),
					formatter.StyleBlue.Render(ev.EventType),
					detail,
				})
			}

			fmt.Printf("%s\n", formatter.RenderBox("Timeline: "+d.Name, formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}
