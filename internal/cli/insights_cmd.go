package cli

import (
	"context"
	"fmt"

	"github.com/avelinecarr/dealsense/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newInsightsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show pipeline health, bottlenecks, and silent deals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			dc, err := app.Insights.DealContext(ctx)
			if err != nil {
				return err
			}
			pi, err := app.Insights.PipelineInsights(ctx)
			if err != nil {
				return err
			}
			act, err := app.Insights.ActivitySummary(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatInsights(*dc, *pi, *act))
			return nil
		},
	}
}

func newContextCmd(app *App) *cobra.Command {
	var predictions bool
	var dealID string

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Emit assistant prompt context as plain text",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if dealID != "" {
				block, err := app.Insights.DealDetailBlock(ctx, dealID)
				if err != nil {
					return err
				}
				fmt.Println(block)
				return nil
			}

			block, err := app.Insights.ContextBlock(ctx)
			if err != nil {
				return err
			}
			fmt.Println(block)

			if predictions {
				pb, err := app.Insights.PredictionsBlock(ctx)
				if err != nil {
					return err
				}
				fmt.Println(pb)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&predictions, "predictions", false, "Append the forecast/patterns/anomalies block")
	cmd.Flags().StringVar(&dealID, "deal", "", "Emit the detail block for one deal instead")

	return cmd
}
