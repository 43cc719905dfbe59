package cli

import (
	"context"
	"fmt"

	"github.com/avelinecarr/dealsense/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPredictCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "predict DEAL",
		Short: "Predict days-to-close and win probability for a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Predictions.PredictDeal(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatDealPrediction(p.Deal, p.Estimate, p.WinProbability, p.Similar))
			return nil
		},
	}
}

func newForecastCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Forecast pipeline value over the next three months",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.Predictions.Forecast(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatForecast(*f))
			return nil
		},
	}
}

func newPatternsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Mine closed history for win-rate and cycle patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Predictions.Patterns(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatPatterns(*report))
			return nil
		},
	}
}

func newAnomaliesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "anomalies",
		Short: "Flag deals deviating from cohort norms",
		RunE: func(cmd *cobra.Command, args []string) error {
			anomalies, err := app.Predictions.Anomalies(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatAnomalies(anomalies))
			return nil
		},
	}
}
