package cli

import (
	"context"
	"fmt"

	"github.com/avelinecarr/dealsense/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and tune risk scoring settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current risk settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Settings.Get(context.Background())
			if err != nil {
				return err
			}

			competitive := formatter.StyleGreen.Render("enabled")
			if !s.EnableCompetitiveSignals {
				competitive = formatter.Dim("disabled")
			}

			content := fmt.Sprintf("%s  %s\n%s  %s\n",
				formatter.Dim("Inactivity threshold"),
				formatter.Bold(fmt.Sprintf("%d days", s.InactivityThresholdDays)),
				formatter.Dim("Competitive signals "),
				competitive,
			)
			fmt.Printf("%s\n", formatter.RenderBox("Settings", content))
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var threshold int
	var competitive bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update risk settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("inactivity-days") {
				s.InactivityThresholdDays = threshold
			}
			if cmd.Flags().Changed("competitive") {
				s.EnableCompetitiveSignals = competitive
			}

			if err := app.Settings.Update(ctx, s); err != nil {
				return err
			}

			fmt.Println("Settings updated.")
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "inactivity-days", 7, "Days of silence before a deal counts as inactive")
	cmd.Flags().BoolVar(&competitive, "competitive", true, "Score competitor mentions")

	return cmd
}
