package cli

import (
	"github.com/avelinecarr/dealsense/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Deals       service.DealService
	Events      service.EventService
	Settings    service.SettingsService
	Signals     service.SignalsService
	Predictions service.PredictionService
	Queue       service.ActionQueueService
	Insights    service.InsightService

	// IsInteractive reports whether stdin is a terminal; interactive
	// commands fall back to flags when it returns false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "dealsense" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "dealsense",
		Short: "Deal risk scoring and pipeline prediction",
	}

	root.AddCommand(
		newDealCmd(app),
		newEventCmd(app),
		newRiskCmd(app),
		newQueueCmd(app),
		newPredictCmd(app),
		newForecastCmd(app),
		newPatternsCmd(app),
		newAnomaliesCmd(app),
		newInsightsCmd(app),
		newContextCmd(app),
		newSettingsCmd(app),
		newDashboardCmd(app),
	)

	return root
}
