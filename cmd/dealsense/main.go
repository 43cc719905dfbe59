package main

import (
	"fmt"
	"os"

	"github.com/avelinecarr/dealsense/internal/cli"
	"github.com/avelinecarr/dealsense/internal/config"
	"github.com/avelinecarr/dealsense/internal/db"
	"github.com/avelinecarr/dealsense/internal/repository"
	"github.com/avelinecarr/dealsense/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.NoColor {
		// lipgloss/termenv honor NO_COLOR; set it before any rendering.
		os.Setenv("NO_COLOR", "1")
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	dealRepo := repository.NewSQLiteDealRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Observe use-case timings on stderr when debugging.
	var obs service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("DEALSENSE_DEBUG") != "" {
		obs = service.NewLogUseCaseObserver(os.Stderr)
	}

	riskCfg := cfg.RiskConfig()
	predictCfg := cfg.PredictConfig()

	// Wire services
	signalsSvc := service.NewSignalsService(dealRepo, eventRepo, settingsRepo, riskCfg, obs)
	predictionSvc := service.NewPredictionService(dealRepo, predictCfg)

	app := &cli.App{
		Deals:       service.NewDealService(dealRepo, uow),
		Events:      service.NewEventService(dealRepo, eventRepo, settingsRepo, uow, riskCfg),
		Settings:    service.NewSettingsService(settingsRepo),
		Signals:     signalsSvc,
		Predictions: predictionSvc,
		Queue:       service.NewActionQueueService(signalsSvc),
		Insights:    service.NewInsightService(dealRepo, signalsSvc, predictionSvc),
	}

	// Detect interactive terminal for form-based entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
