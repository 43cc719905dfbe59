package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avelinecarr/dealsense/internal/cli/formatter"
	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/spf13/cobra"
)

func newDealCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Manage deals",
	}

	cmd.AddCommand(
		newDealAddCmd(app),
		newDealListCmd(app),
		newDealShowCmd(app),
		newDealUpdateCmd(app),
		newDealStageCmd(app),
		newDealCloseCmd(app),
		newDealArchiveCmd(app),
		newDealUnarchiveCmd(app),
		newDealRemoveCmd(app),
	)

	return cmd
}

func newDealAddCmd(app *App) *cobra.Command {
	var name, stage, value string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new deal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// No flags on an interactive terminal: collect via form.
			if name == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := dealAddForm(&name, &value, &stage).Run(); err != nil {
					return err
				}
			}
			if name == "" {
				return fmt.Errorf("deal name is required (use --name)")
			}

			d := &domain.Deal{
				Name:  name,
				Value: parseValue(value),
			}
			if stage != "" {
				parsed, err := domain.ParseStage(stage)
				if err != nil {
					return err
				}
				d.Stage = parsed
			}

			if err := app.Deals.Create(context.Background(), d); err != nil {
				return err
			}

			fmt.Printf("Created deal %s [%s]\n", d.Name, d.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Deal name")
	cmd.Flags().StringVar(&value, "value", "", "Deal value in USD")
	cmd.Flags().StringVar(&stage, "stage", "", "Pipeline stage (discovery|qualification|proposal|negotiation)")

	return cmd
}

func newDealListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deals",
		RunE: func(cmd *cobra.Command, args []string) error {
			deals, err := app.Deals.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(deals) == 0 {
				fmt.Println("No deals found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatDealList(deals, time.Now().UTC()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived deals")

	return cmd
}

func newDealShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show deal details with fresh signals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enriched, err := app.Signals.EnrichDeal(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatDealInspect(enriched.ScoredDeal, enriched.Timeline, time.Now().UTC()))
			return nil
		},
	}
}

func newDealUpdateCmd(app *App) *cobra.Command {
	var name, value string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Deals.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				d.Name = name
			}
			if cmd.Flags().Changed("value") {
				if err := validateOptionalValue(value); err != nil {
					return fmt.Errorf("invalid value %q: %w", value, err)
				}
				d.Value = parseValue(value)
			}

			if err := app.Deals.Update(ctx, d); err != nil {
				return err
			}

			fmt.Printf("Updated deal %s [%s]\n", d.Name, d.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Deal name")
	cmd.Flags().StringVar(&value, "value", "", "Deal value in USD")

	return cmd
}

func newDealStageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stage ID STAGE",
		Short: "Move a deal to another pipeline stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Deals.Get(ctx, args[0])
			if err != nil {
				return err
			}
			to, err := domain.ParseStage(args[1])
			if err != nil {
				return err
			}

			if err := app.Deals.ChangeStage(ctx, d.ID, to); err != nil {
				return err
			}

			fmt.Printf("Moved deal %s to %s\n", d.Name, to)
			return nil
		},
	}
}

func newDealCloseCmd(app *App) *cobra.Command {
	var lost bool

	cmd := &cobra.Command{
		Use:   "close ID",
		Short: "Close a deal as won (default) or lost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Deals.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if err := app.Deals.Close(ctx, d.ID, !lost); err != nil {
				return err
			}

			outcome := "won"
			if lost {
				outcome = "lost"
			}
			fmt.Printf("Closed deal %s as %s\n", d.Name, outcome)
			return nil
		},
	}

	cmd.Flags().BoolVar(&lost, "lost", false, "Close as lost instead of won")

	return cmd
}

func newDealArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Deals.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Deals.Archive(ctx, d.ID); err != nil {
				return err
			}
			fmt.Printf("Archived deal %s\n", d.Name)
			return nil
		},
	}
}

func newDealUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive ID",
		Short: "Unarchive a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Deals.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Deals.Unarchive(ctx, d.ID); err != nil {
				return err
			}
			fmt.Printf("Unarchived deal %s\n", d.Name)
			return nil
		},
	}
}

func newDealRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a deal and its timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Deals.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if app.IsInteractive != nil && app.IsInteractive() {
				confirmed := false
				prompt := fmt.Sprintf("Permanently remove %q and its timeline?", d.Name)
				if err := confirmForm(prompt, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := app.Deals.Delete(ctx, d.ID, force); err != nil {
				return err
			}
			fmt.Printf("Removed deal %s\n", d.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove even if the deal is not archived")

	return cmd
}
