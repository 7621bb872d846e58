package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/core/services"
	"github.com/silverbirch/bunking/pkg/core/solver"
)

// SolveCmd creates the solve command
func SolveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <session_id>",
		Short: "Run the assignment solver for a session",
		Long:  "Snapshot the session's campers, bunks and requests, search for the best assignment within the tier's time budget, and write the result to the board.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tierName, _ := cmd.Flags().GetString("tier")
			scenarioID, _ := cmd.Flags().GetString("scenario")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			tier := app.Cfg.DefaultTier()
			if tierName != "" {
				var err error
				tier, err = solver.ParseTier(tierName)
				if err != nil {
					return err
				}
			}

			app.Logger.Debug("solve command",
				zap.String("session_id", args[0]),
				zap.String("tier", string(tier)),
				zap.Bool("dry_run", dryRun))

			outcome, err := services.RunSolver(app.Ctx, app.Database, app.Logger, services.SolveParams{
				SessionID:  args[0],
				Tier:       tier,
				ScenarioID: scenarioID,
				DryRun:     dryRun,
			})
			if err != nil {
				return fmt.Errorf("solve failed: %w", err)
			}

			fmt.Printf("\n🎯 Assignment Results\n\n")
			fmt.Printf("Tier:       %s (%s budget)\n", tier, tier.Budget())
			fmt.Printf("Elapsed:    %s across %d iterations\n", outcome.Elapsed.Round(time.Millisecond), outcome.Iterations)
			fmt.Printf("Objective:  %.2f\n", outcome.Objective)
			fmt.Printf("Assigned:   %d campers\n", len(outcome.Assignment))
			if dryRun {
				fmt.Printf("Mode:       🧪 DRY RUN (not saved)\n")
			} else if scenarioID != "" {
				fmt.Printf("Saved to:   scenario %s\n", scenarioID)
			} else {
				fmt.Printf("Saved to:   live board\n")
			}
			fmt.Println()

			if len(outcome.Unassigned) > 0 {
				fmt.Printf("⚠️  Unassigned (%d units):\n", len(outcome.Unassigned))
				for _, u := range outcome.Unassigned {
					fmt.Printf("  • campers %v: %s\n", u.CamperIDs, u.Reason)
				}
				fmt.Println()
			}

			if len(outcome.Violations) > 0 {
				fmt.Printf("Violations (%d):\n", len(outcome.Violations))
				for _, v := range outcome.Violations {
					fmt.Printf("  • [%s] %s: %s\n", v.Severity, v.BunkName, v.Description)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("tier", "", "Effort tier: quick, standard, thorough or deep (default from config)")
	cmd.Flags().String("scenario", "", "Write the result to a scenario instead of the live board")
	cmd.Flags().Bool("dry-run", false, "Compute the assignment without saving it")

	return cmd
}
