package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverbirch/bunking/pkg/core/services"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <session_id>",
		Short: "Check a bunking board against the rule set and request list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarioID, _ := cmd.Flags().GetString("scenario")

			report, err := services.ValidateBunking(app.Ctx, app.Database, app.Logger, args[0], scenarioID)
			if err != nil {
				return err
			}

			stats := report.Statistics
			fmt.Printf("\n📋 Bunking Report\n\n")
			fmt.Printf("Assigned:     %d campers (%d unassigned)\n", stats.AssignedCampers, stats.UnassignedCampers)
			fmt.Printf("Requests:     %d/%d satisfied (%.0f%%)\n",
				stats.SatisfiedRequests, stats.TotalRequests, stats.RequestSatisfactionRate*100)
			fmt.Printf("Bunk fill:    %d under / %d at / %d over capacity\n",
				stats.Capacity.Under, stats.Capacity.At, stats.Capacity.Over)

			if len(stats.BySourceField) > 0 {
				fmt.Printf("\nBy source field:\n")
				for field, fieldStats := range stats.BySourceField {
					fmt.Printf("  %-20s %d/%d satisfied (%.0f%%)\n",
						field, fieldStats.Satisfied, fieldStats.Total, fieldStats.Rate*100)
				}
			}

			if len(report.Issues) > 0 {
				fmt.Printf("\nIssues (%d):\n", len(report.Issues))
				for _, issue := range report.Issues {
					icon := "ℹ️ "
					switch issue.Severity {
					case "error":
						icon = "❌"
					case "warning":
						icon = "⚠️ "
					}
					fmt.Printf("  %s [%s] %s\n", icon, issue.Type, issue.Message)
				}
			} else {
				fmt.Printf("\n✅ No issues found\n")
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("scenario", "", "Validate a scenario's board instead of the live board")

	return cmd
}
