package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverbirch/bunking/pkg/core/services"
)

// PreValidateCmd creates the prevalidate command
func PreValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prevalidate <session_id>",
		Short: "Check whether a session's data can support a feasible assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.PreValidateSession(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			if result.Valid {
				fmt.Printf("\n✅ Session is feasible\n\n")
			} else {
				fmt.Printf("\n❌ Session is NOT feasible\n\n")
			}

			if len(result.Errors) > 0 {
				fmt.Printf("Errors (%d):\n", len(result.Errors))
				for _, e := range result.Errors {
					fmt.Printf("  • %s\n", e)
				}
				fmt.Println()
			}

			if len(result.Warnings) > 0 {
				fmt.Printf("Warnings (%d):\n", len(result.Warnings))
				for _, w := range result.Warnings {
					fmt.Printf("  • %s\n", w)
				}
				fmt.Println()
			}

			stats := result.Statistics
			fmt.Printf("Campers:  %d (%d with requests, %d without)\n",
				stats.TotalCampers, stats.CampersWithRequests, stats.CampersWithoutRequests)
			fmt.Printf("Bunks:    %d\n", stats.TotalBunks)
			fmt.Printf("Requests: %d (%d unsatisfiable, %d conflicting pairs)\n",
				stats.TotalRequests, len(stats.Unsatisfiable), stats.ConflictingPairs)

			if len(stats.AreaCapacities) > 0 {
				fmt.Printf("\nArea capacity:\n")
				for _, area := range stats.AreaCapacities {
					fmt.Printf("  %-11s %3d campers / %3d beds\n", area.Area, area.Campers, area.Beds)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
