package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/silverbirch/bunking/pkg/core/model"
	"github.com/silverbirch/bunking/pkg/core/requests"
	"github.com/silverbirch/bunking/pkg/core/services"
)

// MergeRequestsCmd creates the mergeRequests command
func MergeRequestsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mergeRequests <request_id> <request_id> [request_id...]",
		Short: "Merge duplicate requests into one, keeping every source field",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keepTargetFrom, _ := cmd.Flags().GetString("keep-target-from")
			finalType, _ := cmd.Flags().GetString("type")

			if keepTargetFrom == "" {
				keepTargetFrom = args[0]
			}

			merged, err := services.MergeRequests(app.Ctx, app.Database, app.Logger,
				args, keepTargetFrom, model.RequestType(finalType))
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Merged %d requests\n\n", len(args))
			fmt.Printf("Merged ID:  %s\n", merged.ID)
			fmt.Printf("Type:       %s\n", merged.Type)
			fmt.Printf("Requestee:  %d\n", merged.RequesteeID)
			fmt.Printf("Priority:   %d\n", merged.Priority)
			fmt.Printf("Confidence: %.2f\n", merged.Confidence)
			fmt.Printf("Sources:    %d\n\n", len(merged.Sources))

			return nil
		},
	}

	cmd.Flags().String("keep-target-from", "", "Request whose target the merged request keeps (default: first argument)")
	cmd.Flags().String("type", string(model.RequestBunkWith), "Type of the merged request")

	return cmd
}

// SplitRequestCmd creates the splitRequest command
func SplitRequestCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splitRequest <request_id> <source_id>",
		Short: "Split a source field off a merged request into its own request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newType, _ := cmd.Flags().GetString("type")
			target, _ := cmd.Flags().GetInt("target")

			plan, err := services.SplitRequest(app.Ctx, app.Database, app.Logger, args[0], []requests.SplitSpec{
				{SourceID: args[1], NewType: model.RequestType(newType), NewTargetID: target},
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Split complete\n\n")
			for _, restored := range plan.Restored {
				fmt.Printf("Restored ID: %s (%s, status %s)\n", restored.ID, restored.Type, restored.Status)
			}
			fmt.Printf("Remaining sources on %s: %d\n\n", plan.Updated.ID, len(plan.Updated.Sources))

			return nil
		},
	}

	cmd.Flags().String("type", string(model.RequestBunkWith), "Type of the restored request")
	cmd.Flags().Int("target", 0, "Camper ID the restored request points at (0 leaves it pending)")

	return cmd
}

// ResolveRequestCmd creates the resolveRequest command
func ResolveRequestCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolveRequest <request_id> <camper_id>",
		Short: "Manually point an unresolved request at a camper",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			personID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("camper_id must be a number: %w", err)
			}

			resolved, err := services.ResolveRequestManually(app.Ctx, app.Database, app.Logger, args[0], personID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Request %s resolved to camper %d (confidence %.2f)\n\n",
				resolved.ID, resolved.RequesteeID, resolved.Confidence)

			return nil
		},
	}
}
