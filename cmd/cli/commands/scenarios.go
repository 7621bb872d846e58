package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverbirch/bunking/pkg/core/services"
)

// CreateScenarioCmd creates the createScenario command
func CreateScenarioCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "createScenario <session_id> <name>",
		Short: "Open a draft workspace seeded from the live board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := services.CreateScenario(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Scenario created\n\n")
			fmt.Printf("ID:      %s\n", scenario.ID)
			fmt.Printf("Name:    %s\n", scenario.Name)
			fmt.Printf("Session: %s\n\n", scenario.SessionID)

			return nil
		},
	}
}

// ListScenariosCmd creates the listScenarios command
func ListScenariosCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listScenarios <session_id>",
		Short: "List a session's draft workspaces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := services.ListScenarios(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			if len(scenarios) == 0 {
				fmt.Printf("\nNo scenarios for session %s\n\n", args[0])
				return nil
			}

			fmt.Printf("\nScenarios for session %s:\n\n", args[0])
			for _, s := range scenarios {
				fmt.Printf("  %s  %-24s %s\n", s.ID, s.Name, s.CreatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Println()

			return nil
		},
	}
}

// DeleteScenarioCmd creates the deleteScenario command
func DeleteScenarioCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteScenario <scenario_id>",
		Short: "Discard a draft workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteScenario(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Scenario %s deleted\n\n", args[0])
			return nil
		},
	}
}
