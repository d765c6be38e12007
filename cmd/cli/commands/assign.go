package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "assign <shift_id> <staff_id>",
		Short: "Assign a staff member to a vacant shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := app.Manager.CreateAssignment(app.Ctx, args[0], args[1], notes)
			if err != nil {
				return err
			}

			fmt.Printf("Assigned staff %s to shift %s (assignment %s)\n",
				created.StaffID, created.ShiftID, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Assignment notes")
	return cmd
}

// ReplaceCmd creates the replace command
func ReplaceCmd(app *AppContext) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "replace <assignment_id> <new_staff_id>",
		Short: "Replace the staff member on an existing assignment",
		Long:  "Marks the existing assignment replaced and creates a new accepted assignment for the new staff member. Both changes commit together.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Manager.ReplaceStaff(app.Ctx, args[0], args[1], notes)
			if err != nil {
				return err
			}

			fmt.Printf("Replaced assignment %s; staff %s now holds assignment %s\n",
				result.Replaced.ID, result.Created.StaffID, result.Created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Assignment notes")
	return cmd
}

// UnassignCmd creates the unassign command
func UnassignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <assignment_id>",
		Short: "Remove an assignment from its shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Manager.RemoveAssignment(app.Ctx, args[0])
			if err != nil {
				return err
			}

			if result.Reverted {
				fmt.Printf("Removed assignment %s; shift reverted to %s\n",
					result.AssignmentID, result.ShiftStatus)
			} else {
				fmt.Printf("Removed assignment %s\n", result.AssignmentID)
			}
			return nil
		},
	}
}
