package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careops/careshift/pkg/core/model"
	"github.com/careops/careshift/pkg/core/services"
)

// SetStatusCmd creates the setStatus command
func SetStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setStatus <shift_id> <status>",
		Short: "Move a shift to a new status",
		Long:  "Valid statuses: draft, published, assigned, in_progress, completed, cancelled. Completed and cancelled are terminal.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shift, err := services.ChangeShiftStatus(app.Ctx, app.Store, app.Logger,
				args[0], model.ShiftStatus(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("Shift %s is now %s\n", shift.ID, shift.Status)
			return nil
		},
	}
}

// DeleteShiftCmd creates the deleteShift command
func DeleteShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteShift <shift_id>",
		Short: "Delete a shift, keeping it as cancelled history if staff were ever assigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.DeleteShift(app.Ctx, app.Store, app.Logger, args[0])
			if err != nil {
				return err
			}

			if result.HardDeleted {
				fmt.Printf("Deleted shift %s\n", result.ShiftID)
			} else {
				fmt.Printf("Deactivated shift %s (assignment history preserved)\n", result.ShiftID)
			}
			return nil
		},
	}
}
