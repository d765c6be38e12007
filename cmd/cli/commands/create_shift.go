package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/careops/careshift/pkg/core/services"
)

// CreateShiftCmd creates the createShift command
func CreateShiftCmd(app *AppContext) *cobra.Command {
	var (
		shiftTypeID  string
		recurring    string
		breakMinutes int
		location     string
		notes        string
		instructions string
	)

	cmd := &cobra.Command{
		Use:   "createShift <client_id> <care_service_id> <start> <end>",
		Short: "Create a new draft shift",
		Long:  "Create a new shift in draft status. Times use the 2006-01-02T15:04 format in the configured timezone.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.Cfg.Location()
			start, err := time.ParseInLocation("2006-01-02T15:04", args[2], loc)
			if err != nil {
				return fmt.Errorf("invalid start time: %w", err)
			}
			end, err := time.ParseInLocation("2006-01-02T15:04", args[3], loc)
			if err != nil {
				return fmt.Errorf("invalid end time: %w", err)
			}

			input := services.CreateShiftInput{
				CompanyID:      app.Cfg.CompanyID,
				ClientID:       args[0],
				CareServiceID:  args[1],
				ShiftTypeID:    shiftTypeID,
				StartTime:      start,
				EndTime:        end,
				IsRecurring:    recurring != "",
				RecurrenceRule: recurring,
				BreakMinutes:   breakMinutes,
				Location:       location,
				Notes:          notes,
				Instructions:   instructions,
			}

			shift, err := services.CreateShift(app.Ctx, app.Store, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("Created shift %s (%s, %s - %s)\n",
				shift.ID, shift.Status,
				shift.StartTime.Format("2006-01-02 15:04"),
				shift.EndTime.Format("15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&shiftTypeID, "shift-type", "", "Shift type id for default pricing/duration")
	cmd.Flags().StringVar(&recurring, "recurring", "", "Recurrence rule: weekly or monthly")
	cmd.Flags().IntVar(&breakMinutes, "break", 0, "Break minutes")
	cmd.Flags().StringVar(&location, "location", "", "Shift location")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Care instructions")

	return cmd
}
