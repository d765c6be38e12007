package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/careops/careshift/pkg/core/calendar"
	"github.com/careops/careshift/pkg/core/model"
	"github.com/careops/careshift/pkg/core/services"
	"github.com/careops/careshift/pkg/db"
)

// WeekCmd creates the week command, rendering the staff-by-day grid for the
// ISO week containing the anchor date (today when omitted)
func WeekCmd(app *AppContext) *cobra.Command {
	var (
		status      string
		clientID    string
		shiftTypeID string
		search      string
	)

	cmd := &cobra.Command{
		Use:   "week [anchor_date]",
		Short: "Show the weekly scheduling grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := parseAnchor(args, app.Cfg.Location())
			if err != nil {
				return err
			}

			filters := calendar.Filters{
				Search:      search,
				Status:      status,
				ClientID:    clientID,
				ShiftTypeID: shiftTypeID,
			}

			staff, err := services.ListActiveStaff(app.Ctx, app.Store, app.Logger, app.Cfg.CompanyID)
			if err != nil {
				return err
			}

			pool, err := loadWeekPool(app, anchor)
			if err != nil {
				return err
			}

			grid, err := calendar.BuildGrid(anchor, staff, pool, filters)
			if err != nil {
				return err
			}

			renderGrid(grid, pool.Clients)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", calendar.FilterAll, "Shift status filter")
	cmd.Flags().StringVar(&clientID, "client", calendar.FilterAll, "Client id filter")
	cmd.Flags().StringVar(&shiftTypeID, "shift-type", calendar.FilterAll, "Shift type id filter")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search over client and care service names")

	return cmd
}

// VacantCmd creates the vacant command, listing the week's shifts that have
// no active assignment
func VacantCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacant [anchor_date]",
		Short: "List the week's vacant shifts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := parseAnchor(args, app.Cfg.Location())
			if err != nil {
				return err
			}

			pool, err := loadWeekPool(app, anchor)
			if err != nil {
				return err
			}

			entries, err := calendar.Vacant(anchor, pool, calendar.Filters{})
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No vacant shifts this week")
				return nil
			}

			clientNames := make(map[string]string, len(pool.Clients))
			for _, c := range pool.Clients {
				clientNames[c.ID] = c.FullName()
			}

			for _, entry := range entries {
				fmt.Printf("%s  %s-%s  %s  (%s, shift %s)\n",
					entry.Date.Format("Mon 2006-01-02"),
					entry.Shift.StartTime.Format("15:04"),
					entry.Shift.EndTime.Format("15:04"),
					clientNames[entry.Shift.ClientID],
					entry.Shift.Status,
					entry.Shift.ID)
			}
			return nil
		},
	}
	return cmd
}

func parseAnchor(args []string, loc *time.Location) (time.Time, error) {
	if len(args) == 0 {
		return time.Now().In(loc), nil
	}
	anchor, err := time.ParseInLocation("2006-01-02", args[0], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid anchor date %q: %w", args[0], err)
	}
	return anchor, nil
}

// loadWeekPool fetches every entity the aggregator needs for the anchor's
// week. Shifts starting after the week cannot occur in it, so the pool is
// bounded above; recurring shifts from earlier weeks stay in.
func loadWeekPool(app *AppContext, anchor time.Time) (calendar.Pool, error) {
	weekEnd := calendar.WeekOf(anchor).AddDate(0, 0, 7)

	shifts, err := app.Store.ListShifts(app.Ctx, db.ShiftFilters{
		CompanyID: app.Cfg.CompanyID,
		To:        weekEnd,
	})
	if err != nil {
		return calendar.Pool{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	var assignments []model.ShiftStaffAssignment
	for _, shift := range shifts {
		shiftAssignments, err := app.Store.ListAssignmentsByShift(app.Ctx, shift.ID)
		if err != nil {
			return calendar.Pool{}, fmt.Errorf("failed to list assignments: %w", err)
		}
		assignments = append(assignments, shiftAssignments...)
	}

	clients, err := app.Store.ListClients(app.Ctx, app.Cfg.CompanyID)
	if err != nil {
		return calendar.Pool{}, fmt.Errorf("failed to list clients: %w", err)
	}

	careServices, err := app.Store.ListCareServices(app.Ctx, app.Cfg.CompanyID)
	if err != nil {
		return calendar.Pool{}, fmt.Errorf("failed to list care services: %w", err)
	}

	return calendar.Pool{
		Shifts:       shifts,
		Assignments:  assignments,
		Clients:      clients,
		CareServices: careServices,
	}, nil
}

func renderGrid(grid *calendar.Grid, clients []model.Client) {
	clientNames := make(map[string]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.FullName()
	}

	fmt.Printf("Week of %s\n\n", grid.WeekStart.Format("Monday 2 January 2006"))

	for _, member := range grid.Staff {
		row := grid.Cells[member.ID]
		fmt.Println(member.FullName())
		empty := true
		for day, cell := range row {
			for _, entry := range cell {
				empty = false
				fmt.Printf("  %s  %s-%s  %s  (%s)\n",
					grid.Days[day].Format("Mon"),
					entry.Shift.StartTime.Format("15:04"),
					entry.Shift.EndTime.Format("15:04"),
					clientNames[entry.Shift.ClientID],
					entry.Shift.Status)
			}
		}
		if empty {
			fmt.Println("  -")
		}
		fmt.Println(strings.Repeat("-", 40))
	}
}
