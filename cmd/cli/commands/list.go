package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careops/careshift/pkg/core/services"
)

// ListStaffCmd creates the listStaff command
func ListStaffCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listStaff",
		Short: "List the company's active staff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, err := services.ListActiveStaff(app.Ctx, app.Store, app.Logger, app.Cfg.CompanyID)
			if err != nil {
				return err
			}

			for _, member := range staff {
				fmt.Printf("%s  %s  (%.2f/hr)\n", member.ID, member.FullName(), member.HourlyRate)
			}
			fmt.Printf("%d active staff\n", len(staff))
			return nil
		},
	}
}

// ListClientsCmd creates the listClients command
func ListClientsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listClients",
		Short: "List the company's active clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := services.ListActiveClients(app.Ctx, app.Store, app.Logger, app.Cfg.CompanyID)
			if err != nil {
				return err
			}

			for _, client := range clients {
				fmt.Printf("%s  %s\n", client.ID, client.FullName())
			}
			fmt.Printf("%d active clients\n", len(clients))
			return nil
		},
	}
}
