package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brunovidal/funnel/internal/cli/formatter"
	"github.com/brunovidal/funnel/internal/domain"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}

	cmd.AddCommand(newClientListCmd(app), newClientAddCmd(app))
	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := app.Clients.ListByTenant(context.Background(), app.TenantID)
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Println("No clients found.")
				return nil
			}

			headers := []string{"ID", "NAME", "COMPANY", "EMAIL", "PHONE"}
			rows := make([][]string, 0, len(clients))
			for _, c := range clients {
				rows = append(rows, []string{
					formatter.TruncID(c.ID),
					c.Name,
					c.Company,
					formatter.Dim(c.Email),
					formatter.Dim(c.Phone),
				})
			}
			fmt.Print(formatter.RenderBox("Clients", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newClientAddCmd(app *App) *cobra.Command {
	var company, email, phone string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Client{
				TenantID: app.TenantID,
				Name:     args[0],
				Company:  company,
				Email:    email,
				Phone:    phone,
			}
			if err := app.Clients.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Printf("Added client %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")

	return cmd
}
