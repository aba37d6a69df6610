package command

import (
	"github.com/spf13/cobra"

	"market-client/internal/delivery/render"
)

func OrdersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Show boost orders",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get [id]",
			Short: "Show one order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireSession(cmd.Context())
				if err != nil {
					return err
				}
				order, err := app.Gateways.Orders.GetOrder(cmd.Context(), s.Token, args[0])
				if err != nil {
					return err
				}
				return render.OrderCard(cmd.OutOrStdout(), order)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all orders (admin)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireAdmin(cmd.Context())
				if err != nil {
					return err
				}
				orders, err := app.Gateways.Orders.GetAllOrders(cmd.Context(), s.Token)
				if err != nil {
					return err
				}
				return render.OrderList(cmd.OutOrStdout(), orders)
			},
		},
		&cobra.Command{
			Use:   "mine",
			Short: "List your orders",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireUser(cmd.Context())
				if err != nil {
					return err
				}
				orders, err := app.Gateways.Orders.GetOrdersByUser(cmd.Context(), s.Token, s.UserID())
				if err != nil {
					return err
				}
				return render.OrderList(cmd.OutOrStdout(), orders)
			},
		},
	)

	return cmd
}
