package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"market-client/internal/delivery/render"
	"market-client/internal/domain"
	"market-client/internal/service"
)

func CheckoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Buy a boost package for an advertisement",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "packages",
			Short: "List boost packages",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return render.PackageList(cmd.OutOrStdout(), app.Packages)
			},
		},
		checkoutSubmitCmd(app),
		checkoutPayCmd(app),
	)

	return cmd
}

func checkoutSubmitCmd(app *App) *cobra.Command {
	var (
		packageID string
		billing   domain.BillingDetails
	)

	cmd := &cobra.Command{
		Use:   "submit [advertisement-id]",
		Short: "Create the order with your billing details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Session(cmd.Context())
			if err != nil {
				return err
			}

			f := app.checkout()
			resp, err := f.Submit(cmd.Context(), s, args[0], packageID, billing)
			if err != nil {
				return err
			}
			pkg := f.State().Package
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s created for %s (%s). Run \"checkout pay\" to complete the payment.\n",
				resp.OrderID, pkg.Name, pkg.Price.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&packageID, "package", "", "boost package id")
	cmd.Flags().StringVar(&billing.FullName, "full-name", "", "billing name")
	cmd.Flags().StringVar(&billing.Email, "email", "", "billing email")
	cmd.Flags().StringVar(&billing.Phone, "phone", "", "billing phone")
	cmd.Flags().StringVar(&billing.Address, "address", "", "billing address")
	cmd.Flags().StringVar(&billing.City, "city", "", "billing city")
	cmd.Flags().StringVar(&billing.Country, "country", "", "billing country")
	return cmd
}

func checkoutPayCmd(app *App) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Confirm the payment of the pending order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Session(cmd.Context())
			if err != nil {
				return err
			}

			f := app.checkout()
			resumed, err := f.Resume(cmd.Context())
			if err != nil {
				return err
			}
			if !resumed {
				return service.ErrNoCheckout
			}

			order, err := f.Pay(cmd.Context(), s, method)
			if err != nil {
				return err
			}
			return render.OrderCard(cmd.OutOrStdout(), order)
		},
	}

	cmd.Flags().StringVar(&method, "method", "card", "payment method")
	return cmd
}
