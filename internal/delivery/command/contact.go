package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"market-client/internal/delivery/render"
	"market-client/internal/gateway"
)

func ContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send and read contact messages",
	}

	var in gateway.ContactInput
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a message to the site team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Gateways.Contact.SendMessage(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), orDefault(resp.Message, "Message sent"))
			return nil
		},
	}
	send.Flags().StringVar(&in.Name, "name", "", "your name")
	send.Flags().StringVar(&in.Email, "email", "", "your email")
	send.Flags().StringVar(&in.Message, "message", "", "message text")

	cmd.AddCommand(
		send,
		&cobra.Command{
			Use:   "list",
			Short: "List received messages (admin)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireAdmin(cmd.Context())
				if err != nil {
					return err
				}
				messages, err := app.Gateways.Contact.GetAllMessages(cmd.Context(), s.Token)
				if err != nil {
					return err
				}
				return render.MessageList(cmd.OutOrStdout(), messages)
			},
		},
		&cobra.Command{
			Use:   "get [id]",
			Short: "Show a message (admin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireAdmin(cmd.Context())
				if err != nil {
					return err
				}
				m, err := app.Gateways.Contact.GetMessage(cmd.Context(), s.Token, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "From: %s <%s>\n\n%s\n", m.Name, m.Email, m.Message)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete [id]",
			Short: "Delete a message (admin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireAdmin(cmd.Context())
				if err != nil {
					return err
				}
				if err := app.Gateways.Contact.DeleteMessage(cmd.Context(), s.Token, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Message %s deleted\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
