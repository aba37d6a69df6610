package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

func SettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change site settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show site settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				settings, err := app.Gateways.Settings.GetSettings(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logo: %s\n", orDefault(settings.Logo, "No image available"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "logo [file]",
			Short: "Upload a new site logo (admin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireAdmin(cmd.Context())
				if err != nil {
					return err
				}
				logo, closeLogo, err := openFile(args[0])
				if err != nil {
					return err
				}
				defer closeLogo()

				settings, err := app.Gateways.Settings.UploadLogo(cmd.Context(), s.Token, *logo)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logo updated: %s\n", settings.Logo)
				return nil
			},
		},
	)

	return cmd
}
