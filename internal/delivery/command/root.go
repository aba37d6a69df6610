package command

import (
	"os"

	"github.com/spf13/cobra"

	"market-client/internal/gateway"
)

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "Command line client for the classifieds marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var token string
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("MARKETCTL_TOKEN"), "bearer token to use instead of the stored session")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cmd.SetContext(withToken(cmd.Context(), token))
	}

	root.AddCommand(
		LoginCmd(app),
		LogoutCmd(app),
		RegisterCmd(app),
		WhoamiCmd(app),
		VerifyEmailCmd(app),
		PasswordCmd(app),
		AdsCmd(app),
		CategoriesCmd(app),
		UsersCmd(app),
		FavouritesCmd(app),
		CompareCmd(app),
		OrdersCmd(app),
		CheckoutCmd(app),
		ContactCmd(app),
		SettingsCmd(app),
		ServeCmd(app),
	)

	return root
}

// ErrorMessage is what the user sees for a failed command: the backend
// message when there is one.
func ErrorMessage(err error) string {
	return gateway.Message(err, err.Error())
}
