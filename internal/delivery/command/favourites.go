package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

func FavouritesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favourites",
		Short: "Manage your favourite advertisements",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your favourites",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireUser(cmd.Context())
				if err != nil {
					return err
				}
				f := app.favourites()
				if err := f.Load(cmd.Context(), s); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(f.Page().Data) == 0 {
					fmt.Fprintln(out, "No favourites yet.")
					return nil
				}
				for _, fav := range f.Page().Data {
					title := "-"
					if fav.Advertisement != nil {
						title = fav.Advertisement.Title
					}
					fmt.Fprintf(out, "%s\t%s\n", fav.AdvertisementID, title)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle [advertisement-id]",
			Short: "Add or remove a favourite",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireUser(cmd.Context())
				if err != nil {
					return err
				}
				f := app.favourites()
				if err := f.Load(cmd.Context(), s); err != nil {
					return err
				}
				added, err := f.Toggle(cmd.Context(), s, args[0])
				if err != nil {
					return err
				}
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favourites\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favourites\n", args[0])
				}
				return nil
			},
		},
	)

	return cmd
}
