package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"market-client/internal/delivery/render"
	"market-client/internal/gateway"
	"market-client/internal/session"
)

func UsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Show and manage user profiles",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get [id]",
			Short: "Show a profile, your own when no id is given",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireSession(cmd.Context())
				if err != nil {
					return err
				}
				id := s.UserID()
				if len(args) == 1 {
					id = args[0]
				}
				if id == "" {
					return errUnknownUser
				}
				user, err := app.Gateways.Users.GetUser(cmd.Context(), s.Token, id)
				if err != nil {
					return err
				}
				return render.UserCard(cmd.OutOrStdout(), user)
			},
		},
		usersUpdateCmd(app),
		&cobra.Command{
			Use:   "delete [id]",
			Short: "Delete an account (owner or admin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.Session(cmd.Context())
				if err != nil {
					return err
				}
				if err := session.RequireOwnerOrAdmin(s, args[0]); err != nil {
					return err
				}
				if err := app.Gateways.Users.DeleteUser(cmd.Context(), s.Token, args[0]); err != nil {
					return err
				}
				if s.Owns(args[0]) {
					if err := session.Clear(cmd.Context(), app.Store); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User %s deleted\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all users (admin)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireAdmin(cmd.Context())
				if err != nil {
					return err
				}
				users, err := app.Gateways.Users.GetAllUsers(cmd.Context(), s.Token)
				if err != nil {
					return err
				}
				return render.UserList(cmd.OutOrStdout(), users)
			},
		},
	)

	return cmd
}

func usersUpdateCmd(app *App) *cobra.Command {
	var (
		in                       gateway.UserInput
		profileImage, coverImage string
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Edit a profile (owner or admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Session(cmd.Context())
			if err != nil {
				return err
			}
			if err := session.RequireOwnerOrAdmin(s, args[0]); err != nil {
				return err
			}

			profile, closeProfile, err := openFile(profileImage)
			if err != nil {
				return err
			}
			defer closeProfile()
			cover, closeCover, err := openFile(coverImage)
			if err != nil {
				return err
			}
			defer closeCover()

			input := in
			input.ProfileImage = profile
			input.CoverImage = cover

			user, err := app.Gateways.Users.UpdateUser(cmd.Context(), s.Token, args[0], input)
			if err != nil {
				return err
			}
			if s.Owns(user.ID) {
				s.User = user
				if err := session.Save(cmd.Context(), app.Store, s); err != nil {
					return err
				}
			}
			return render.UserCard(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Username, "username", "", "username")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&profileImage, "profile-image", "", "path of a profile picture")
	cmd.Flags().StringVar(&coverImage, "cover-image", "", "path of a cover picture")
	return cmd
}
