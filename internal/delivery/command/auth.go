package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"market-client/internal/delivery/render"
	"market-client/internal/gateway"
)

func LoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.auth().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", s.User.FullName())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func LogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.auth().Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func RegisterCmd(app *App) *cobra.Command {
	var (
		in           gateway.RegisterInput
		confirm      string
		profileImage string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			image, closeImage, err := openFile(profileImage)
			if err != nil {
				return err
			}
			defer closeImage()
			in.ProfileImage = image

			s, err := app.auth().Register(cmd.Context(), in, confirm)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", s.User.FullName())
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Username, "username", "", "username")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.Password, "password", "", "password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password again")
	cmd.Flags().StringVar(&profileImage, "profile-image", "", "path of a profile picture")
	return cmd
}

func WhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := render.UserCard(out, s.User); err != nil {
				return err
			}
			if exp, ok := s.ExpiresAt(); ok {
				fmt.Fprintf(out, "  %-14s %s\n", "Session until:", exp.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func VerifyEmailCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-email",
		Short: "Verify an email address with a one-time code",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "send [email]",
			Short: "Send a verification code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f := app.emailVerification()
				if err := f.Restore(cmd.Context()); err != nil {
					return err
				}
				if err := f.Send(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Code sent to %s\n", f.State().Email)
				return nil
			},
		},
		&cobra.Command{
			Use:   "resend",
			Short: "Send a new code once the cooldown has passed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				f := app.emailVerification()
				if err := f.Restore(cmd.Context()); err != nil {
					return err
				}
				sent, err := f.Resend(cmd.Context())
				if err != nil {
					return err
				}
				if !sent {
					fmt.Fprintf(cmd.OutOrStdout(), "Please wait %s before requesting a new code\n", f.CooldownRemaining().Round(time.Second))
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "New code sent to %s\n", f.State().Email)
				return nil
			},
		},
		&cobra.Command{
			Use:   "confirm [code]",
			Short: "Confirm the 6-digit code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f := app.emailVerification()
				if err := f.Restore(cmd.Context()); err != nil {
					return err
				}
				if err := f.Confirm(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Email verified")
				return nil
			},
		},
	)

	return cmd
}

func PasswordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Reset a forgotten password",
	}

	var password, confirm string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Set the new password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := app.passwordReset()
			if err := f.Restore(cmd.Context()); err != nil {
				return err
			}
			if err := f.Reset(cmd.Context(), password, confirm); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed, you can log in now")
			return nil
		},
	}
	reset.Flags().StringVar(&password, "password", "", "new password")
	reset.Flags().StringVar(&confirm, "confirm", "", "new password again")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "forgot [email]",
			Short: "Email a reset code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f := app.passwordReset()
				if err := f.Restore(cmd.Context()); err != nil {
					return err
				}
				if err := f.RequestCode(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset code sent to %s\n", f.State().Email)
				return nil
			},
		},
		&cobra.Command{
			Use:   "verify [code]",
			Short: "Check the 6-digit reset code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f := app.passwordReset()
				if err := f.Restore(cmd.Context()); err != nil {
					return err
				}
				if err := f.VerifyCode(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Code accepted, choose a new password")
				return nil
			},
		},
		reset,
	)

	return cmd
}
