package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"market-client/internal/delivery/render"
	"market-client/internal/service"
	"market-client/internal/session"
)

func CompareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two advertisements side by side",
	}

	// load returns the comparison list of the logged in user.
	load := func(cmd *cobra.Command) (*service.CompareList, session.Session, error) {
		s, err := app.requireUser(cmd.Context())
		if err != nil {
			return nil, s, err
		}
		c := app.compareList()
		return c, s, c.Load(cmd.Context(), s)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List compared advertisements",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, _, err := load(cmd)
				if err != nil {
					return err
				}
				for _, e := range c.Entries() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.AdvertisementID, e.Title)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "table",
			Short: "Show the comparison table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, _, err := load(cmd)
				if err != nil {
					return err
				}
				return render.CompareTable(cmd.OutOrStdout(), c.Entries())
			},
		},
		&cobra.Command{
			Use:   "add [advertisement-id]",
			Short: "Add an advertisement to the comparison",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, s, err := load(cmd)
				if err != nil {
					return err
				}
				if err := c.Add(cmd.Context(), s, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Comparing %d of %d\n", len(c.Entries()), service.MaxCompareEntries)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove [advertisement-id]",
			Short: "Remove an advertisement from the comparison",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, s, err := load(cmd)
				if err != nil {
					return err
				}
				if err := c.Remove(cmd.Context(), s, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the comparison\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
