package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"market-client/internal/delivery/render"
	"market-client/internal/domain"
	"market-client/internal/gateway"
)

func CategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Browse and manage categories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				categories, err := app.Gateways.Categories.GetAllCategories(cmd.Context())
				if err != nil {
					return err
				}
				return render.CategoryList(cmd.OutOrStdout(), categories)
			},
		},
		&cobra.Command{
			Use:   "get [id]",
			Short: "Show a category with its advertisements",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				view, err := app.categoryDetail().Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if err := render.CategoryList(out, []domain.Category{*view.Category}); err != nil {
					return err
				}
				fmt.Fprintln(out)
				return render.AdvertisementList(out, view.Ads, time.Now())
			},
		},
		categoryWriteCmd(app, "create", "Create a category (admin)", cobra.NoArgs),
		categoryWriteCmd(app, "update [id]", "Edit a category (admin)", cobra.ExactArgs(1)),
		&cobra.Command{
			Use:   "delete [id]",
			Short: "Delete a category (admin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireAdmin(cmd.Context())
				if err != nil {
					return err
				}
				if err := app.Gateways.Categories.DeleteCategory(cmd.Context(), s.Token, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Category %s deleted\n", args[0])
				return nil
			},
		},
	)

	return cmd
}

func categoryWriteCmd(app *App, use, short string, positional cobra.PositionalArgs) *cobra.Command {
	var (
		in    gateway.CategoryInput
		image string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireAdmin(cmd.Context())
			if err != nil {
				return err
			}
			file, closeFile, err := openFile(image)
			if err != nil {
				return err
			}
			defer closeFile()

			input := in
			input.Image = file

			if len(args) == 0 {
				if err := requiredFlag("name", input.Name); err != nil {
					return err
				}
				category, err := app.Gateways.Categories.CreateCategory(cmd.Context(), s.Token, input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Category %s created\n", category.ID)
				return nil
			}

			category, err := app.Gateways.Categories.UpdateCategory(cmd.Context(), s.Token, args[0], input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category %s updated\n", category.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "category name")
	cmd.Flags().StringSliceVar(&in.Subcategories, "subcategory", nil, "subcategory name, repeatable")
	cmd.Flags().StringSliceVar(&in.Features, "feature", nil, "feature name, repeatable")
	cmd.Flags().StringVar(&image, "image", "", "path of the category image")
	return cmd
}
