package command

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"market-client/internal/delivery/render"
	"market-client/internal/gateway"
	"market-client/internal/session"
)

func AdsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ads",
		Short: "Browse and manage advertisements",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all advertisements",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ads, err := app.search().Run(cmd.Context(), gateway.AdvertisementFilter{})
				if err != nil {
					return err
				}
				return render.AdvertisementList(cmd.OutOrStdout(), ads, time.Now())
			},
		},
		&cobra.Command{
			Use:   "get [id]",
			Short: "Show one advertisement",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ad, err := app.Gateways.Advertisements.GetAdvertisement(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render.AdvertisementCard(cmd.OutOrStdout(), ad, time.Now())
			},
		},
		&cobra.Command{
			Use:   "mine",
			Short: "List your own advertisements",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireUser(cmd.Context())
				if err != nil {
					return err
				}
				ads, err := app.Gateways.Advertisements.GetAdvertisementsByUser(cmd.Context(), s.Token, s.UserID())
				if err != nil {
					return err
				}
				return render.AdvertisementList(cmd.OutOrStdout(), ads, time.Now())
			},
		},
		&cobra.Command{
			Use:   "category [id]",
			Short: "List the advertisements of a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ads, err := app.Gateways.Advertisements.GetAdvertisementsByCategory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render.AdvertisementList(cmd.OutOrStdout(), ads, time.Now())
			},
		},
		&cobra.Command{
			Use:   "search [keyword]",
			Short: "Search advertisements by keyword",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ads, err := app.search().Run(cmd.Context(), gateway.AdvertisementFilter{Keyword: args[0]})
				if err != nil {
					return err
				}
				return render.AdvertisementList(cmd.OutOrStdout(), ads, time.Now())
			},
		},
		adsFilterCmd(app),
		adsCreateCmd(app),
		adsUpdateCmd(app),
		&cobra.Command{
			Use:   "delete [id]",
			Short: "Delete an advertisement",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireSession(cmd.Context())
				if err != nil {
					return err
				}
				if err := app.Gateways.Advertisements.DeleteAdvertisement(cmd.Context(), s.Token, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Advertisement %s deleted\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "renewable",
			Short: "List advertisements whose boost can be renewed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.requireSession(cmd.Context())
				if err != nil {
					return err
				}
				ads, err := app.Gateways.Advertisements.GetRenewableAdvertisements(cmd.Context(), s.Token)
				if err != nil {
					return err
				}
				return render.AdvertisementList(cmd.OutOrStdout(), ads, time.Now())
			},
		},
	)

	return cmd
}

func adsFilterCmd(app *App) *cobra.Command {
	var (
		filter             gateway.AdvertisementFilter
		minPrice, maxPrice string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter advertisements by category, location, price and keyword",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if filter.MinPrice, err = parsePrice("min-price", minPrice); err != nil {
				return err
			}
			if filter.MaxPrice, err = parsePrice("max-price", maxPrice); err != nil {
				return err
			}
			ads, err := app.search().Run(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return render.AdvertisementList(cmd.OutOrStdout(), ads, time.Now())
		},
	}

	cmd.Flags().StringVar(&filter.Category, "category", "", "category id")
	cmd.Flags().StringVar(&filter.Location, "location", "", "location")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "lowest price")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "highest price")
	cmd.Flags().StringVar(&filter.Keyword, "keyword", "", "keyword")
	return cmd
}

// adFlags are shared by create and update.
type adFlags struct {
	in            gateway.AdvertisementInput
	price         string
	featuredImage string
	images        []string
}

func (f *adFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.in.Title, "title", "", "title")
	cmd.Flags().StringVar(&f.in.Description, "description", "", "description, HTML allowed")
	cmd.Flags().StringVar(&f.price, "price", "", "price")
	cmd.Flags().StringVar(&f.in.Location, "location", "", "location")
	cmd.Flags().StringVar(&f.in.CategoryID, "category", "", "category id")
	cmd.Flags().StringVar(&f.in.SubcategoryID, "subcategory", "", "subcategory id")
	cmd.Flags().StringVar(&f.in.VideoURL, "video-url", "", "video link")
	cmd.Flags().StringSliceVar(&f.in.ExistingImages, "keep-image", nil, "already uploaded image to keep, repeatable")
	cmd.Flags().StringVar(&f.featuredImage, "featured-image", "", "path of the cover image")
	cmd.Flags().StringSliceVar(&f.images, "image", nil, "path of a gallery image, repeatable")
}

// input opens the image files. The returned func closes them.
func (f *adFlags) input() (gateway.AdvertisementInput, func(), error) {
	in := f.in
	var err error
	if in.Price, err = parsePrice("price", f.price); err != nil {
		return in, func() {}, err
	}

	featured, closeFeatured, err := openFile(f.featuredImage)
	if err != nil {
		return in, func() {}, err
	}
	images, closeImages, err := openFiles(f.images)
	if err != nil {
		closeFeatured()
		return in, func() {}, err
	}

	in.FeaturedImage = featured
	in.Images = images
	return in, func() { closeFeatured(); closeImages() }, nil
}

func adsCreateCmd(app *App) *cobra.Command {
	var flags adFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new advertisement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			in, closeFiles, err := flags.input()
			if err != nil {
				return err
			}
			defer closeFiles()

			ad, err := app.Gateways.Advertisements.CreateAdvertisement(cmd.Context(), s.Token, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Advertisement %s created\n", ad.ID)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func adsUpdateCmd(app *App) *cobra.Command {
	var flags adFlags

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Edit one of your advertisements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession(cmd.Context())
			if err != nil {
				return err
			}

			current, err := app.Gateways.Advertisements.GetAdvertisement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := session.RequireOwnerOrAdmin(s, current.UserID); err != nil {
				return err
			}

			in, closeFiles, err := flags.input()
			if err != nil {
				return err
			}
			defer closeFiles()

			ad, err := app.Gateways.Advertisements.UpdateAdvertisement(cmd.Context(), s.Token, args[0], in)
			if err != nil {
				return err
			}
			return render.AdvertisementCard(cmd.OutOrStdout(), ad, time.Now())
		},
	}

	flags.register(cmd)
	return cmd
}

func parsePrice(flag, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %q is not a number", flag, value)
	}
	return &d, nil
}
