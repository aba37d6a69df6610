package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"market-client/internal/domain"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
)

type CategoryView struct {
	Category *domain.Category
	Ads      []domain.Advertisement
}

// CategoryDetail loads a category together with its advertisements.
type CategoryDetail struct {
	flow
	categories gateway.CategoryGateway
	ads        gateway.AdvertisementGateway
	page       *Page[CategoryView]
}

func NewCategoryDetail(categories gateway.CategoryGateway, ads gateway.AdvertisementGateway, m *metrics.ServiceMetrics) *CategoryDetail {
	return &CategoryDetail{
		flow:       newFlow(m),
		categories: categories,
		ads:        ads,
		page:       NewPage[CategoryView](),
	}
}

func (d *CategoryDetail) Page() *Page[CategoryView] {
	return d.page
}

// Load fetches both resources concurrently. State changes only after both
// have answered.
func (d *CategoryDetail) Load(ctx context.Context, categoryID string) (CategoryView, error) {
	ctx, span := d.tracer.Start(ctx, "CategoryDetail.Load")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		d.metrics.Observe("CategoryDetail.Load", status, time.Since(startTime).Seconds())
	}()

	span.SetAttributes(attribute.String("category.id", categoryID))

	err := d.page.Load(ctx, "Could not load the category", func(ctx context.Context) (CategoryView, error) {
		var view CategoryView
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			category, err := d.categories.GetCategory(gctx, categoryID)
			if err != nil {
				return err
			}
			view.Category = category
			return nil
		})
		g.Go(func() error {
			ads, err := d.ads.GetAdvertisementsByCategory(gctx, categoryID)
			if err != nil {
				return err
			}
			view.Ads = ads
			return nil
		})

		if err := g.Wait(); err != nil {
			return CategoryView{}, err
		}
		return view, nil
	})
	if err != nil {
		status = "error"
		span.RecordError(err)
		return d.page.Data, err
	}
	return d.page.Data, nil
}
