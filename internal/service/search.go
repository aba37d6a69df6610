package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"market-client/internal/domain"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
)

// Search backs the listings page. It picks the narrowest backend operation
// for the dimensions that are set.
type Search struct {
	flow
	ads  gateway.AdvertisementGateway
	page *Page[[]domain.Advertisement]
}

func NewSearch(ads gateway.AdvertisementGateway, m *metrics.ServiceMetrics) *Search {
	return &Search{
		flow: newFlow(m),
		ads:  ads,
		page: NewPage[[]domain.Advertisement](),
	}
}

func (s *Search) Page() *Page[[]domain.Advertisement] {
	return s.page
}

func (s *Search) Run(ctx context.Context, filter gateway.AdvertisementFilter) ([]domain.Advertisement, error) {
	ctx, span := s.tracer.Start(ctx, "Search.Run")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		s.metrics.Observe("Search.Run", status, time.Since(startTime).Seconds())
	}()

	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		status = "invalid"
		return nil, s.page.Fail(ErrInvalidPriceRange)
	}

	mode := searchMode(filter)
	span.SetAttributes(attribute.String("search.mode", mode))

	err := s.page.Load(ctx, "Could not load advertisements", func(ctx context.Context) ([]domain.Advertisement, error) {
		switch mode {
		case "all":
			return s.ads.GetAllAdvertisements(ctx)
		case "keyword":
			return s.ads.SearchAdvertisements(ctx, filter.Keyword)
		default:
			return s.ads.FilterAdvertisements(ctx, filter)
		}
	})
	if err != nil {
		status = "error"
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(s.page.Data)))
	return s.page.Data, nil
}

func searchMode(filter gateway.AdvertisementFilter) string {
	values := filter.Values()
	switch {
	case len(values) == 0:
		return "all"
	case len(values) == 1 && values.Get("keyword") != "":
		return "keyword"
	default:
		return "filter"
	}
}
