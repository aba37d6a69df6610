package service

import (
	"context"
	"time"

	"market-client/internal/domain"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
	"market-client/internal/session"
)

type Favourites struct {
	flow
	gw   gateway.FavouriteGateway
	page *Page[[]domain.Favourite]
}

func NewFavourites(gw gateway.FavouriteGateway, m *metrics.ServiceMetrics) *Favourites {
	return &Favourites{
		flow: newFlow(m),
		gw:   gw,
		page: NewPage[[]domain.Favourite](),
	}
}

func (f *Favourites) Page() *Page[[]domain.Favourite] {
	return f.page
}

func (f *Favourites) Contains(adID string) bool {
	return f.index(adID) >= 0
}

func (f *Favourites) Load(ctx context.Context, sess session.Session) error {
	ctx, span := f.tracer.Start(ctx, "Favourites.Load")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("Favourites.Load", status, time.Since(startTime).Seconds())
	}()

	if err := session.Require(sess); err != nil {
		status = "unauthenticated"
		return f.page.Fail(err)
	}

	err := f.page.Load(ctx, "Could not load favourites", func(ctx context.Context) ([]domain.Favourite, error) {
		return f.gw.GetAllFavourites(ctx, sess.Token, sess.UserID())
	})
	if err != nil {
		status = "error"
		span.RecordError(err)
	}
	return err
}

// Toggle adds the advertisement when it is not a favourite yet and removes it
// otherwise. It reports whether the ad is a favourite afterwards.
func (f *Favourites) Toggle(ctx context.Context, sess session.Session, adID string) (bool, error) {
	ctx, span := f.tracer.Start(ctx, "Favourites.Toggle")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("Favourites.Toggle", status, time.Since(startTime).Seconds())
	}()

	if err := session.Require(sess); err != nil {
		status = "unauthenticated"
		return false, f.page.Fail(err)
	}

	if i := f.index(adID); i >= 0 {
		if err := f.gw.DeleteFavourite(ctx, sess.Token, adID); err != nil {
			status = "error"
			span.RecordError(err)
			f.page.Error = gateway.Message(err, "Could not remove the favourite")
			return true, err
		}
		f.page.Data = append(f.page.Data[:i:i], f.page.Data[i+1:]...)
		f.page.Error = ""
		return false, nil
	}

	fav, err := f.gw.CreateFavourite(ctx, sess.Token, adID)
	if err != nil {
		status = "error"
		span.RecordError(err)
		f.page.Error = gateway.Message(err, "Could not add the favourite")
		return false, err
	}
	if fav.AdvertisementID == "" {
		fav.AdvertisementID = adID
	}
	f.page.Data = append(f.page.Data, *fav)
	f.page.Error = ""
	return true, nil
}

func (f *Favourites) index(adID string) int {
	for i, fav := range f.page.Data {
		if fav.AdvertisementID == adID {
			return i
		}
	}
	return -1
}
