package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-client/internal/domain"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/store"
	"market-client/internal/session"
)

func TestSearchPicksOperation(t *testing.T) {
	low := decimal.NewFromInt(10)
	high := decimal.NewFromInt(100)

	tests := []struct {
		name   string
		filter gateway.AdvertisementFilter
		want   string
	}{
		{"empty lists all", gateway.AdvertisementFilter{}, "GetAllAdvertisements"},
		{"blank dims list all", gateway.AdvertisementFilter{Location: "  ", Keyword: " "}, "GetAllAdvertisements"},
		{"keyword only searches", gateway.AdvertisementFilter{Keyword: "bike"}, "SearchAdvertisements"},
		{"keyword and category filters", gateway.AdvertisementFilter{Keyword: "bike", Category: "c1"}, "FilterAdvertisements"},
		{"price range filters", gateway.AdvertisementFilter{MinPrice: &low, MaxPrice: &high}, "FilterAdvertisements"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ads := &fakeAds{ads: []domain.Advertisement{{ID: "a1"}}}
			s := NewSearch(ads, testMetrics(t))

			got, err := s.Run(context.Background(), tt.filter)
			require.NoError(t, err)

			assert.Len(t, got, 1)
			assert.Equal(t, 1, ads.count(tt.want))
			assert.Equal(t, 1, ads.total())
			assert.Equal(t, StatusSuccess, s.Page().Status)
		})
	}
}

func TestSearchKeepsPriorDataOnFailure(t *testing.T) {
	ads := &fakeAds{ads: []domain.Advertisement{{ID: "a1"}, {ID: "a2"}}}
	s := NewSearch(ads, testMetrics(t))

	_, err := s.Run(context.Background(), gateway.AdvertisementFilter{})
	require.NoError(t, err)

	ads.err = &gateway.TransportError{Operation: "FilterAdvertisements", Err: errors.New("connection refused")}
	_, err = s.Run(context.Background(), gateway.AdvertisementFilter{Location: "Riga"})
	require.Error(t, err)

	page := s.Page()
	assert.Equal(t, StatusFailure, page.Status)
	assert.Equal(t, "Could not load advertisements", page.Error)
	assert.Len(t, page.Data, 2)
}

func TestSearchRejectsInvertedPriceRange(t *testing.T) {
	low := decimal.NewFromInt(10)
	high := decimal.NewFromInt(100)
	ads := &fakeAds{}
	s := NewSearch(ads, testMetrics(t))

	_, err := s.Run(context.Background(), gateway.AdvertisementFilter{MinPrice: &high, MaxPrice: &low})

	assert.ErrorIs(t, err, ErrInvalidPriceRange)
	assert.Equal(t, 0, ads.total())
}

func TestCompareListLimitsAndRemoval(t *testing.T) {
	ctx := context.Background()
	gw := &fakeCompares{}
	c := NewCompareList(gw, testMetrics(t))

	require.NoError(t, c.Add(ctx, loggedIn, "a1"))
	assert.ErrorIs(t, c.Add(ctx, loggedIn, "a1"), ErrAlreadyCompared)
	require.NoError(t, c.Add(ctx, loggedIn, "a2"))
	assert.ErrorIs(t, c.Add(ctx, loggedIn, "a3"), ErrCompareFull)
	assert.Equal(t, 2, gw.count("CreateCompare"))

	require.NoError(t, c.Remove(ctx, loggedIn, "a1"))
	assert.Equal(t, "u1", gw.deletedUserID)
	assert.Equal(t, "a1", gw.deletedAdID)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "a2", entries[0].AdvertisementID)
}

func TestCompareRemoveFailureKeepsEntries(t *testing.T) {
	ctx := context.Background()
	gw := &fakeCompares{entries: []domain.CompareEntry{{AdvertisementID: "a1"}, {AdvertisementID: "a2"}}}
	c := NewCompareList(gw, testMetrics(t))
	require.NoError(t, c.Load(ctx, loggedIn))

	gw.err = &gateway.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	require.Error(t, c.Remove(ctx, loggedIn, "a1"))

	assert.Len(t, c.Entries(), 2)
	assert.Equal(t, "boom", c.Page().Error)
}

func TestCompareRequiresLogin(t *testing.T) {
	gw := &fakeCompares{}
	c := NewCompareList(gw, testMetrics(t))

	assert.ErrorIs(t, c.Load(context.Background(), session.Session{}), session.ErrNotLoggedIn)
	assert.ErrorIs(t, c.Add(context.Background(), session.Session{}, "a1"), session.ErrNotLoggedIn)
	assert.Equal(t, 0, gw.total())
}

func TestFavouritesToggle(t *testing.T) {
	ctx := context.Background()
	gw := &fakeFavourites{favourites: []domain.Favourite{{AdvertisementID: "a1"}}}
	f := NewFavourites(gw, testMetrics(t))
	require.NoError(t, f.Load(ctx, loggedIn))

	added, err := f.Toggle(ctx, loggedIn, "a2")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, f.Contains("a2"))

	added, err = f.Toggle(ctx, loggedIn, "a1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, f.Contains("a1"))

	assert.Equal(t, 1, gw.count("CreateFavourite"))
	assert.Equal(t, 1, gw.count("DeleteFavourite"))
}

func TestCategoryDetailFanOut(t *testing.T) {
	categories := &fakeCategories{category: &domain.Category{ID: "c1", Name: "Bikes"}}
	ads := &fakeAds{ads: []domain.Advertisement{{ID: "a1"}}}
	d := NewCategoryDetail(categories, ads, testMetrics(t))

	view, err := d.Load(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "Bikes", view.Category.Name)
	assert.Len(t, view.Ads, 1)
	assert.Equal(t, "c1", ads.lastArg)
	assert.Equal(t, StatusSuccess, d.Page().Status)
}

func TestCategoryDetailJoinsBeforeUpdating(t *testing.T) {
	categories := &fakeCategories{category: &domain.Category{ID: "c1", Name: "Bikes"}}
	ads := &fakeAds{ads: []domain.Advertisement{{ID: "a1"}}}
	d := NewCategoryDetail(categories, ads, testMetrics(t))
	_, err := d.Load(context.Background(), "c1")
	require.NoError(t, err)

	categories.category = &domain.Category{ID: "c2", Name: "Cars"}
	ads.err = &gateway.APIError{StatusCode: http.StatusNotFound, Message: "Category not found"}

	view, err := d.Load(context.Background(), "c2")
	require.Error(t, err)

	assert.Equal(t, "Bikes", view.Category.Name)
	assert.Equal(t, "Category not found", d.Page().Error)
}

func TestAuthLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	auth := &fakeAuth{response: &gateway.AuthResponse{Token: token, User: domain.User{ID: "u1", Role: domain.RoleAdmin}}}
	st := store.NewMemoryStore()
	a := NewAuth(auth, st, testMetrics(t))

	s, err := a.Login(ctx, "ann@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, s.IsAdmin())

	loaded, err := session.Load(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, token, loaded.Token)

	require.NoError(t, a.Logout(ctx))
	loaded, err = session.Load(ctx, st)
	require.NoError(t, err)
	assert.False(t, loaded.IsLoggedIn())
}

func TestAuthValidation(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{}
	a := NewAuth(auth, store.NewMemoryStore(), testMetrics(t))

	_, err := a.Login(ctx, "bad", "pw")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = a.Login(ctx, "ann@example.com", "")
	assert.ErrorIs(t, err, ErrEmptyPassword)
	_, err = a.Register(ctx, gateway.RegisterInput{Email: "ann@example.com", Password: "one"}, "two")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	assert.Equal(t, 0, auth.total())
}
