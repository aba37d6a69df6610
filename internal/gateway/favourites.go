package gateway

import (
	"context"
	"net/http"

	"market-client/internal/domain"
)

type FavouriteGateway interface {
	GetAllFavourites(ctx context.Context, token, userID string) ([]domain.Favourite, error)
	CreateFavourite(ctx context.Context, token, adID string) (*domain.Favourite, error)
	DeleteFavourite(ctx context.Context, token, adID string) error
}

type favouriteGateway struct {
	client *Client
}

func NewFavouriteGateway(client *Client) FavouriteGateway {
	return &favouriteGateway{client: client}
}

func (g *favouriteGateway) GetAllFavourites(ctx context.Context, token, userID string) ([]domain.Favourite, error) {
	if userID == "" {
		return nil, ErrMissingParameter
	}
	var favourites []domain.Favourite
	err := g.client.do(ctx, call{
		operation: "GetAllFavourites",
		method:    http.MethodGet,
		path:      route("favourites", userID),
		token:     token,
		protected: true,
	}, &favourites)
	return favourites, err
}

func (g *favouriteGateway) CreateFavourite(ctx context.Context, token, adID string) (*domain.Favourite, error) {
	if adID == "" {
		return nil, ErrMissingParameter
	}
	var favourite domain.Favourite
	if err := g.client.do(ctx, call{
		operation: "CreateFavourite",
		method:    http.MethodPost,
		path:      route("favourites"),
		token:     token,
		protected: true,
		json:      map[string]string{"advertisementId": adID},
	}, &favourite); err != nil {
		return nil, err
	}
	return &favourite, nil
}

func (g *favouriteGateway) DeleteFavourite(ctx context.Context, token, adID string) error {
	if adID == "" {
		return ErrMissingParameter
	}
	return g.client.do(ctx, call{
		operation: "DeleteFavourite",
		method:    http.MethodDelete,
		path:      route("favourites", adID),
		token:     token,
		protected: true,
	}, nil)
}
