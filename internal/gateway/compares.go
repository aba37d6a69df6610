package gateway

import (
	"context"
	"net/http"

	"market-client/internal/domain"
)

type CompareGateway interface {
	GetAllCompares(ctx context.Context, token, userID string) ([]domain.CompareEntry, error)
	CreateCompare(ctx context.Context, token, userID, adID string) (*domain.CompareEntry, error)
	DeleteCompare(ctx context.Context, token, userID, adID string) error
}

type compareGateway struct {
	client *Client
}

func NewCompareGateway(client *Client) CompareGateway {
	return &compareGateway{client: client}
}

func (g *compareGateway) GetAllCompares(ctx context.Context, token, userID string) ([]domain.CompareEntry, error) {
	if userID == "" {
		return nil, ErrMissingParameter
	}
	var entries []domain.CompareEntry
	err := g.client.do(ctx, call{
		operation: "GetAllCompares",
		method:    http.MethodGet,
		path:      route("compare", userID),
		token:     token,
		protected: true,
	}, &entries)
	return entries, err
}

func (g *compareGateway) CreateCompare(ctx context.Context, token, userID, adID string) (*domain.CompareEntry, error) {
	if userID == "" || adID == "" {
		return nil, ErrMissingParameter
	}
	var entry domain.CompareEntry
	if err := g.client.do(ctx, call{
		operation: "CreateCompare",
		method:    http.MethodPost,
		path:      route("compare"),
		token:     token,
		protected: true,
		json:      map[string]string{"userId": userID, "advertisementId": adID},
	}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteCompare takes (userID, adID) but the backend route is
// /compare/{adId}/{userId}.
func (g *compareGateway) DeleteCompare(ctx context.Context, token, userID, adID string) error {
	if userID == "" || adID == "" {
		return ErrMissingParameter
	}
	return g.client.do(ctx, call{
		operation: "DeleteCompare",
		method:    http.MethodDelete,
		path:      route("compare", adID, userID),
		token:     token,
		protected: true,
	}, nil)
}
