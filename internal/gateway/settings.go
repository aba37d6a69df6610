package gateway

import (
	"context"
	"net/http"

	"market-client/internal/domain"
)

type SettingsGateway interface {
	GetSettings(ctx context.Context) (*domain.SiteSettings, error)
	UploadLogo(ctx context.Context, token string, logo File) (*domain.SiteSettings, error)
}

type settingsGateway struct {
	client *Client
}

func NewSettingsGateway(client *Client) SettingsGateway {
	return &settingsGateway{client: client}
}

func (g *settingsGateway) GetSettings(ctx context.Context) (*domain.SiteSettings, error) {
	var settings domain.SiteSettings
	if err := g.client.do(ctx, call{
		operation: "GetSettings",
		method:    http.MethodGet,
		path:      route("settings"),
	}, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (g *settingsGateway) UploadLogo(ctx context.Context, token string, logo File) (*domain.SiteSettings, error) {
	if logo.Content == nil {
		return nil, &ValidationError{Field: "logo", Reason: "is required"}
	}
	var settings domain.SiteSettings
	if err := g.client.do(ctx, call{
		operation: "UploadLogo",
		method:    http.MethodPut,
		path:      route("settings", "logo"),
		token:     token,
		protected: true,
		form:      newForm(nil).file("logo", &logo),
	}, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
