package gateway

import (
	"context"
	"net/http"

	"market-client/internal/domain"
)

type CategoryGateway interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, token string, in CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, token, id string, in CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error
}

type CategoryInput struct {
	Name          string   `json:"name,omitempty"`
	Subcategories []string `json:"subcategories,omitempty"`
	Features      []string `json:"features,omitempty"`

	Image *File `json:"-"`
}

// form sends list fields as JSON strings when the payload is multipart.
func (in CategoryInput) form() *form {
	f := newForm(in).set("name", in.Name)
	if len(in.Subcategories) > 0 {
		f.setJSON("subcategories", in.Subcategories)
	}
	if len(in.Features) > 0 {
		f.setJSON("features", in.Features)
	}
	return f.file("image", in.Image)
}

type categoryGateway struct {
	client *Client
}

func NewCategoryGateway(client *Client) CategoryGateway {
	return &categoryGateway{client: client}
}

func (g *categoryGateway) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := g.client.do(ctx, call{
		operation: "GetAllCategories",
		method:    http.MethodGet,
		path:      route("categories"),
	}, &categories)
	return categories, err
}

func (g *categoryGateway) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	if id == "" {
		return nil, ErrMissingParameter
	}
	var category domain.Category
	if err := g.client.do(ctx, call{
		operation: "GetCategory",
		method:    http.MethodGet,
		path:      route("categories", id),
	}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (g *categoryGateway) CreateCategory(ctx context.Context, token string, in CategoryInput) (*domain.Category, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	var category domain.Category
	if err := g.client.do(ctx, call{
		operation: "CreateCategory",
		method:    http.MethodPost,
		path:      route("categories"),
		token:     token,
		protected: true,
		form:      in.form(),
	}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (g *categoryGateway) UpdateCategory(ctx context.Context, token, id string, in CategoryInput) (*domain.Category, error) {
	if id == "" {
		return nil, ErrMissingParameter
	}
	var category domain.Category
	if err := g.client.do(ctx, call{
		operation: "UpdateCategory",
		method:    http.MethodPut,
		path:      route("categories", id),
		token:     token,
		protected: true,
		form:      in.form(),
	}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (g *categoryGateway) DeleteCategory(ctx context.Context, token, id string) error {
	if id == "" {
		return ErrMissingParameter
	}
	return g.client.do(ctx, call{
		operation: "DeleteCategory",
		method:    http.MethodDelete,
		path:      route("categories", id),
		token:     token,
		protected: true,
	}, nil)
}
