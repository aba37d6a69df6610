package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"market-client/internal/domain"
)

type AdvertisementGateway interface {
	GetAllAdvertisements(ctx context.Context) ([]domain.Advertisement, error)
	GetAdvertisement(ctx context.Context, id string) (*domain.Advertisement, error)
	GetAdvertisementsByUser(ctx context.Context, token, userID string) ([]domain.Advertisement, error)
	GetAdvertisementsByCategory(ctx context.Context, categoryID string) ([]domain.Advertisement, error)
	SearchAdvertisements(ctx context.Context, keyword string) ([]domain.Advertisement, error)
	FilterAdvertisements(ctx context.Context, filter AdvertisementFilter) ([]domain.Advertisement, error)
	CreateAdvertisement(ctx context.Context, token string, in AdvertisementInput) (*domain.Advertisement, error)
	UpdateAdvertisement(ctx context.Context, token, id string, in AdvertisementInput) (*domain.Advertisement, error)
	DeleteAdvertisement(ctx context.Context, token, id string) error
	GetRenewableAdvertisements(ctx context.Context, token string) ([]domain.Advertisement, error)
}

// AdvertisementFilter holds the optional search dimensions. Only non-empty
// dimensions reach the wire.
type AdvertisementFilter struct {
	Category string
	Location string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Keyword  string
}

func (f AdvertisementFilter) IsEmpty() bool {
	return len(f.Values()) == 0
}

func (f AdvertisementFilter) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(f.Category); s != "" {
		v.Set("category", s)
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		v.Set("location", s)
	}
	if f.MinPrice != nil {
		v.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		v.Set("maxPrice", f.MaxPrice.String())
	}
	if s := strings.TrimSpace(f.Keyword); s != "" {
		v.Set("keyword", s)
	}
	return v
}

// AdvertisementInput is the create/update payload. Files switch the request
// to multipart/form-data.
type AdvertisementInput struct {
	Title          string           `json:"title,omitempty"`
	Description    string           `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Location       string           `json:"location,omitempty"`
	CategoryID     string           `json:"categoryId,omitempty"`
	SubcategoryID  string           `json:"subcategoryId,omitempty"`
	VideoURL       string           `json:"videoUrl,omitempty"`
	ExistingImages []string         `json:"existingImages,omitempty"`

	FeaturedImage *File  `json:"-"`
	Images        []File `json:"-"`
}

func (in AdvertisementInput) validateCreate() error {
	if err := required("title", in.Title); err != nil {
		return err
	}
	if err := required("categoryId", in.CategoryID); err != nil {
		return err
	}
	if in.Price == nil {
		return &ValidationError{Field: "price", Reason: "is required"}
	}
	if in.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

func (in AdvertisementInput) form() *form {
	f := newForm(in).
		set("title", in.Title).
		set("description", in.Description).
		set("location", in.Location).
		set("categoryId", in.CategoryID).
		set("subcategoryId", in.SubcategoryID).
		set("videoUrl", in.VideoURL)
	if in.Price != nil {
		f.set("price", in.Price.String())
	}
	for _, img := range in.ExistingImages {
		f.set("existingImages", img)
	}
	f.file("featuredImage", in.FeaturedImage)
	for i := range in.Images {
		f.file("images", &in.Images[i])
	}
	return f
}

type advertisementGateway struct {
	client *Client
}

func NewAdvertisementGateway(client *Client) AdvertisementGateway {
	return &advertisementGateway{client: client}
}

func (g *advertisementGateway) GetAllAdvertisements(ctx context.Context) ([]domain.Advertisement, error) {
	var ads []domain.Advertisement
	err := g.client.do(ctx, call{
		operation: "GetAllAdvertisements",
		method:    http.MethodGet,
		path:      route("advertisements"),
	}, &ads)
	return ads, err
}

func (g *advertisementGateway) GetAdvertisement(ctx context.Context, id string) (*domain.Advertisement, error) {
	if id == "" {
		return nil, ErrMissingParameter
	}
	var ad domain.Advertisement
	if err := g.client.do(ctx, call{
		operation: "GetAdvertisement",
		method:    http.MethodGet,
		path:      route("advertisements", id),
	}, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

func (g *advertisementGateway) GetAdvertisementsByUser(ctx context.Context, token, userID string) ([]domain.Advertisement, error) {
	if userID == "" {
		return nil, ErrMissingParameter
	}
	var ads []domain.Advertisement
	err := g.client.do(ctx, call{
		operation: "GetAdvertisementsByUser",
		method:    http.MethodGet,
		path:      route("advertisements", "user", userID),
		token:     token,
		protected: true,
	}, &ads)
	return ads, err
}

func (g *advertisementGateway) GetAdvertisementsByCategory(ctx context.Context, categoryID string) ([]domain.Advertisement, error) {
	if categoryID == "" {
		return nil, ErrMissingParameter
	}
	var ads []domain.Advertisement
	err := g.client.do(ctx, call{
		operation: "GetAdvertisementsByCategory",
		method:    http.MethodGet,
		path:      route("advertisements", "category", categoryID),
	}, &ads)
	return ads, err
}

func (g *advertisementGateway) SearchAdvertisements(ctx context.Context, keyword string) ([]domain.Advertisement, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrMissingParameter
	}
	var ads []domain.Advertisement
	err := g.client.do(ctx, call{
		operation: "SearchAdvertisements",
		method:    http.MethodGet,
		path:      route("advertisements", "search", keyword),
	}, &ads)
	return ads, err
}

func (g *advertisementGateway) FilterAdvertisements(ctx context.Context, filter AdvertisementFilter) ([]domain.Advertisement, error) {
	var ads []domain.Advertisement
	err := g.client.do(ctx, call{
		operation: "FilterAdvertisements",
		method:    http.MethodGet,
		path:      route("advertisements", "filter"),
		query:     filter.Values(),
	}, &ads)
	return ads, err
}

func (g *advertisementGateway) CreateAdvertisement(ctx context.Context, token string, in AdvertisementInput) (*domain.Advertisement, error) {
	if err := in.validateCreate(); err != nil {
		return nil, err
	}
	var ad domain.Advertisement
	if err := g.client.do(ctx, call{
		operation: "CreateAdvertisement",
		method:    http.MethodPost,
		path:      route("advertisements"),
		token:     token,
		protected: true,
		form:      in.form(),
	}, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

func (g *advertisementGateway) UpdateAdvertisement(ctx context.Context, token, id string, in AdvertisementInput) (*domain.Advertisement, error) {
	if id == "" {
		return nil, ErrMissingParameter
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	var ad domain.Advertisement
	if err := g.client.do(ctx, call{
		operation: "UpdateAdvertisement",
		method:    http.MethodPut,
		path:      route("advertisements", id),
		token:     token,
		protected: true,
		form:      in.form(),
	}, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

func (g *advertisementGateway) DeleteAdvertisement(ctx context.Context, token, id string) error {
	if id == "" {
		return ErrMissingParameter
	}
	return g.client.do(ctx, call{
		operation: "DeleteAdvertisement",
		method:    http.MethodDelete,
		path:      route("advertisements", id),
		token:     token,
		protected: true,
	}, nil)
}

func (g *advertisementGateway) GetRenewableAdvertisements(ctx context.Context, token string) ([]domain.Advertisement, error) {
	var ads []domain.Advertisement
	err := g.client.do(ctx, call{
		operation: "GetRenewableAdvertisements",
		method:    http.MethodGet,
		path:      route("advertisements", "renewable"),
		token:     token,
		protected: true,
	}, &ads)
	return ads, err
}
