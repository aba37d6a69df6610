package gateway

import (
	"context"
	"net/http"

	"market-client/internal/domain"
)

type UserGateway interface {
	GetUser(ctx context.Context, token, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, token, id string, in UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, token, id string) error
	GetAllUsers(ctx context.Context, token string) ([]domain.User, error)
}

type UserInput struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	ProfileImage *File `json:"-"`
	CoverImage   *File `json:"-"`
}

func (in UserInput) form() *form {
	return newForm(in).
		set("firstName", in.FirstName).
		set("lastName", in.LastName).
		set("username", in.Username).
		set("email", in.Email).
		set("phone", in.Phone).
		file("profileImage", in.ProfileImage).
		file("coverImage", in.CoverImage)
}

type userGateway struct {
	client *Client
}

func NewUserGateway(client *Client) UserGateway {
	return &userGateway{client: client}
}

func (g *userGateway) GetUser(ctx context.Context, token, id string) (*domain.User, error) {
	if id == "" {
		return nil, ErrMissingParameter
	}
	var user domain.User
	if err := g.client.do(ctx, call{
		operation: "GetUser",
		method:    http.MethodGet,
		path:      route("users", id),
		token:     token,
		protected: true,
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *userGateway) UpdateUser(ctx context.Context, token, id string, in UserInput) (*domain.User, error) {
	if id == "" {
		return nil, ErrMissingParameter
	}
	var user domain.User
	if err := g.client.do(ctx, call{
		operation: "UpdateUser",
		method:    http.MethodPut,
		path:      route("users", id),
		token:     token,
		protected: true,
		form:      in.form(),
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *userGateway) DeleteUser(ctx context.Context, token, id string) error {
	if id == "" {
		return ErrMissingParameter
	}
	return g.client.do(ctx, call{
		operation: "DeleteUser",
		method:    http.MethodDelete,
		path:      route("users", id),
		token:     token,
		protected: true,
	}, nil)
}

func (g *userGateway) GetAllUsers(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	err := g.client.do(ctx, call{
		operation: "GetAllUsers",
		method:    http.MethodGet,
		path:      route("users"),
		token:     token,
		protected: true,
	}, &users)
	return users, err
}
