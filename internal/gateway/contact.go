package gateway

import (
	"context"
	"net/http"
	"net/mail"

	"market-client/internal/domain"
)

type ContactGateway interface {
	SendMessage(ctx context.Context, in ContactInput) (*StatusMessage, error)
	GetAllMessages(ctx context.Context, token string) ([]domain.ContactMessage, error)
	GetMessage(ctx context.Context, token, id string) (*domain.ContactMessage, error)
	DeleteMessage(ctx context.Context, token, id string) error
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (in ContactInput) validate() error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return required("message", in.Message)
}

// StatusMessage is the {message} acknowledgement several endpoints return.
type StatusMessage struct {
	Message string `json:"message"`
}

type contactGateway struct {
	client *Client
}

func NewContactGateway(client *Client) ContactGateway {
	return &contactGateway{client: client}
}

func (g *contactGateway) SendMessage(ctx context.Context, in ContactInput) (*StatusMessage, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var msg StatusMessage
	if err := g.client.do(ctx, call{
		operation: "SendContactMessage",
		method:    http.MethodPost,
		path:      route("contact"),
		json:      in,
	}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (g *contactGateway) GetAllMessages(ctx context.Context, token string) ([]domain.ContactMessage, error) {
	var messages []domain.ContactMessage
	err := g.client.do(ctx, call{
		operation: "GetAllContactMessages",
		method:    http.MethodGet,
		path:      route("contact"),
		token:     token,
		protected: true,
	}, &messages)
	return messages, err
}

func (g *contactGateway) GetMessage(ctx context.Context, token, id string) (*domain.ContactMessage, error) {
	if id == "" {
		return nil, ErrMissingParameter
	}
	var message domain.ContactMessage
	if err := g.client.do(ctx, call{
		operation: "GetContactMessage",
		method:    http.MethodGet,
		path:      route("contact", id),
		token:     token,
		protected: true,
	}, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (g *contactGateway) DeleteMessage(ctx context.Context, token, id string) error {
	if id == "" {
		return ErrMissingParameter
	}
	return g.client.do(ctx, call{
		operation: "DeleteContactMessage",
		method:    http.MethodDelete,
		path:      route("contact", id),
		token:     token,
		protected: true,
	}, nil)
}
