package gateway

import (
	"context"
	"net/http"

	"market-client/internal/domain"
)

type OrderGateway interface {
	GetOrder(ctx context.Context, token, id string) (*domain.Order, error)
	GetAllOrders(ctx context.Context, token string) ([]domain.Order, error)
	GetOrdersByUser(ctx context.Context, token, userID string) ([]domain.Order, error)
}

type orderGateway struct {
	client *Client
}

func NewOrderGateway(client *Client) OrderGateway {
	return &orderGateway{client: client}
}

func (g *orderGateway) GetOrder(ctx context.Context, token, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrMissingParameter
	}
	var order domain.Order
	if err := g.client.do(ctx, call{
		operation: "GetOrder",
		method:    http.MethodGet,
		path:      route("orders", id),
		token:     token,
		protected: true,
	}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *orderGateway) GetAllOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	err := g.client.do(ctx, call{
		operation: "GetAllOrders",
		method:    http.MethodGet,
		path:      route("orders"),
		token:     token,
		protected: true,
	}, &orders)
	return orders, err
}

func (g *orderGateway) GetOrdersByUser(ctx context.Context, token, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, ErrMissingParameter
	}
	var orders []domain.Order
	err := g.client.do(ctx, call{
		operation: "GetOrdersByUser",
		method:    http.MethodGet,
		path:      route("orders", "user", userID),
		token:     token,
		protected: true,
	}, &orders)
	return orders, err
}
