package gateway

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"market-client/internal/domain"
)

// CheckoutGateway covers checkout and payment confirmation. Unlike the other
// gateways every failure comes back as *MessageError.
type CheckoutGateway interface {
	SubmitCheckout(ctx context.Context, token string, req CheckoutRequest) (*CheckoutResponse, error)
	ConfirmPayment(ctx context.Context, token string, req PaymentConfirmation) (*domain.Order, error)
}

type CheckoutRequest struct {
	AdvertisementID string                `json:"advertisementId"`
	PackageID       string                `json:"packageId"`
	PackageName     string                `json:"packageName"`
	Amount          decimal.Decimal       `json:"amount"`
	UserDetails     domain.BillingDetails `json:"userDetails"`
}

type CheckoutResponse struct {
	OrderID      string `json:"orderId"`
	ClientSecret string `json:"clientSecret"`
}

type PaymentConfirmation struct {
	OrderID         string `json:"orderId"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	PaymentMethod   string `json:"paymentMethod"`
}

type checkoutGateway struct {
	client *Client
}

func NewCheckoutGateway(client *Client) CheckoutGateway {
	return &checkoutGateway{client: client}
}

func (g *checkoutGateway) SubmitCheckout(ctx context.Context, token string, req CheckoutRequest) (*CheckoutResponse, error) {
	if err := required("advertisementId", req.AdvertisementID); err != nil {
		return nil, normalize(err)
	}
	if err := required("packageId", req.PackageID); err != nil {
		return nil, normalize(err)
	}

	var resp CheckoutResponse
	if err := g.client.do(ctx, call{
		operation: "SubmitCheckout",
		method:    http.MethodPost,
		path:      route("checkout"),
		token:     token,
		protected: true,
		json:      req,
	}, &resp); err != nil {
		return nil, normalize(err)
	}
	if resp.OrderID == "" || resp.ClientSecret == "" {
		return nil, &MessageError{Message: "Checkout response is missing the order or payment reference"}
	}
	return &resp, nil
}

func (g *checkoutGateway) ConfirmPayment(ctx context.Context, token string, req PaymentConfirmation) (*domain.Order, error) {
	if err := required("orderId", req.OrderID); err != nil {
		return nil, normalize(err)
	}

	var order domain.Order
	if err := g.client.do(ctx, call{
		operation: "ConfirmPayment",
		method:    http.MethodPost,
		path:      route("payment", "confirm"),
		token:     token,
		protected: true,
		json:      req,
	}, &order); err != nil {
		return nil, normalize(err)
	}
	return &order, nil
}
