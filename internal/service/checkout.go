package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"market-client/internal/domain"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
	"market-client/internal/infrastructure/store"
	"market-client/internal/session"
)

type CheckoutStep string

const (
	CheckoutDetails   CheckoutStep = "details"
	CheckoutPayment   CheckoutStep = "payment"
	CheckoutCompleted CheckoutStep = "completed"
)

// Identifiers of an unpaid order outlive a single process for this long.
const checkoutTTL = time.Hour

type CheckoutState struct {
	Step    CheckoutStep
	Package *domain.BoostPackage
	OrderID string
	Order   *domain.Order
	Error   string
}

// Checkout buys a boost package for an advertisement: billing details are
// submitted first, the returned order is then paid.
type Checkout struct {
	flow
	gw       gateway.CheckoutGateway
	store    store.Store
	packages []domain.BoostPackage
	state    CheckoutState
}

func NewCheckout(gw gateway.CheckoutGateway, st store.Store, packages []domain.BoostPackage, m *metrics.ServiceMetrics) *Checkout {
	return &Checkout{
		flow:     newFlow(m),
		gw:       gw,
		store:    st,
		packages: packages,
		state:    CheckoutState{Step: CheckoutDetails},
	}
}

func (f *Checkout) State() CheckoutState {
	return f.state
}

func (f *Checkout) Packages() []domain.BoostPackage {
	return f.packages
}

// Resume moves to the payment step when an unpaid order is stored.
func (f *Checkout) Resume(ctx context.Context) (bool, error) {
	orderID, err := f.store.Get(ctx, store.KeyCheckoutOrderID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	f.state = CheckoutState{Step: CheckoutPayment, OrderID: orderID}
	return true, nil
}

func (f *Checkout) Submit(ctx context.Context, sess session.Session, adID, packageID string, billing domain.BillingDetails) (*gateway.CheckoutResponse, error) {
	ctx, span := f.tracer.Start(ctx, "Checkout.Submit")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("Checkout.Submit", status, time.Since(startTime).Seconds())
	}()

	if f.state.Step != CheckoutDetails {
		status = "invalid_transition"
		return nil, f.fail(fmt.Errorf("%w: submit checkout in step %s", ErrInvalidTransition, f.state.Step))
	}
	if err := session.Require(sess); err != nil {
		status = "unauthenticated"
		return nil, f.fail(err)
	}

	pkg, ok := domain.FindBoostPackage(f.packages, packageID)
	if !ok {
		status = "invalid"
		return nil, f.fail(fmt.Errorf("%w %q", ErrUnknownPackage, packageID))
	}
	if strings.TrimSpace(billing.FullName) == "" || !validEmail(billing.Email) {
		status = "invalid"
		return nil, f.fail(ErrMissingBillingInfo)
	}

	resp, err := f.gw.SubmitCheckout(ctx, sess.Token, gateway.CheckoutRequest{
		AdvertisementID: adID,
		PackageID:       pkg.ID,
		PackageName:     pkg.Name,
		Amount:          pkg.Price,
		UserDetails:     billing,
	})
	if err != nil {
		status = "error"
		span.RecordError(err)
		f.state.Error = gateway.Message(err, "Checkout failed, please try again")
		return nil, err
	}

	if err := f.store.Set(ctx, store.KeyCheckoutOrderID, resp.OrderID, checkoutTTL); err != nil {
		status = "error"
		return nil, err
	}
	if err := f.store.Set(ctx, store.KeyCheckoutSecret, resp.ClientSecret, checkoutTTL); err != nil {
		status = "error"
		return nil, err
	}

	f.state = CheckoutState{Step: CheckoutPayment, Package: &pkg, OrderID: resp.OrderID}
	span.SetAttributes(
		attribute.String("checkout.order_id", resp.OrderID),
		attribute.String("checkout.package", pkg.ID),
	)
	return resp, nil
}

// Pay confirms the stored order. The stored identifiers are cleared once the
// backend accepts the payment.
func (f *Checkout) Pay(ctx context.Context, sess session.Session, paymentMethod string) (*domain.Order, error) {
	ctx, span := f.tracer.Start(ctx, "Checkout.Pay")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		f.metrics.Observe("Checkout.Pay", status, time.Since(startTime).Seconds())
	}()

	if f.state.Step != CheckoutPayment {
		status = "invalid_transition"
		return nil, f.fail(fmt.Errorf("%w: pay in step %s", ErrInvalidTransition, f.state.Step))
	}
	if err := session.Require(sess); err != nil {
		status = "unauthenticated"
		return nil, f.fail(err)
	}

	orderID, err := f.store.Get(ctx, store.KeyCheckoutOrderID)
	if err != nil {
		status = "no_checkout"
		return nil, f.fail(ErrNoCheckout)
	}
	secret, err := f.store.Get(ctx, store.KeyCheckoutSecret)
	if err != nil {
		status = "no_checkout"
		return nil, f.fail(ErrNoCheckout)
	}

	if paymentMethod == "" {
		paymentMethod = "card"
	}

	order, err := f.gw.ConfirmPayment(ctx, sess.Token, gateway.PaymentConfirmation{
		OrderID:         orderID,
		PaymentIntentID: paymentIntentID(secret),
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		status = "error"
		span.RecordError(err)
		f.state.Error = gateway.Message(err, "Payment failed, please try again")
		return nil, err
	}

	for _, key := range []string{store.KeyCheckoutOrderID, store.KeyCheckoutSecret} {
		if err := f.store.Delete(ctx, key); err != nil {
			status = "error"
			return nil, err
		}
	}

	f.state = CheckoutState{Step: CheckoutCompleted, Package: f.state.Package, OrderID: orderID, Order: order}
	return order, nil
}

// paymentIntentID strips the "_secret_..." suffix of a client secret.
func paymentIntentID(clientSecret string) string {
	id, _, _ := strings.Cut(clientSecret, "_secret_")
	return id
}

func (f *Checkout) fail(err error) error {
	f.state.Error = err.Error()
	return err
}
