package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-client/internal/domain"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/store"
	"market-client/internal/session"
)

var (
	loggedIn = session.Session{Token: "tok", User: &domain.User{ID: "u1", Role: domain.RoleUser}}
	billing  = domain.BillingDetails{FullName: "Ann Lee", Email: "ann@example.com"}
)

func TestCheckoutSuccessStoresIdentifiers(t *testing.T) {
	ctx := context.Background()
	gw := &fakeCheckout{response: &gateway.CheckoutResponse{OrderID: "o1", ClientSecret: "pi_123_secret_abc"}}
	st := store.NewMemoryStore()
	f := NewCheckout(gw, st, domain.DefaultBoostPackages(), testMetrics(t))

	_, err := f.Submit(ctx, loggedIn, "a1", "standard", billing)
	require.NoError(t, err)

	assert.Equal(t, CheckoutPayment, f.State().Step)
	assert.Equal(t, "9", gw.lastRequest.Amount.String())
	assert.Equal(t, "Standard boost", gw.lastRequest.PackageName)

	orderID, err := st.Get(ctx, store.KeyCheckoutOrderID)
	require.NoError(t, err)
	assert.Equal(t, "o1", orderID)
	secret, err := st.Get(ctx, store.KeyCheckoutSecret)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_abc", secret)

	order, err := f.Pay(ctx, loggedIn, "")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, order.PaymentStatus)
	assert.Equal(t, CheckoutCompleted, f.State().Step)
	assert.Equal(t, "pi_123", gw.lastPayment.PaymentIntentID)
	assert.Equal(t, "card", gw.lastPayment.PaymentMethod)

	_, err = st.Get(ctx, store.KeyCheckoutOrderID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(ctx, store.KeyCheckoutSecret)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCheckoutFailureStaysOnDetails(t *testing.T) {
	ctx := context.Background()
	gw := &fakeCheckout{submitErr: &gateway.MessageError{Message: "Advertisement already boosted"}}
	st := store.NewMemoryStore()
	f := NewCheckout(gw, st, domain.DefaultBoostPackages(), testMetrics(t))

	_, err := f.Submit(ctx, loggedIn, "a1", "basic", billing)

	require.Error(t, err)
	assert.Equal(t, CheckoutDetails, f.State().Step)
	assert.Equal(t, "Advertisement already boosted", f.State().Error)
	_, err = st.Get(ctx, store.KeyCheckoutOrderID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCheckoutValidationBeforeNetwork(t *testing.T) {
	ctx := context.Background()
	gw := &fakeCheckout{response: &gateway.CheckoutResponse{OrderID: "o1", ClientSecret: "s"}}
	f := NewCheckout(gw, store.NewMemoryStore(), domain.DefaultBoostPackages(), testMetrics(t))

	_, err := f.Submit(ctx, session.Session{}, "a1", "basic", billing)
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)

	_, err = f.Submit(ctx, loggedIn, "a1", "gold", billing)
	assert.ErrorIs(t, err, ErrUnknownPackage)

	_, err = f.Submit(ctx, loggedIn, "a1", "basic", domain.BillingDetails{FullName: "Ann"})
	assert.ErrorIs(t, err, ErrMissingBillingInfo)

	_, err = f.Pay(ctx, loggedIn, "card")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.Equal(t, 0, gw.total())
	assert.Equal(t, CheckoutDetails, f.State().Step)
}

func TestCheckoutResumeAndPaymentFailure(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(ctx, store.KeyCheckoutOrderID, "o7", 0))
	require.NoError(t, st.Set(ctx, store.KeyCheckoutSecret, "pi_7_secret_x", 0))

	gw := &fakeCheckout{payErr: &gateway.MessageError{Message: "Card declined"}}
	f := NewCheckout(gw, st, domain.DefaultBoostPackages(), testMetrics(t))

	resumed, err := f.Resume(ctx)
	require.NoError(t, err)
	require.True(t, resumed)
	assert.Equal(t, CheckoutPayment, f.State().Step)

	_, err = f.Pay(ctx, loggedIn, "card")
	require.Error(t, err)
	assert.Equal(t, "Card declined", f.State().Error)
	assert.Equal(t, CheckoutPayment, f.State().Step)

	orderID, err := st.Get(ctx, store.KeyCheckoutOrderID)
	require.NoError(t, err)
	assert.Equal(t, "o7", orderID)
}

func TestCheckoutResumeWithoutOrder(t *testing.T) {
	f := NewCheckout(&fakeCheckout{}, store.NewMemoryStore(), domain.DefaultBoostPackages(), testMetrics(t))

	resumed, err := f.Resume(context.Background())
	require.NoError(t, err)
	assert.False(t, resumed)
	assert.Equal(t, CheckoutDetails, f.State().Step)
}
