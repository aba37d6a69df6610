package service

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"market-client/internal/domain"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
)

func testMetrics(t *testing.T) *metrics.ServiceMetrics {
	t.Helper()
	return metrics.NewServiceMetrics(prometheus.NewRegistry())
}

// calls counts invocations by method name.
type calls struct {
	mu sync.Mutex
	n  map[string]int
}

func (c *calls) hit(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == nil {
		c.n = make(map[string]int)
	}
	c.n[name]++
}

func (c *calls) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n[name]
}

func (c *calls) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	sum := 0
	for _, v := range c.n {
		sum += v
	}
	return sum
}

type fakeAuth struct {
	calls
	err      error
	response *gateway.AuthResponse

	lastEmail    string
	lastCode     string
	lastPassword string
}

func (f *fakeAuth) ack(name string) (*gateway.StatusMessage, error) {
	f.hit(name)
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.StatusMessage{Message: name + " ok"}, nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*gateway.AuthResponse, error) {
	f.hit("Login")
	f.lastEmail, f.lastPassword = email, password
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeAuth) Register(_ context.Context, in gateway.RegisterInput) (*gateway.AuthResponse, error) {
	f.hit("Register")
	f.lastEmail, f.lastPassword = in.Email, in.Password
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeAuth) SendOTP(_ context.Context, email string) (*gateway.StatusMessage, error) {
	f.lastEmail = email
	return f.ack("SendOTP")
}

func (f *fakeAuth) VerifyOTP(_ context.Context, email, otp string) (*gateway.StatusMessage, error) {
	f.lastEmail, f.lastCode = email, otp
	return f.ack("VerifyOTP")
}

func (f *fakeAuth) ForgotPassword(_ context.Context, email string) (*gateway.StatusMessage, error) {
	f.lastEmail = email
	return f.ack("ForgotPassword")
}

func (f *fakeAuth) VerifyResetCode(_ context.Context, email, code string) (*gateway.StatusMessage, error) {
	f.lastEmail, f.lastCode = email, code
	return f.ack("VerifyResetCode")
}

func (f *fakeAuth) ResetPassword(_ context.Context, email, code, password string) (*gateway.StatusMessage, error) {
	f.lastEmail, f.lastCode, f.lastPassword = email, code, password
	return f.ack("ResetPassword")
}

type fakeAds struct {
	calls
	err        error
	ads        []domain.Advertisement
	lastFilter gateway.AdvertisementFilter
	lastArg    string
}

func (f *fakeAds) list(name, arg string) ([]domain.Advertisement, error) {
	f.hit(name)
	f.lastArg = arg
	if f.err != nil {
		return nil, f.err
	}
	return f.ads, nil
}

func (f *fakeAds) GetAllAdvertisements(context.Context) ([]domain.Advertisement, error) {
	return f.list("GetAllAdvertisements", "")
}

func (f *fakeAds) GetAdvertisement(_ context.Context, id string) (*domain.Advertisement, error) {
	f.hit("GetAdvertisement")
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Advertisement{ID: id}, nil
}

func (f *fakeAds) GetAdvertisementsByUser(_ context.Context, _, userID string) ([]domain.Advertisement, error) {
	return f.list("GetAdvertisementsByUser", userID)
}

func (f *fakeAds) GetAdvertisementsByCategory(_ context.Context, categoryID string) ([]domain.Advertisement, error) {
	return f.list("GetAdvertisementsByCategory", categoryID)
}

func (f *fakeAds) SearchAdvertisements(_ context.Context, keyword string) ([]domain.Advertisement, error) {
	return f.list("SearchAdvertisements", keyword)
}

func (f *fakeAds) FilterAdvertisements(_ context.Context, filter gateway.AdvertisementFilter) ([]domain.Advertisement, error) {
	f.lastFilter = filter
	return f.list("FilterAdvertisements", "")
}

func (f *fakeAds) CreateAdvertisement(context.Context, string, gateway.AdvertisementInput) (*domain.Advertisement, error) {
	f.hit("CreateAdvertisement")
	return &domain.Advertisement{}, f.err
}

func (f *fakeAds) UpdateAdvertisement(_ context.Context, _, id string, _ gateway.AdvertisementInput) (*domain.Advertisement, error) {
	f.hit("UpdateAdvertisement")
	return &domain.Advertisement{ID: id}, f.err
}

func (f *fakeAds) DeleteAdvertisement(context.Context, string, string) error {
	f.hit("DeleteAdvertisement")
	return f.err
}

func (f *fakeAds) GetRenewableAdvertisements(context.Context, string) ([]domain.Advertisement, error) {
	return f.list("GetRenewableAdvertisements", "")
}

type fakeCategories struct {
	calls
	err      error
	category *domain.Category
}

func (f *fakeCategories) GetAllCategories(context.Context) ([]domain.Category, error) {
	f.hit("GetAllCategories")
	return nil, f.err
}

func (f *fakeCategories) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	f.hit("GetCategory")
	if f.err != nil {
		return nil, f.err
	}
	return f.category, nil
}

func (f *fakeCategories) CreateCategory(context.Context, string, gateway.CategoryInput) (*domain.Category, error) {
	f.hit("CreateCategory")
	return f.category, f.err
}

func (f *fakeCategories) UpdateCategory(context.Context, string, string, gateway.CategoryInput) (*domain.Category, error) {
	f.hit("UpdateCategory")
	return f.category, f.err
}

func (f *fakeCategories) DeleteCategory(context.Context, string, string) error {
	f.hit("DeleteCategory")
	return f.err
}

type fakeCompares struct {
	calls
	err     error
	entries []domain.CompareEntry

	deletedUserID string
	deletedAdID   string
}

func (f *fakeCompares) GetAllCompares(context.Context, string, string) ([]domain.CompareEntry, error) {
	f.hit("GetAllCompares")
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func (f *fakeCompares) CreateCompare(_ context.Context, _, userID, adID string) (*domain.CompareEntry, error) {
	f.hit("CreateCompare")
	if f.err != nil {
		return nil, f.err
	}
	return &domain.CompareEntry{UserID: userID, AdvertisementID: adID}, nil
}

func (f *fakeCompares) DeleteCompare(_ context.Context, _, userID, adID string) error {
	f.hit("DeleteCompare")
	f.deletedUserID, f.deletedAdID = userID, adID
	return f.err
}

type fakeFavourites struct {
	calls
	err        error
	favourites []domain.Favourite
}

func (f *fakeFavourites) GetAllFavourites(context.Context, string, string) ([]domain.Favourite, error) {
	f.hit("GetAllFavourites")
	if f.err != nil {
		return nil, f.err
	}
	return f.favourites, nil
}

func (f *fakeFavourites) CreateFavourite(_ context.Context, _, adID string) (*domain.Favourite, error) {
	f.hit("CreateFavourite")
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Favourite{AdvertisementID: adID}, nil
}

func (f *fakeFavourites) DeleteFavourite(context.Context, string, string) error {
	f.hit("DeleteFavourite")
	return f.err
}

type fakeCheckout struct {
	calls
	submitErr error
	payErr    error
	response  *gateway.CheckoutResponse

	lastRequest gateway.CheckoutRequest
	lastPayment gateway.PaymentConfirmation
}

func (f *fakeCheckout) SubmitCheckout(_ context.Context, _ string, req gateway.CheckoutRequest) (*gateway.CheckoutResponse, error) {
	f.hit("SubmitCheckout")
	f.lastRequest = req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.response, nil
}

func (f *fakeCheckout) ConfirmPayment(_ context.Context, _ string, req gateway.PaymentConfirmation) (*domain.Order, error) {
	f.hit("ConfirmPayment")
	f.lastPayment = req
	if f.payErr != nil {
		return nil, f.payErr
	}
	return &domain.Order{ID: req.OrderID, PaymentStatus: domain.PaymentStatusCompleted}, nil
}
