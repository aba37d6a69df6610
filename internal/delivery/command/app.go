package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"market-client/internal/config"
	"market-client/internal/domain"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
	"market-client/internal/infrastructure/store"
	"market-client/internal/service"
	"market-client/internal/session"
	"market-client/pkg/logger"
)

// App holds everything a command needs. It is built once per process.
type App struct {
	Config   *config.Config
	Loggers  *logger.Loggers
	Store    store.Store
	Registry *prometheus.Registry
	Client   *gateway.Client
	Gateways *gateway.Gateways
	Packages []domain.BoostPackage

	serviceMetrics *metrics.ServiceMetrics
}

func NewApp(cfg *config.Config, loggers *logger.Loggers, st store.Store, registry *prometheus.Registry) (*App, error) {
	gatewayMetrics := metrics.NewGatewayMetrics(registry)
	serviceMetrics := metrics.NewServiceMetrics(registry)

	client, err := gateway.NewClient(cfg.API, gatewayMetrics, loggers)
	if err != nil {
		return nil, err
	}

	packages, err := domain.BoostPackagesFromConfig(cfg.Boost)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:         cfg,
		Loggers:        loggers,
		Store:          st,
		Registry:       registry,
		Client:         client,
		Gateways:       gateway.NewGateways(client),
		Packages:       packages,
		serviceMetrics: serviceMetrics,
	}, nil
}

type tokenKey struct{}

// withToken carries the --token of one execution to the commands.
func withToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Session returns the stored session. A different token given for this
// execution replaces it entirely, identity included: the user then comes
// from the token's claims, never from the stored login.
func (a *App) Session(ctx context.Context) (session.Session, error) {
	s, err := session.Load(ctx, a.Store)
	if err != nil {
		return session.Session{}, err
	}
	if token := tokenFrom(ctx); token != "" && token != s.Token {
		return session.FromToken(token), nil
	}
	if s.IsLoggedIn() && s.User == nil {
		if id, err := a.Store.Get(ctx, store.KeyUserID); err == nil {
			s.User = &domain.User{ID: id}
		}
	}
	return s, nil
}

func (a *App) requireSession(ctx context.Context) (session.Session, error) {
	s, err := a.Session(ctx)
	if err != nil {
		return s, err
	}
	return s, session.Require(s)
}

// requireUser is requireSession for commands scoped to the caller's own
// records, which need to know who the caller is.
func (a *App) requireUser(ctx context.Context) (session.Session, error) {
	s, err := a.requireSession(ctx)
	if err != nil {
		return s, err
	}
	if s.UserID() == "" {
		return s, errUnknownUser
	}
	return s, nil
}

func (a *App) requireAdmin(ctx context.Context) (session.Session, error) {
	s, err := a.Session(ctx)
	if err != nil {
		return s, err
	}
	return s, session.RequireAdmin(s)
}

func (a *App) auth() *service.Auth {
	return service.NewAuth(a.Gateways.Auth, a.Store, a.serviceMetrics)
}

func (a *App) passwordReset() *service.PasswordReset {
	return service.NewPasswordReset(a.Gateways.Auth, a.Store, a.serviceMetrics)
}

func (a *App) emailVerification() *service.EmailVerification {
	return service.NewEmailVerification(a.Gateways.Auth, a.Store, a.serviceMetrics)
}

func (a *App) checkout() *service.Checkout {
	return service.NewCheckout(a.Gateways.Checkout, a.Store, a.Packages, a.serviceMetrics)
}

func (a *App) search() *service.Search {
	return service.NewSearch(a.Gateways.Advertisements, a.serviceMetrics)
}

func (a *App) compareList() *service.CompareList {
	return service.NewCompareList(a.Gateways.Compares, a.serviceMetrics)
}

func (a *App) favourites() *service.Favourites {
	return service.NewFavourites(a.Gateways.Favourites, a.serviceMetrics)
}

func (a *App) categoryDetail() *service.CategoryDetail {
	return service.NewCategoryDetail(a.Gateways.Categories, a.Gateways.Advertisements, a.serviceMetrics)
}

// openFile opens a file flag. An empty path yields no file.
func openFile(path string) (*gateway.File, func(), error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open %s: %w", path, err)
	}
	return &gateway.File{Name: filepath.Base(path), Content: f}, func() { f.Close() }, nil
}

func openFiles(paths []string) ([]gateway.File, func(), error) {
	var (
		files   []gateway.File
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	for _, p := range paths {
		f, closeFn, err := openFile(p)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, closeFn)
		if f != nil {
			files = append(files, *f)
		}
	}
	return files, closeAll, nil
}

