// Package application assembles the storefront client: configuration,
// the durable record store, the HTTP boundary and the session and cart
// services. There are no package-level singletons; one App instance is
// built at startup and passed to whoever needs it.
package application

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"storefront/pkg/api"
	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
	"storefront/pkg/infrastructure/storage"
	"storefront/pkg/infrastructure/transport"
)

type App struct {
	Config Config
	Store  storage.Store
	Client *transport.Client

	Session service.SessionService
	Cart    service.CartService

	Auth          *api.AuthAPI
	Catalog       *api.CatalogAPI
	Orders        *api.OrdersAPI
	Patients      *api.PatientsAPI
	Prescriptions *api.PrescriptionsAPI
	Appointments  *api.AppointmentsAPI

	navigator *recordingNavigator
}

type Option func(*options)

type options struct {
	store    storage.Store
	navigate func(url string)
	dispatch service.EventDispatcher
}

// WithStore overrides the record store chosen by configuration.
func WithStore(store storage.Store) Option {
	return func(o *options) { o.store = store }
}

// WithNavigation sets the action taken when a redirect handshake hands
// control to the identity provider. The default only records and logs
// the target.
func WithNavigation(navigate func(url string)) Option {
	return func(o *options) { o.navigate = navigate }
}

// WithDispatcher replaces the default log-only event dispatcher.
func WithDispatcher(dispatcher service.EventDispatcher) Option {
	return func(o *options) { o.dispatch = dispatcher }
}

func New(cfg Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		var err error
		store, err = openStore(cfg)
		if err != nil {
			return nil, err
		}
	}

	dispatcher := o.dispatch
	if dispatcher == nil {
		dispatcher = logDispatcher{}
	}

	client, err := transport.NewClient(transport.Config{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.APITimeout,
		TokenKey: cfg.TokenKey,
	}, store)
	if err != nil {
		return nil, err
	}

	navigator := &recordingNavigator{navigate: o.navigate}
	auth := api.NewAuthAPI(client)
	session := service.NewSessionService(auth, navigator, dispatcher)

	cartRepo := storage.NewCartRepository(store, cfg.CartKey)
	cart, err := service.NewCartService(cartRepo, dispatcher)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:        cfg,
		Store:         store,
		Client:        client,
		Session:       session,
		Cart:          cart,
		Auth:          auth,
		Catalog:       api.NewCatalogAPI(client),
		Orders:        api.NewOrdersAPI(client),
		Patients:      api.NewPatientsAPI(client),
		Prescriptions: api.NewPrescriptionsAPI(client),
		Appointments:  api.NewAppointmentsAPI(client),
		navigator:     navigator,
	}

	// Reactive re-authentication: any 401 answer starts a fresh sign-in
	// handshake, the way the web client's response interceptor did.
	client.SetUnauthorizedHook(func(ctx context.Context) {
		if _, err := session.SignIn(ctx, model.LoginRequest{}); err != nil {
			log.WithError(err).Warn("automatic re-authentication failed")
		}
	})

	return app, nil
}

// Start resolves the session. Call once after New.
func (a *App) Start(ctx context.Context) model.SessionState {
	return a.Session.Resolve(ctx)
}

// LastNavigation returns the most recent redirect target handed to the
// navigator, if any.
func (a *App) LastNavigation() (string, bool) {
	return a.navigator.last()
}

func openStore(cfg Config) (storage.Store, error) {
	if cfg.StateDSN != "" {
		return storage.NewSQLStore(cfg.StateDSN)
	}
	return storage.NewFileStore(cfg.StateDir)
}

// recordingNavigator remembers redirect targets and delegates to the
// configured navigation action. In a real browser context navigation is
// terminal; here the process keeps running, so the target is surfaced to
// the caller instead.
type recordingNavigator struct {
	navigate func(url string)

	mu     sync.Mutex
	target string
}

func (n *recordingNavigator) Navigate(url string) {
	n.mu.Lock()
	n.target = url
	n.mu.Unlock()
	log.WithField("url", url).Info("handing off to identity provider")
	if n.navigate != nil {
		n.navigate(url)
	}
}

func (n *recordingNavigator) last() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target, n.target != ""
}

var _ model.Navigator = (*recordingNavigator)(nil)

// logDispatcher writes domain events to the log. Wiring a real broker
// is out of scope for a client-side core.
type logDispatcher struct{}

func (logDispatcher) Dispatch(event service.Event) error {
	log.WithField("event", event.Type()).Debug("domain event")
	return nil
}
