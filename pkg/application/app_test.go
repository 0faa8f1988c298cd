package application_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/api"
	"storefront/pkg/application"
	"storefront/pkg/domain/model"
	"storefront/pkg/infrastructure/storage"
	"storefront/pkg/stub"
)

func newApp(t *testing.T, store storage.Store) *application.App {
	t.Helper()
	server := httptest.NewServer(stub.Router(stub.Options{}))
	t.Cleanup(server.Close)
	return newAppAgainst(t, server.URL, store)
}

func newAppAgainst(t *testing.T, baseURL string, store storage.Store) *application.App {
	t.Helper()
	cfg := application.Config{
		APIBaseURL: baseURL + "/api/v1",
		APITimeout: 5 * time.Second,
		TokenKey:   "auth_token",
		CartKey:    "cart",
	}
	app, err := application.New(cfg, application.WithStore(store))
	require.NoError(t, err)
	return app
}

func TestStartWithoutCredential(t *testing.T) {
	app := newApp(t, storage.NewMemoryStore())

	state := app.Start(context.Background())

	assert.Equal(t, model.Anonymous, state)
	assert.False(t, app.Session.IsAuthenticated())
}

func TestStartWithPersistedCredential(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("auth_token", []byte(stub.DemoToken())))
	app := newApp(t, store)

	state := app.Start(context.Background())

	require.Equal(t, model.Authenticated, state)
	identity, ok := app.Session.Identity()
	require.True(t, ok)
	assert.Equal(t, "demo", identity.Username)
	assert.Equal(t, "ext-42", identity.ExternalUserID)
}

func TestSignInHandshake(t *testing.T) {
	app := newApp(t, storage.NewMemoryStore())
	app.Start(context.Background())

	resp, err := app.Session.SignIn(context.Background(), model.LoginRequest{Username: "demo"})

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, "https://idp.example/authorize", resp.RedirectURL)

	target, ok := app.LastNavigation()
	require.True(t, ok)
	assert.Equal(t, "https://idp.example/authorize", target)
	// Identity is only established by a later profile query.
	assert.False(t, app.Session.IsAuthenticated())
}

func TestRejectedReauthDoesNotLoop(t *testing.T) {
	// A gateway with an expired credential answers 401 on every route,
	// the login endpoint included. The re-auth handshake the hook starts
	// must run once, not chain on its own 401.
	loginCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/Login" {
			loginCalls++
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("auth_token", []byte("expired")))
	app := newAppAgainst(t, server.URL, store)

	state := app.Start(context.Background())
	require.Equal(t, model.Anonymous, state)

	_, err := app.Auth.MyProfile(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, loginCalls)
}

func TestCartSurvivesRestartAndRedirect(t *testing.T) {
	server := httptest.NewServer(stub.Router(stub.Options{}))
	t.Cleanup(server.Close)

	store := storage.NewMemoryStore()
	app := newAppAgainst(t, server.URL, store)
	app.Start(context.Background())

	require.NoError(t, app.Cart.AddItem(model.Product{ID: "1", Name: "Wireless Headphones", Price: 99.99}, 1))
	require.NoError(t, app.Cart.AddItem(model.Product{ID: "4", Name: "Laptop Backpack", Price: 49.99}, 1))
	require.NoError(t, app.Cart.AddItem(model.Product{ID: "1", Name: "Wireless Headphones", Price: 99.99}, 1))

	// A rejected credential triggers the re-authentication handshake;
	// the mutations above were persisted before this request fired.
	require.NoError(t, store.Set("auth_token", []byte("expired")))
	_, err := app.Auth.MyProfile(context.Background())
	require.Error(t, err)
	_, navigated := app.LastNavigation()
	assert.True(t, navigated)

	restarted := newAppAgainst(t, server.URL, store)
	lines := restarted.Cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "4", lines[1].Product.ID)
	assert.Equal(t, 3, restarted.Cart.Count())
}

func TestClearedCartStaysEmptyAfterRestart(t *testing.T) {
	store := storage.NewMemoryStore()
	app := newApp(t, store)

	require.NoError(t, app.Cart.AddItem(model.Product{ID: "5", Price: 129.99}, 2))
	require.NoError(t, app.Cart.Clear())

	restarted := newApp(t, store)
	assert.Empty(t, restarted.Cart.Lines())
	assert.Zero(t, restarted.Cart.Count())
}

func TestCatalogBrowsing(t *testing.T) {
	app := newApp(t, storage.NewMemoryStore())

	page, err := app.Catalog.ListProducts(context.Background(), api.ProductFilter{Category: "Electronics"})
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Wireless Headphones", page.Products[0].Name)

	product, err := app.Catalog.GetProduct(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "Coffee Maker", product.Name)
	assert.InDelta(t, 129.99, product.Price, 0.001)
}

func TestProfileOverview(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("auth_token", []byte(stub.DemoToken())))
	app := newApp(t, store)
	app.Start(context.Background())

	overview, err := app.LoadProfileOverview(context.Background(), "usr-1")

	require.NoError(t, err)
	require.NotNil(t, overview.Patient)
	assert.Equal(t, "usr-1", overview.Patient.ID)
	require.Len(t, overview.Orders, 1)
	assert.Equal(t, "ORD-001", overview.Orders[0].ID)
	assert.Equal(t, model.OrderDelivered, overview.Orders[0].Status)
	assert.Empty(t, overview.Prescriptions)
	assert.Empty(t, overview.Appointments)
}
