package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/infrastructure/storage"
)

func newTestClient(t *testing.T, handler http.Handler, store storage.Store) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL + "/api/v1", TokenKey: "auth_token"}, store)
	require.NoError(t, err)
	return client
}

func TestBearerCredential(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	t.Run("Attached when token persisted", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set("auth_token", []byte("tok-123")))
		client := newTestClient(t, handler, store)

		var out struct {
			OK bool `json:"ok"`
		}
		require.NoError(t, client.Get(context.Background(), "/ping", nil, &out))

		assert.Equal(t, "Bearer tok-123", gotAuth)
		assert.NotEmpty(t, gotRequestID)
		assert.True(t, out.OK)
	})

	t.Run("Omitted when no token persisted", func(t *testing.T) {
		client := newTestClient(t, handler, storage.NewMemoryStore())

		require.NoError(t, client.Get(context.Background(), "/ping", nil, nil))

		assert.Empty(t, gotAuth)
		assert.NotEmpty(t, gotRequestID)
	})
}

func TestUnauthorizedHook(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client := newTestClient(t, handler, storage.NewMemoryStore())

	hookCalls := 0
	client.SetUnauthorizedHook(func(ctx context.Context) { hookCalls++ })

	err := client.Get(context.Background(), "/orders", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.Equal(t, 1, hookCalls)
}

func TestUnauthorizedHookDoesNotReenter(t *testing.T) {
	// Backend that rejects every request, the login endpoint included,
	// the way a gateway with an expired bearer token does.
	loginCalls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/Login" {
			loginCalls++
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	client := newTestClient(t, handler, storage.NewMemoryStore())

	client.SetUnauthorizedHook(func(ctx context.Context) {
		// Re-authentication goes through the same client, so the 401 it
		// earns must not chain into another handshake.
		_ = client.Post(ctx, "/auth/Login", map[string]string{"Username": ""}, nil)
	})

	err := client.Get(context.Background(), "/orders", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, loginCalls)

	// The latch releases once the handshake finishes; a later 401 starts
	// a fresh one.
	err = client.Get(context.Background(), "/orders", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 2, loginCalls)
}

func TestBackendErrors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})
	client := newTestClient(t, handler, storage.NewMemoryStore())

	err := client.Post(context.Background(), "/orders", map[string]string{"x": "y"}, nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, string(apiErr.Body), "boom")
}

func TestTransportFailure(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:1/api/v1", TokenKey: "auth_token"}, storage.NewMemoryStore())
	require.NoError(t, err)

	hookCalls := 0
	client.SetUnauthorizedHook(func(ctx context.Context) { hookCalls++ })

	err = client.Get(context.Background(), "/ping", nil, nil)

	require.Error(t, err)
	// A network failure is not an authorization failure.
	assert.Zero(t, hookCalls)
	assert.Zero(t, StatusCode(err))
}
