package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/api"
	"storefront/pkg/domain/model"
	"storefront/pkg/infrastructure/storage"
	"storefront/pkg/infrastructure/transport"
)

func clientAgainst(t *testing.T, handler http.Handler) *transport.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := transport.NewClient(transport.Config{BaseURL: server.URL + "/api/v1", TokenKey: "auth_token"}, storage.NewMemoryStore())
	require.NoError(t, err)
	return client
}

func TestListOrdersUnwrapsEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/patients/usr-1/orders", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "delivered", r.URL.Query().Get("status"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"data":[{"id":"ORD-001","date":"2024-10-28","total":179.98,"status":"delivered","items":[{"product":{"id":"1","name":"Wireless Headphones","price":99.99},"quantity":1}]}],"total":7,"page":2,"limit":10},"message":"ok"}`))
	})
	ordersAPI := api.NewOrdersAPI(clientAgainst(t, handler))

	page, err := ordersAPI.ListOrders(context.Background(), "usr-1", api.OrderFilter{
		ListOptions: api.ListOptions{Page: 2, Limit: 10},
		Status:      "delivered",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Orders, 1)

	order := page.Orders[0]
	assert.Equal(t, "ORD-001", order.ID)
	assert.Equal(t, model.OrderDelivered, order.Status)
	assert.Equal(t, 2024, order.Date.Year())
	require.Len(t, order.Items, 1)
	assert.Equal(t, "1", order.Items[0].Product.ID)
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"data":[{"id":"ORD-002","date":"2024-11-01","total":1,"status":"teleported","items":[]}],"total":1,"page":1,"limit":20}}`))
	})
	ordersAPI := api.NewOrdersAPI(clientAgainst(t, handler))

	_, err := ordersAPI.ListOrders(context.Background(), "usr-1", api.OrderFilter{})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrOrderStatusUnknown)
}
