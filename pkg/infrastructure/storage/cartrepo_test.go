package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
)

func TestCartRepository(t *testing.T) {
	t.Run("Missing record means empty cart", func(t *testing.T) {
		repo := NewCartRepository(NewMemoryStore(), "cart")
		cart, err := repo.Load()
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("Roundtrip preserves line order", func(t *testing.T) {
		repo := NewCartRepository(NewMemoryStore(), "cart")
		cart := &model.Cart{Lines: []model.CartLine{
			{Product: model.Product{ID: "1", Name: "Wireless Headphones", Price: 99.99, Category: "Electronics", Rating: 4.5, InStock: true}, Quantity: 2},
			{Product: model.Product{ID: "4", Name: "Laptop Backpack", Price: 49.99, Category: "Accessories", Rating: 4.4, InStock: true}, Quantity: 1},
		}}

		require.NoError(t, repo.Save(cart))
		restored, err := repo.Load()
		require.NoError(t, err)

		require.Len(t, restored.Lines, 2)
		assert.Equal(t, "1", restored.Lines[0].Product.ID)
		assert.Equal(t, 2, restored.Lines[0].Quantity)
		assert.Equal(t, "4", restored.Lines[1].Product.ID)
		assert.InDelta(t, 99.99, restored.Lines[0].Product.Price, 0.001)
		assert.True(t, restored.Lines[0].Product.InStock)
	})

	t.Run("Reads the web client's persisted shape", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set("cart", []byte(`[{"product":{"id":"5","name":"Coffee Maker","price":129.99,"image":"","category":"Home","rating":4.7,"inStock":true},"quantity":3}]`)))

		repo := NewCartRepository(store, "cart")
		cart, err := repo.Load()
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, "Coffee Maker", cart.Lines[0].Product.Name)
		assert.Equal(t, 3, cart.Count())
	})

	t.Run("Corrupted record is discarded", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set("cart", []byte("{not json")))

		repo := NewCartRepository(store, "cart")
		cart, err := repo.Load()
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())

		_, err = store.Get("cart")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Invalid lines are dropped", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set("cart", []byte(`[{"product":{"id":"1"},"quantity":0},{"product":{"id":""},"quantity":2},{"product":{"id":"4"},"quantity":1}]`)))

		repo := NewCartRepository(store, "cart")
		cart, err := repo.Load()
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, "4", cart.Lines[0].Product.ID)
	})

	t.Run("Clear removes the record entirely", func(t *testing.T) {
		store := NewMemoryStore()
		repo := NewCartRepository(store, "cart")
		require.NoError(t, repo.Save(&model.Cart{Lines: []model.CartLine{
			{Product: model.Product{ID: "1"}, Quantity: 1},
		}}))

		require.NoError(t, repo.Clear())

		_, err := store.Get("cart")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})
}
