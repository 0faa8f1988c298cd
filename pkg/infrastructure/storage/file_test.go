package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	t.Run("Missing key", func(t *testing.T) {
		_, err := store.Get("absent")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Roundtrip and overwrite", func(t *testing.T) {
		require.NoError(t, store.Set("auth_token", []byte("tok-1")))
		value, err := store.Get("auth_token")
		require.NoError(t, err)
		assert.Equal(t, []byte("tok-1"), value)

		require.NoError(t, store.Set("auth_token", []byte("tok-2")))
		value, err = store.Get("auth_token")
		require.NoError(t, err)
		assert.Equal(t, []byte("tok-2"), value)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Set("cart", []byte("[]")))
		require.NoError(t, store.Delete("cart"))
		_, err := store.Get("cart")
		assert.ErrorIs(t, err, ErrKeyNotFound)
		assert.NoError(t, store.Delete("cart"))
	})

	t.Run("Path-like keys stay in the state directory", func(t *testing.T) {
		require.NoError(t, store.Set("../escape", []byte("x")))
		value, err := store.Get("../escape")
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), value)
	})
}
