package storage

import "errors"

var ErrKeyNotFound = errors.New("storage: key not found")

// Store is a durable keyed record store, the client-side equivalent of
// browser local storage. Absence of a key is meaningful (an absent cart
// record means "empty cart") and is reported as ErrKeyNotFound.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
