package storage

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/model"
)

// CartRepository persists the cart as one keyed JSON record, the same
// array-of-lines shape the web client kept in local storage.
type CartRepository struct {
	store Store
	key   string
}

func NewCartRepository(store Store, key string) *CartRepository {
	return &CartRepository{store: store, key: key}
}

type productRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
	InStock  bool    `json:"inStock"`
}

type cartLineRecord struct {
	Product  productRecord `json:"product"`
	Quantity int           `json:"quantity"`
}

// Load restores the persisted cart. A missing record means an empty
// cart. A record that fails to decode is discarded with a warning and
// the cart starts empty; lines with an invalid quantity or product id
// are dropped individually.
func (r *CartRepository) Load() (*model.Cart, error) {
	data, err := r.store.Get(r.key)
	if err != nil {
		if pkgerrors.Is(err, ErrKeyNotFound) {
			return &model.Cart{}, nil
		}
		return nil, err
	}

	var records []cartLineRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.WithError(err).WithField("key", r.key).Warn("discarding corrupted cart record")
		if err := r.store.Delete(r.key); err != nil {
			log.WithError(err).Warn("failed to delete corrupted cart record")
		}
		return &model.Cart{}, nil
	}

	cart := &model.Cart{}
	for _, record := range records {
		if record.Product.ID == "" || record.Quantity < 1 {
			log.WithFields(log.Fields{
				"productId": record.Product.ID,
				"quantity":  record.Quantity,
			}).Warn("dropping invalid persisted cart line")
			continue
		}
		cart.Lines = append(cart.Lines, model.CartLine{
			Product:  toProduct(record.Product),
			Quantity: record.Quantity,
		})
	}
	return cart, nil
}

func (r *CartRepository) Save(cart *model.Cart) error {
	records := make([]cartLineRecord, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		records = append(records, cartLineRecord{
			Product:  toProductRecord(line.Product),
			Quantity: line.Quantity,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to encode cart record")
	}
	return r.store.Set(r.key, data)
}

func (r *CartRepository) Clear() error {
	return r.store.Delete(r.key)
}

func toProduct(record productRecord) model.Product {
	return model.Product{
		ID:       record.ID,
		Name:     record.Name,
		Price:    record.Price,
		Image:    record.Image,
		Category: record.Category,
		Rating:   record.Rating,
		InStock:  record.InStock,
	}
}

func toProductRecord(product model.Product) productRecord {
	return productRecord{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Image:    product.Image,
		Category: product.Category,
		Rating:   product.Rating,
		InStock:  product.InStock,
	}
}
