package api

import (
	"context"

	"storefront/pkg/domain/model"
	"storefront/pkg/infrastructure/transport"
)

type CatalogAPI struct {
	client *transport.Client
}

func NewCatalogAPI(client *transport.Client) *CatalogAPI {
	return &CatalogAPI{client: client}
}

type productPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
	InStock  bool    `json:"inStock"`
}

type ProductFilter struct {
	ListOptions
	Category string
}

type ProductPage struct {
	Products []model.Product
	Total    int
	Page     int
	Limit    int
}

func (a *CatalogAPI) ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	query := filter.query()
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}

	var payload envelope[page[productPayload]]
	if err := a.client.Get(ctx, "/products", query, &payload); err != nil {
		return nil, err
	}

	result := &ProductPage{
		Products: make([]model.Product, 0, len(payload.Data.Data)),
		Total:    payload.Data.Total,
		Page:     payload.Data.Page,
		Limit:    payload.Data.Limit,
	}
	for _, p := range payload.Data.Data {
		result.Products = append(result.Products, toModelProduct(p))
	}
	return result, nil
}

func (a *CatalogAPI) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	var payload envelope[productPayload]
	if err := a.client.Get(ctx, "/products/"+productID, nil, &payload); err != nil {
		return model.Product{}, err
	}
	return toModelProduct(payload.Data), nil
}

func toModelProduct(p productPayload) model.Product {
	return model.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		Rating:   p.Rating,
		InStock:  p.InStock,
	}
}
