package api

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"storefront/pkg/domain/model"
	"storefront/pkg/infrastructure/transport"
)

const orderDateLayout = "2006-01-02"

type OrdersAPI struct {
	client *transport.Client
}

func NewOrdersAPI(client *transport.Client) *OrdersAPI {
	return &OrdersAPI{client: client}
}

type cartLinePayload struct {
	Product  productPayload `json:"product"`
	Quantity int            `json:"quantity"`
}

type orderPayload struct {
	ID     string            `json:"id"`
	Date   string            `json:"date"`
	Total  float64           `json:"total"`
	Status string            `json:"status"`
	Items  []cartLinePayload `json:"items"`
}

type OrderFilter struct {
	ListOptions
	Status string
}

type OrderPage struct {
	Orders []model.Order
	Total  int
	Page   int
	Limit  int
}

func (a *OrdersAPI) ListOrders(ctx context.Context, patientID string, filter OrderFilter) (*OrderPage, error) {
	query := filter.query()
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var payload envelope[page[orderPayload]]
	if err := a.client.Get(ctx, "/patients/"+patientID+"/orders", query, &payload); err != nil {
		return nil, err
	}

	result := &OrderPage{
		Orders: make([]model.Order, 0, len(payload.Data.Data)),
		Total:  payload.Data.Total,
		Page:   payload.Data.Page,
		Limit:  payload.Data.Limit,
	}
	for _, p := range payload.Data.Data {
		order, err := toModelOrder(p)
		if err != nil {
			return nil, err
		}
		result.Orders = append(result.Orders, order)
	}
	return result, nil
}

func (a *OrdersAPI) GetOrder(ctx context.Context, orderID string) (model.Order, error) {
	var payload envelope[orderPayload]
	if err := a.client.Get(ctx, "/orders/"+orderID, nil, &payload); err != nil {
		return model.Order{}, err
	}
	return toModelOrder(payload.Data)
}

func toModelOrder(p orderPayload) (model.Order, error) {
	status, err := model.ParseOrderStatus(p.Status)
	if err != nil {
		return model.Order{}, errors.Wrapf(err, "order %s", p.ID)
	}
	date, err := time.Parse(orderDateLayout, p.Date)
	if err != nil {
		return model.Order{}, errors.Wrapf(err, "order %s has malformed date %q", p.ID, p.Date)
	}

	items := make([]model.CartLine, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, model.CartLine{
			Product:  toModelProduct(item.Product),
			Quantity: item.Quantity,
		})
	}
	return model.Order{
		ID:     p.ID,
		Date:   date,
		Total:  p.Total,
		Status: status,
		Items:  items,
	}, nil
}
