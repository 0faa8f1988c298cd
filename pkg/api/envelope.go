package api

import (
	"net/url"
	"strconv"
)

// envelope is the backend's `{data, message}` wrapper. Decoding it here
// keeps the rest of the client free of the nested `data.data` shape.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// page is the backend's paginated list shape.
type page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) query() url.Values {
	values := url.Values{}
	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	return values
}

type messagePayload struct {
	Message string `json:"message"`
}
