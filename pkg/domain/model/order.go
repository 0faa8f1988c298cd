package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrOrderStatusUnknown = errors.New("unknown order status")

type OrderStatus int

const (
	OrderProcessing OrderStatus = iota
	OrderShipped
	OrderDelivered
	OrderCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderProcessing:
		return "processing"
	case OrderShipped:
		return "shipped"
	case OrderDelivered:
		return "delivered"
	case OrderCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "processing":
		return OrderProcessing, nil
	case "shipped":
		return OrderShipped, nil
	case "delivered":
		return OrderDelivered, nil
	case "cancelled":
		return OrderCancelled, nil
	default:
		return OrderProcessing, fmt.Errorf("%w: %q", ErrOrderStatusUnknown, s)
	}
}

// Order is a read-only projection of a placed order. It is sourced from
// the orders backend and never mutated by this client.
type Order struct {
	ID     string
	Date   time.Time
	Total  float64
	Status OrderStatus
	Items  []CartLine
}
