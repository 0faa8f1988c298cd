package model

import "errors"

var (
	ErrQuantityInvalid = errors.New("quantity must be at least 1")
	ErrProductIDEmpty  = errors.New("product id must not be empty")
)

// Product is a catalog entry. It is sourced from the catalog backend and
// never mutated here. Price is the decimal unit price as served by the
// API; this client does no money arithmetic beyond display totals.
type Product struct {
	ID       string
	Name     string
	Price    float64
	Image    string
	Category string
	Rating   float64
	InStock  bool
}

// CartLine pairs a product with a quantity. Quantity is always >= 1; a
// line that would drop to zero is removed instead.
type CartLine struct {
	Product  Product
	Quantity int
}

// Cart is an ordered sequence of lines, at most one per product id.
// Insertion order is significant for display only.
type Cart struct {
	Lines []CartLine
}

// Add merges quantity into an existing line for the same product id,
// keeping its ordinal position, or appends a new line at the end.
func (c *Cart) Add(product Product, quantity int) error {
	if product.ID == "" {
		return ErrProductIDEmpty
	}
	if quantity < 1 {
		return ErrQuantityInvalid
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == product.ID {
			c.Lines[i].Quantity += quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, CartLine{Product: product, Quantity: quantity})
	return nil
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op and reported via the return value.
func (c *Cart) Remove(productID string) bool {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Find(productID string) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.Product.ID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}

// Count is the sum of all line quantities. It is recomputed on every
// call so it cannot drift from the line list.
func (c *Cart) Count() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// CartRepository persists the full cart as a single keyed record.
// Load returns an empty cart when no record exists. Clear removes the
// record entirely rather than writing an empty one.
type CartRepository interface {
	Load() (*Cart, error)
	Save(cart *Cart) error
	Clear() error
}
