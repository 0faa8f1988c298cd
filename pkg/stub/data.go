package stub

type product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
	InStock  bool    `json:"inStock"`
}

type cartLine struct {
	Product  product `json:"product"`
	Quantity int     `json:"quantity"`
}

type order struct {
	ID     string     `json:"id"`
	Date   string     `json:"date"`
	Total  float64    `json:"total"`
	Status string     `json:"status"`
	Items  []cartLine `json:"items"`
}

var demoProducts = []product{
	{ID: "1", Name: "Wireless Headphones", Price: 99.99, Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop", Category: "Electronics", Rating: 4.5, InStock: true},
	{ID: "2", Name: "Smart Watch", Price: 249.99, Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&h=500&fit=crop", Category: "Electronics", Rating: 4.8, InStock: true},
	{ID: "3", Name: "Running Shoes", Price: 79.99, Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500&h=500&fit=crop", Category: "Fashion", Rating: 4.6, InStock: true},
	{ID: "4", Name: "Laptop Backpack", Price: 49.99, Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500&h=500&fit=crop", Category: "Accessories", Rating: 4.4, InStock: true},
	{ID: "5", Name: "Coffee Maker", Price: 129.99, Image: "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6?w=500&h=500&fit=crop", Category: "Home", Rating: 4.7, InStock: true},
	{ID: "6", Name: "Yoga Mat", Price: 29.99, Image: "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=500&h=500&fit=crop", Category: "Sports", Rating: 4.3, InStock: true},
}

var demoOrders = []order{
	{
		ID:     "ORD-001",
		Date:   "2024-10-28",
		Total:  179.98,
		Status: "delivered",
		Items: []cartLine{
			{Product: demoProducts[0], Quantity: 1},
			{Product: demoProducts[3], Quantity: 1},
		},
	},
}
