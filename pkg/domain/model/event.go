package model

type SessionResolved struct {
	Authenticated bool
	UserID        string
}

func (e SessionResolved) Type() string { return "SessionResolved" }

type SignInRedirected struct {
	RedirectURL string
}

func (e SignInRedirected) Type() string { return "SignInRedirected" }

type SignOutRedirected struct {
	RedirectURL string
}

func (e SignOutRedirected) Type() string { return "SignOutRedirected" }

type CartItemAdded struct {
	ProductID   string
	Quantity    int
	NewQuantity int
}

func (e CartItemAdded) Type() string { return "CartItemAdded" }

type CartItemRemoved struct {
	ProductID string
}

func (e CartItemRemoved) Type() string { return "CartItemRemoved" }

type CartCleared struct{}

func (e CartCleared) Type() string { return "CartCleared" }
