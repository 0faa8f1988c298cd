package service

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/model"
)

// CartService maintains the shopping cart and keeps it durable across
// restarts. Every mutation persists the full cart before returning, so a
// later request that triggers a re-authentication redirect can never
// observe an unsaved mutation. Persistence itself is best-effort: a
// failed write keeps the in-memory mutation and is only logged.
type CartService interface {
	AddItem(product model.Product, quantity int) error
	RemoveItem(productID string) error
	Clear() error
	Lines() []model.CartLine
	Count() int
	Total() float64
}

// NewCartService restores the persisted cart, if any. A missing or
// discarded record yields an empty cart.
func NewCartService(repo model.CartRepository, dispatcher EventDispatcher) (CartService, error) {
	cart, err := repo.Load()
	if err != nil {
		return nil, err
	}
	return &cartService{repo: repo, dispatcher: dispatcher, cart: cart}, nil
}

type cartService struct {
	repo       model.CartRepository
	dispatcher EventDispatcher

	mu   sync.Mutex
	cart *model.Cart
}

func (s *cartService) AddItem(product model.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Add(product, quantity); err != nil {
		return err
	}
	s.persist()

	line, _ := s.cart.Find(product.ID)
	_ = s.dispatcher.Dispatch(model.CartItemAdded{
		ProductID:   product.ID,
		Quantity:    quantity,
		NewQuantity: line.Quantity,
	})
	return nil
}

func (s *cartService) RemoveItem(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Remove(productID) {
		return nil
	}
	s.persist()
	_ = s.dispatcher.Dispatch(model.CartItemRemoved{ProductID: productID})
	return nil
}

// Clear empties the cart and deletes the persisted record entirely, as
// opposed to writing an empty one.
func (s *cartService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = &model.Cart{}
	if err := s.repo.Clear(); err != nil {
		log.WithError(err).Warn("failed to remove persisted cart record")
	}
	_ = s.dispatcher.Dispatch(model.CartCleared{})
	return nil
}

func (s *cartService) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]model.CartLine, len(s.cart.Lines))
	copy(lines, s.cart.Lines)
	return lines
}

func (s *cartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

func (s *cartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// persist writes the full cart under s.mu, last write wins.
func (s *cartService) persist() {
	if err := s.repo.Save(s.cart); err != nil {
		log.WithError(err).Warn("cart persistence failed, in-memory state retained")
	}
}
