package cart

import (
	"errors"
	"sync"

	"techstore/internal/catalog"
)

// Item is one cart line. Product is a snapshot taken when the line was
// last added: totals use the snapshot price, so a later catalog edit does
// not reprice what is already in the cart.
type Item struct {
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   catalog.Product `json:"product"`
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not found in cart")
)

// Store keys one cart per session id. A session with no entry reads as an
// empty cart.
type Store struct {
	mu       sync.RWMutex
	products *catalog.Store
	carts    map[string][]Item
}

func New(products *catalog.Store) *Store {
	return &Store{products: products, carts: make(map[string][]Item)}
}

func (s *Store) Get(sessionID string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyItems(s.carts[sessionID])
}

// Add resolves the product and either bumps the existing line's quantity
// or appends a new line. On an existing line the snapshot is refreshed to
// the current product record.
func (s *Store) Add(sessionID string, productID, qty int) ([]Item, error) {
	p, err := s.products.Get(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[sessionID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += qty
			items[i].Product = p
			return copyItems(items), nil
		}
	}
	items = append(items, Item{ProductID: productID, Quantity: qty, Product: p})
	s.carts[sessionID] = items
	return copyItems(items), nil
}

// SetQuantity replaces (not adds to) the stored quantity. A quantity of
// zero or less removes the line instead of storing it.
func (s *Store) SetQuantity(sessionID string, productID, qty int) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.carts[sessionID]
	if !ok {
		return nil, ErrCartNotFound
	}
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			items = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity = qty
		}
		s.carts[sessionID] = items
		return copyItems(items), nil
	}
	return nil, ErrItemNotFound
}

// Remove drops the product's line. Removing a product that is not in an
// existing cart is a no-op success; only a missing cart is an error.
func (s *Store) Remove(sessionID string, productID int) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.carts[sessionID]
	if !ok {
		return nil, ErrCartNotFound
	}
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	s.carts[sessionID] = kept
	return copyItems(kept), nil
}

// Clear deletes the session's cart entry entirely.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Transact runs fn over a copy of the session's items while holding the
// store lock, and clears the cart only after fn returns nil. This is the
// checkout critical section: no concurrent mutation of the cart can slip
// between the read, the order append inside fn, and the clear. On error
// the cart is left untouched.
func (s *Store) Transact(sessionID string, fn func(items []Item) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(copyItems(s.carts[sessionID])); err != nil {
		return err
	}
	delete(s.carts, sessionID)
	return nil
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
