package ledger

import (
	"errors"
	"sync"
	"time"
)

// StatusPending is the only status an order ever holds here; no further
// transitions are modeled.
const StatusPending = "pending"

// Line is an order line item frozen at checkout. It is never re-derived
// from the catalog afterward.
type Line struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID              int            `json:"id"`
	UserID          int            `json:"userId"`
	Items           []Line         `json:"items"`
	Total           float64        `json:"total"`
	ShippingAddress map[string]any `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	Status          string         `json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`
}

var ErrNotFound = errors.New("order not found")

// Store is the append-only order ledger. Orders are never mutated or
// deleted, so count+1 ids stay monotonic for the process lifetime.
type Store struct {
	mu     sync.RWMutex
	orders []Order
}

func New() *Store { return &Store{} }

// Append assigns the next sequence id and stores the order.
func (s *Store) Append(o Order) Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = len(s.orders) + 1
	s.orders = append(s.orders, o)
	return o
}

func (s *Store) Get(id int) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// ListByUser returns the user's orders in insertion order. Ownership
// checks on single-order reads stay with the caller.
func (s *Store) ListByUser(userID int) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, 4)
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}
