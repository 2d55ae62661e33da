package catalog

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultImage is used when a product is created without an image reference.
const DefaultImage = "https://via.placeholder.com/300x200?text=Product"

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
}

var (
	ErrNotFound      = errors.New("product not found")
	ErrMissingFields = errors.New("name, price, and category are required fields")
	ErrDuplicateName = errors.New("product name is already in use")
)

type Sort string

const (
	SortNone      Sort = ""
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortName      Sort = "name"
)

// Filter narrows a listing. Category is an exact match; Search is a
// case-insensitive substring match against name or description.
type Filter struct {
	Category string
	Search   string
}

type CreateInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       *int    `json:"stock"`
}

// Patch carries a partial update: nil fields are left untouched.
type Patch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
}

// Store owns the mutable product set for the lifetime of the process.
// Insertion order is preserved; ids are assigned max+1 and never swapped.
type Store struct {
	mu       sync.RWMutex
	products []Product
}

func New(seed []Product) *Store {
	s := &Store{products: make([]Product, len(seed))}
	copy(s.products, seed)
	return s
}

// List returns the products matching f, sorted per sortBy. Filters apply
// before sort; with no filter and SortNone the result is a copy in
// insertion order.
func (s *Store) List(f Filter, sortBy Sort) []Product {
	s.mu.RLock()
	out := make([]Product, 0, len(s.products))
	search := strings.ToLower(f.Search)
	for _, p := range s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	s.mu.RUnlock()

	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		// collators keep per-call buffers, so build one per sort
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Name, out[j].Name) < 0 })
	}
	return out
}

func (s *Store) Get(id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Categories returns the distinct category labels, first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool, len(s.products))
	out := make([]string, 0, len(s.products))
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Create validates, checks the name for a case-insensitive clash, and
// inserts under one lock acquisition so concurrent creates cannot race
// to the same id or both pass the duplicate check.
func (s *Store) Create(in CreateInput) (Product, error) {
	if in.Name == "" || in.Price == 0 || in.Category == "" {
		return Product{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if strings.EqualFold(p.Name, in.Name) {
			return Product{}, ErrDuplicateName
		}
	}

	p := Product{
		ID:          s.nextID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
	}
	if p.Image == "" {
		p.Image = DefaultImage
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	s.products = append(s.products, p)
	return p, nil
}

// Update overwrites only the fields present in the patch.
func (s *Store) Update(id int, patch Patch) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Image != nil {
			p.Image = *patch.Image
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		return *p, nil
	}
	return Product{}, ErrNotFound
}

// Delete removes the product and returns the deleted record. Hard delete,
// no tombstone.
func (s *Store) Delete(id int) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// caller must hold s.mu
func (s *Store) nextID() int {
	max := 0
	for _, p := range s.products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
