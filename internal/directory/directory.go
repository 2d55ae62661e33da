package directory

import (
	"errors"
	"sync"
)

// User records are served verbatim, password included. This is a demo
// storefront: the credentials are part of the fixture surface, not a
// secret, and hashing is deliberately left out.
type User struct {
	ID       int            `json:"id"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Name     string         `json:"name"`
	Address  map[string]any `json:"address"`
	Controls map[string]any `json:"controls"`
}

var (
	ErrNotFound           = errors.New("user not found")
	ErrMissingFields      = errors.New("email, password, and name are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type CreateInput struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Name     string         `json:"name"`
	Address  map[string]any `json:"address"`
	Controls map[string]any `json:"controls"`
}

// Patch carries a partial update: nil fields are left untouched.
type Patch struct {
	Email    *string         `json:"email"`
	Password *string         `json:"password"`
	Name     *string         `json:"name"`
	Address  *map[string]any `json:"address"`
	Controls *map[string]any `json:"controls"`
}

// Store owns the registered users for the lifetime of the process.
// Deleting a user does not cascade: historical orders keep their userId.
type Store struct {
	mu    sync.RWMutex
	users []User
}

func New(seed []User) *Store {
	s := &Store{users: make([]User, len(seed))}
	copy(s.users, seed)
	return s
}

func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) Get(id int) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// Authenticate resolves a user by exact email+password match.
func (s *Store) Authenticate(email, password string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return User{}, ErrInvalidCredentials
}

// Create inserts a new user. There is no duplicate-email check; the
// storefront allows it. Address and controls default to empty maps.
func (s *Store) Create(in CreateInput) (User, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return User{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := User{
		ID:       s.nextID(),
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Address:  in.Address,
		Controls: in.Controls,
	}
	if u.Address == nil {
		u.Address = map[string]any{}
	}
	if u.Controls == nil {
		u.Controls = map[string]any{}
	}
	s.users = append(s.users, u)
	return u, nil
}

// Update overwrites only the fields present in the patch.
func (s *Store) Update(id int, patch Patch) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Password != nil {
			u.Password = *patch.Password
		}
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Address != nil {
			u.Address = *patch.Address
		}
		if patch.Controls != nil {
			u.Controls = *patch.Controls
		}
		return *u, nil
	}
	return User{}, ErrNotFound
}

// Delete removes the user and returns the deleted record.
func (s *Store) Delete(id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// caller must hold s.mu
func (s *Store) nextID() int {
	max := 0
	for _, u := range s.users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}
