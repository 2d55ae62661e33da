// Package checkout converts a session's cart into an immutable order.
package checkout

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"techstore/internal/cart"
	"techstore/internal/directory"
	"techstore/internal/ledger"
	"techstore/internal/rules"
)

// ControlCheckout is the boolean control gating checkout. Only an explicit
// denial blocks: a user with no policy configured may still check out.
const ControlCheckout = "canCheckout"

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotAuthenticated = errors.New("please login to checkout")
	ErrUserNotFound     = errors.New("user not found")
	ErrForbidden        = errors.New("you are not authorized to checkout")
	ErrMissingFields    = errors.New("missing required fields")
)

type Coordinator struct {
	users  *directory.Store
	carts  *cart.Store
	orders *ledger.Store
	log    zerolog.Logger
}

func New(users *directory.Store, carts *cart.Store, orders *ledger.Store, log zerolog.Logger) *Coordinator {
	return &Coordinator{users: users, carts: carts, orders: orders, log: log}
}

// Checkout runs the gate sequence and, if every gate passes, appends an
// order and clears the cart. userID zero means no authenticated user.
// The whole sequence runs inside the cart store's critical section for
// this session, so the cart cannot change between the read and the clear,
// and the order append happens before the clear. The first failing gate's
// error is returned with the cart left untouched.
func (c *Coordinator) Checkout(sessionID string, userID int, shippingAddress map[string]any, paymentMethod string) (ledger.Order, error) {
	var placed ledger.Order
	err := c.carts.Transact(sessionID, func(items []cart.Item) error {
		if len(items) == 0 {
			return ErrEmptyCart
		}
		if userID == 0 {
			return ErrNotAuthenticated
		}
		user, err := c.users.Get(userID)
		if err != nil {
			return ErrUserNotFound
		}
		if rules.Evaluate(&user, ControlCheckout) == rules.Denied {
			c.log.Warn().Int("user_id", userID).Msg("checkout denied by control")
			return ErrForbidden
		}
		if shippingAddress == nil || paymentMethod == "" {
			return ErrMissingFields
		}

		total := 0.0
		lines := make([]ledger.Line, 0, len(items))
		for _, it := range items {
			total += it.Product.Price * float64(it.Quantity)
			lines = append(lines, ledger.Line{
				ProductID:   it.ProductID,
				ProductName: it.Product.Name,
				Quantity:    it.Quantity,
				Price:       it.Product.Price,
			})
		}

		placed = c.orders.Append(ledger.Order{
			UserID:          userID,
			Items:           lines,
			Total:           total,
			ShippingAddress: shippingAddress,
			PaymentMethod:   paymentMethod,
			Status:          ledger.StatusPending,
			CreatedAt:       time.Now().UTC(),
		})
		// returning nil lets Transact clear the cart; the order is
		// already appended at this point
		return nil
	})
	if err != nil {
		return ledger.Order{}, err
	}

	c.log.Info().
		Int("order_id", placed.ID).
		Int("user_id", userID).
		Float64("total", placed.Total).
		Msg("order placed")
	return placed, nil
}
