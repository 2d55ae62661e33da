package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"techstore/internal/checkout"
	"techstore/internal/ledger"
	"techstore/internal/session"
)

type OrdersHandler struct {
	Orders   *ledger.Store
	Checkout *checkout.Coordinator
}

type checkoutReq struct {
	ShippingAddress map[string]any `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/checkout", h.checkout)
	r.Get("/api/orders", h.list)
	r.Get("/api/orders/{id}", h.get)
}

func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	sess, _ := session.FromContext(r.Context())
	order, err := h.Checkout.Checkout(sess.ID, sess.UserID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if sess.UserID == 0 {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return
	}
	writeJSON(w, http.StatusOK, h.Orders.ListByUser(sess.UserID))
}

// get enforces the ownership boundary: the ledger stores orders for
// everyone, so the handler compares the order's owner against the
// session user before releasing it.
func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, ledger.ErrNotFound)
		return
	}
	order, err := h.Orders.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	sess, _ := session.FromContext(r.Context())
	if order.UserID != sess.UserID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, order)
}
