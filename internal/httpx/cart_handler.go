package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"techstore/internal/cart"
	"techstore/internal/session"
)

type CartHandler struct {
	Carts *cart.Store
}

type addItemReq struct {
	ProductID int  `json:"productId"`
	Quantity  *int `json:"quantity"`
}

type setQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Get("/api/cart", h.get)
	r.Post("/api/cart", h.add)
	r.Put("/api/cart/{productId}", h.setQuantity)
	r.Delete("/api/cart/{productId}", h.remove)
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	writeJSON(w, http.StatusOK, h.Carts.Get(sess.ID))
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	sess, _ := session.FromContext(r.Context())
	items, err := h.Carts.Add(sess.ID, req.ProductID, qty)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "cart": items})
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, cart.ErrItemNotFound)
		return
	}
	var req setQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	sess, _ := session.FromContext(r.Context())
	items, err := h.Carts.SetQuantity(sess.ID, productID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "cart": items})
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, cart.ErrCartNotFound)
		return
	}
	sess, _ := session.FromContext(r.Context())
	items, err := h.Carts.Remove(sess.ID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "cart": items})
}
