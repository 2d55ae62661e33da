package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"techstore/internal/catalog"
)

type ProductsHandler struct {
	Catalog *catalog.Store
	Delay   Delay
	Log     zerolog.Logger
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/api/products", h.list)
	r.Post("/api/products", h.create)
	r.Get("/api/products/{id}", h.get)
	r.Put("/api/products/{id}", h.update)
	r.Delete("/api/products/{id}", h.delete)
	r.Get("/api/categories", h.categories)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.Filter{Category: q.Get("category"), Search: q.Get("search")}
	writeJSON(w, http.StatusOK, h.Catalog.List(f, catalog.Sort(q.Get("sort"))))
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, catalog.ErrNotFound)
		return
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Categories())
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	if h.Delay.Sleep(r.Context()) {
		h.Log.Info().Dur("delay", h.Delay.Duration).Msg("injected delay on product create")
	}

	var in catalog.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	p, err := h.Catalog.Create(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, catalog.ErrNotFound)
		return
	}
	var patch catalog.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	p, err := h.Catalog.Update(id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, catalog.ErrNotFound)
		return
	}
	p, err := h.Catalog.Delete(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": p})
}
