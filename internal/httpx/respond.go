package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"techstore/internal/cart"
	"techstore/internal/catalog"
	"techstore/internal/checkout"
	"techstore/internal/directory"
	"techstore/internal/ledger"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a store/coordinator error kind to its status code and
// emits the source app's {"error": "..."} body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrMissingFields),
		errors.Is(err, directory.ErrMissingFields),
		errors.Is(err, checkout.ErrMissingFields),
		errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrNotAuthenticated),
		errors.Is(err, directory.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, checkout.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, directory.ErrNotFound),
		errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, checkout.ErrUserNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicateName):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
