package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techstore/internal/cart"
	"techstore/internal/catalog"
	"techstore/internal/checkout"
	"techstore/internal/directory"
	"techstore/internal/ledger"
	"techstore/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	products := catalog.New([]catalog.Product{
		{ID: 1, Name: "Widget", Description: "A basic widget", Price: 10, Category: "tools", Stock: 5},
		{ID: 2, Name: "Gadget", Description: "Shiny gadget", Price: 25.5, Category: "toys", Stock: 3},
	})
	users := directory.New([]directory.User{
		{ID: 1, Email: "test@example.com", Password: "password123", Name: "Test User", Controls: map[string]any{}},
		{ID: 2, Email: "blocked@example.com", Password: "password123", Name: "Blocked", Controls: map[string]any{"canCheckout": false}},
	})
	carts := cart.New(products)
	orders := ledger.New()
	coord := checkout.New(users, carts, orders, zerolog.Nop())
	sessions := session.NewManager()

	r := NewRouter(sessions)
	(&ProductsHandler{Catalog: products, Log: zerolog.Nop()}).Register(r)
	(&UsersHandler{Users: users}).Register(r)
	(&AuthHandler{Users: users, Sessions: sessions}).Register(r)
	(&CartHandler{Carts: carts}).Register(r)
	(&OrdersHandler{Orders: orders, Checkout: coord}).Register(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func do(t *testing.T, c *http.Client, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func login(t *testing.T, c *http.Client, baseURL, email string) {
	t.Helper()
	resp, _ := do(t, c, http.MethodPost, baseURL+"/api/auth/login", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProductCRUDStatuses(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	resp, body := do(t, c, http.MethodPost, ts.URL+"/api/products", map[string]any{"name": "NoPrice", "category": "tools"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, _ = do(t, c, http.MethodPost, ts.URL+"/api/products", map[string]any{"name": "WIDGET", "price": 5, "category": "tools"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = do(t, c, http.MethodPost, ts.URL+"/api/products", map[string]any{"name": "Doohickey", "price": 5, "category": "tools"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(3), body["id"])
	assert.Equal(t, catalog.DefaultImage, body["image"])

	resp, _ = do(t, c, http.MethodPut, ts.URL+"/api/products/99", map[string]any{"price": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, c, http.MethodDelete, ts.URL+"/api/products/3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	deleted := body["product"].(map[string]any)
	assert.Equal(t, "Doohickey", deleted["name"])
}

func TestAuthMeRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	resp, _ := do(t, c, http.MethodGet, ts.URL+"/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	login(t, c, ts.URL, "test@example.com")

	resp, body := do(t, c, http.MethodGet, ts.URL+"/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "test@example.com", body["email"])
	_, hasPassword := body["password"]
	assert.False(t, hasPassword, "identity payload carries no password")

	resp, _ = do(t, c, http.MethodPost, ts.URL+"/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, c, http.MethodGet, ts.URL+"/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCartAndCheckoutFlow(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	// quantity defaults to 1; adding twice accumulates
	resp, _ := do(t, c, http.MethodPost, ts.URL+"/api/cart", map[string]any{"productId": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body := do(t, c, http.MethodPost, ts.URL+"/api/cart", map[string]any{"productId": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["cart"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(3), items[0].(map[string]any)["quantity"])

	// cannot check out before logging in
	payload := map[string]any{
		"shippingAddress": map[string]any{"address": "123 Main St"},
		"paymentMethod":   "credit-card",
	}
	resp, _ = do(t, c, http.MethodPost, ts.URL+"/api/checkout", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	login(t, c, ts.URL, "test@example.com")

	resp, _ = do(t, c, http.MethodPost, ts.URL+"/api/checkout", map[string]any{"paymentMethod": "credit-card"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, c, http.MethodPost, ts.URL+"/api/checkout", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := body["order"].(map[string]any)
	assert.Equal(t, float64(1), order["id"])
	assert.Equal(t, 30.0, order["total"])
	assert.Equal(t, "pending", order["status"])

	// cart is empty after a successful checkout
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/cart", nil)
	require.NoError(t, err)
	cartResp, err := c.Do(req)
	require.NoError(t, err)
	defer cartResp.Body.Close()
	var cartItems []any
	require.NoError(t, json.NewDecoder(cartResp.Body).Decode(&cartItems))
	assert.Empty(t, cartItems)

	// checkout again: empty cart
	resp, _ = do(t, c, http.MethodPost, ts.URL+"/api/checkout", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutForbiddenForBlockedUser(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	login(t, c, ts.URL, "blocked@example.com")
	resp, _ := do(t, c, http.MethodPost, ts.URL+"/api/cart", map[string]any{"productId": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, c, http.MethodPost, ts.URL+"/api/checkout", map[string]any{
		"shippingAddress": map[string]any{"address": "456 Oak Ave"},
		"paymentMethod":   "paypal",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// denial leaves the cart intact
	_, body := do(t, c, http.MethodPost, ts.URL+"/api/cart", map[string]any{"productId": 2})
	items := body["cart"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]any)["quantity"])
}

func TestOrderOwnership(t *testing.T) {
	ts := newTestServer(t)

	owner := newClient(t)
	login(t, owner, ts.URL, "test@example.com")
	resp, _ := do(t, owner, http.MethodPost, ts.URL+"/api/cart", map[string]any{"productId": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, owner, http.MethodPost, ts.URL+"/api/checkout", map[string]any{
		"shippingAddress": map[string]any{"address": "123 Main St"},
		"paymentMethod":   "credit-card",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, owner, http.MethodGet, ts.URL+"/api/orders/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	other := newClient(t)
	login(t, other, ts.URL, "blocked@example.com")
	resp, _ = do(t, other, http.MethodGet, ts.URL+"/api/orders/1", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	anon := newClient(t)
	resp, _ = do(t, anon, http.MethodGet, ts.URL+"/api/orders/1", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, other, http.MethodGet, ts.URL+"/api/orders/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, anon, http.MethodGet, ts.URL+"/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
