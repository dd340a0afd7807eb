package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeStore is a minimal storefront API: one user, a product table and the
// user's cart.
type fakeStore struct {
	mu       sync.Mutex
	token    string
	products map[string]map[string]any
	cart     map[string]int
	order    []string
	requests []string
}

func newFakeStore(t *testing.T) (*fakeStore, *httptest.Server) {
	t.Helper()
	fs := &fakeStore{
		token: "TOK",
		products: map[string]map[string]any{
			"p1": {"_id": "p1", "name": "Lamp", "price": 10.0, "stock": 3, "isPublic": true, "description": "<b>Warm</b> light"},
			"p2": {"_id": "p2", "name": "Mug", "price": 4.5, "stock": 0, "isPublic": true},
		},
		cart: map[string]int{},
	}
	srv := httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeStore) Requests() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.requests...)
}

func reply(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, data any) {
	reply(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (fs *fakeStore) cartView() map[string]any {
	items := []any{}
	total, count := 0.0, 0
	for _, id := range fs.order {
		q, ok := fs.cart[id]
		if !ok {
			continue
		}
		p := fs.products[id]
		price := p["price"].(float64)
		items = append(items, map[string]any{"product": p, "price": price, "quantity": q})
		total += price * float64(q)
		count += q
	}
	return map[string]any{"_id": "c1", "items": items, "totalItems": count, "totalPrice": total}
}

func (fs *fakeStore) serve(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	authed := r.Header.Get("Authorization") == "Bearer "+fs.token
	fs.requests = append(fs.requests, r.Method+" "+r.URL.Path+" auth="+map[bool]string{true: "yes", false: "no"}[authed])

	user := map[string]any{"_id": "u1", "name": "Ann", "email": "a@b.c"}
	path := r.URL.Path

	switch {
	case r.Method == http.MethodPost && path == "/api/auth/login":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret1" {
			reply(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
			return
		}
		data := map[string]any{"token": fs.token}
		for k, v := range user {
			data[k] = v
		}
		ok(w, data)
		return
	case path == "/api/products" && r.Method == http.MethodGet:
		ok(w, []any{fs.products["p1"], fs.products["p2"]})
		return
	case strings.HasPrefix(path, "/api/products/") && r.Method == http.MethodGet:
		p, found := fs.products[strings.TrimPrefix(path, "/api/products/")]
		if !found {
			reply(w, http.StatusNotFound, map[string]any{"success": false, "message": "Product not found"})
			return
		}
		ok(w, p)
		return
	}

	if !authed {
		reply(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Not authorized"})
		return
	}

	switch {
	case path == "/api/auth/me":
		ok(w, user)
	case path == "/api/cart":
		ok(w, fs.cartView())
	case path == "/api/cart/add":
		var body struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, seen := fs.cart[body.ProductID]; !seen {
			fs.order = append(fs.order, body.ProductID)
		}
		fs.cart[body.ProductID] += body.Quantity
		ok(w, fs.cartView())
	case strings.HasPrefix(path, "/api/cart/update/"):
		var body struct {
			Quantity int `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		fs.cart[strings.TrimPrefix(path, "/api/cart/update/")] = body.Quantity
		ok(w, fs.cartView())
	case strings.HasPrefix(path, "/api/cart/remove/"):
		delete(fs.cart, strings.TrimPrefix(path, "/api/cart/remove/"))
		ok(w, fs.cartView())
	case path == "/api/cart/clear":
		fs.cart = map[string]int{}
		ok(w, fs.cartView())
	case path == "/api/products/my/products":
		ok(w, []any{fs.products["p1"]})
	default:
		reply(w, http.StatusNotFound, map[string]any{"success": false, "message": "Route not found"})
	}
}
