package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/vibecart/internal/client/broadcast"
	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/dmitrijs2005/vibecart/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/vibecart/internal/client/storage"
	"github.com/dmitrijs2005/vibecart/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

// fakeClient implements client.Client. Each method returns its Ret/Err
// fields and records the token it was called with.
type fakeClient struct {
	mu    sync.Mutex
	calls []string
	// tokens[i] is the credential passed to calls[i]
	tokens []string

	SignupRet *models.AuthPayload
	SignupErr error
	LoginRet  *models.AuthPayload
	LoginErr  error
	MeRet     *models.User
	MeErr     error
	ProfRet   *models.User
	ProfErr   error

	ProductsRet []models.Product
	ProductsErr error
	ProductRet  *models.Product
	ProductErr  error
	MineRet     []models.Product
	MineErr     error
	DeleteErr   error

	CartRet *models.Cart
	CartErr error

	// LastQuantity is the quantity of the last add/update call.
	LastQuantity int

	UploadRet  []models.UploadedImage
	UploadErr  error
	LastUpload []client.UploadFile
}

func (f *fakeClient) record(name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.tokens = append(f.tokens, token)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

func (f *fakeClient) Signup(ctx context.Context, name, email, password string) (*models.AuthPayload, error) {
	f.record("Signup", "")
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	f.record("Login", "")
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Me(ctx context.Context, token string) (*models.User, error) {
	f.record("Me", token)
	return f.MeRet, f.MeErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, token, name, email string) (*models.User, error) {
	f.record("UpdateProfile", token)
	return f.ProfRet, f.ProfErr
}

func (f *fakeClient) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	f.record("ListProducts", token)
	return f.ProductsRet, f.ProductsErr
}

func (f *fakeClient) GetProduct(ctx context.Context, token, id string) (*models.Product, error) {
	f.record("GetProduct", token)
	return f.ProductRet, f.ProductErr
}

func (f *fakeClient) MyProducts(ctx context.Context, token string) ([]models.Product, error) {
	f.record("MyProducts", token)
	return f.MineRet, f.MineErr
}

func (f *fakeClient) CreateProduct(ctx context.Context, token string, in models.ProductInput) (*models.Product, error) {
	f.record("CreateProduct", token)
	return f.ProductRet, f.ProductErr
}

func (f *fakeClient) UpdateProduct(ctx context.Context, token, id string, in models.ProductInput) (*models.Product, error) {
	f.record("UpdateProduct", token)
	return f.ProductRet, f.ProductErr
}

func (f *fakeClient) DeleteProduct(ctx context.Context, token, id string) error {
	f.record("DeleteProduct", token)
	return f.DeleteErr
}

func (f *fakeClient) cart() (*models.Cart, error) {
	if f.CartErr != nil {
		return nil, f.CartErr
	}
	return f.CartRet.Clone(), nil
}

func (f *fakeClient) GetCart(ctx context.Context, token string) (*models.Cart, error) {
	f.record("GetCart", token)
	return f.cart()
}

func (f *fakeClient) AddToCart(ctx context.Context, token, productID string, quantity int) (*models.Cart, error) {
	f.record("AddToCart", token)
	f.LastQuantity = quantity
	return f.cart()
}

func (f *fakeClient) UpdateCartItem(ctx context.Context, token, productID string, quantity int) (*models.Cart, error) {
	f.record("UpdateCartItem", token)
	f.LastQuantity = quantity
	return f.cart()
}

func (f *fakeClient) RemoveCartItem(ctx context.Context, token, productID string) (*models.Cart, error) {
	f.record("RemoveCartItem", token)
	return f.cart()
}

func (f *fakeClient) ClearCart(ctx context.Context, token string) (*models.Cart, error) {
	f.record("ClearCart", token)
	return f.cart()
}

func (f *fakeClient) UploadImage(ctx context.Context, token string, file client.UploadFile) (*models.UploadedImage, error) {
	f.record("UploadImage", token)
	f.LastUpload = []client.UploadFile{file}
	if f.UploadErr != nil {
		return nil, f.UploadErr
	}
	return &f.UploadRet[0], nil
}

func (f *fakeClient) UploadImages(ctx context.Context, token string, files []client.UploadFile) ([]models.UploadedImage, error) {
	f.record("UploadImages", token)
	f.LastUpload = files
	return f.UploadRet, f.UploadErr
}

// ---- fixtures ----

const testOrigin = "http://localhost:5000"

func newTestStorage(t *testing.T) *storage.LocalStorage {
	t.Helper()
	db, err := storage.OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewLocalStorage(localstorage.NewSQLiteRepository(db), testOrigin)
}

type fixture struct {
	client  *fakeClient
	storage *storage.LocalStorage
	hub     *broadcast.Hub
	session *SessionStore
	cart    *CartStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fc := &fakeClient{}
	st := newTestStorage(t)
	hub := broadcast.NewHub()
	session := NewSessionStore(fc, st, hub, logging.Discard())
	cart := NewCartStore(fc, session, hub, logging.Discard())
	t.Cleanup(func() {
		cart.Close()
		session.Close()
	})
	return &fixture{client: fc, storage: st, hub: hub, session: session, cart: cart}
}

// signIn logs in with a canned payload for token.
func (f *fixture) signIn(t *testing.T, token string) {
	t.Helper()
	f.client.LoginRet = &models.AuthPayload{Token: token, User: models.User{ID: "u1", Name: "Ann", Email: "a@b.c"}}
	res := f.session.Login(context.Background(), "a@b.c", "secret1")
	require.True(t, res.Success, res.Message)
}

func sampleCart() *models.Cart {
	return &models.Cart{
		ID: "c1",
		Items: []models.CartLine{{
			Product:  models.ProductRef{Product: models.Product{ID: "p1", Name: "Lamp", Price: 10, Stock: 4}},
			Price:    10,
			Quantity: 2,
		}},
		TotalItems: 2,
		TotalPrice: 20,
	}
}
