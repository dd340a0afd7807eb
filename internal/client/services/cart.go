package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/vibecart/internal/client/broadcast"
	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/dmitrijs2005/vibecart/internal/logging"
)

const (
	msgFetchCartFailed = "Failed to fetch cart"
	msgAddNeedsLogin   = "Please login to add items to cart"
	msgAddFailed       = "Failed to add item to cart"
	msgQuantityFailed  = "Failed to update quantity"
	msgRemoveFailed    = "Failed to remove item"
	msgClearCartFailed = "Failed to clear cart"
	defaultAddQuantity = 1
)

// CartStore holds the last cart snapshot the server returned. The snapshot
// is only ever replaced wholesale; totals are never computed locally.
type CartStore struct {
	client  client.Client
	session CredentialSource
	log     logging.Logger

	mu       sync.RWMutex
	cart     *models.Cart
	err      string
	inFlight int

	unsubscribe func()
}

// NewCartStore builds the store and subscribes it to logout events. It must
// be created after the session so the session reconciles first.
func NewCartStore(c client.Client, session CredentialSource, ch broadcast.Channel, log logging.Logger) *CartStore {
	s := &CartStore{
		client:  c,
		session: session,
		log:     log.With("component", "cart"),
	}
	s.unsubscribe = ch.Subscribe(broadcast.KindLogout, s.onLogout)
	return s
}

func (s *CartStore) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *CartStore) onLogout(ctx context.Context, _ broadcast.Event) {
	if s.session.Credential() != "" {
		return
	}
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
}

func (s *CartStore) FetchCart(ctx context.Context) bool {
	token := s.session.Credential()
	if token == "" {
		return false
	}
	return s.run(ctx, token, "fetch", msgFetchCartFailed, func() (*models.Cart, error) {
		return s.client.GetCart(ctx, token)
	})
}

// AddToCart adds quantity of productID; quantity < 1 adds one.
func (s *CartStore) AddToCart(ctx context.Context, productID string, quantity int) bool {
	token := s.session.Credential()
	if token == "" {
		s.mu.Lock()
		s.err = msgAddNeedsLogin
		s.mu.Unlock()
		return false
	}
	if quantity < 1 {
		quantity = defaultAddQuantity
	}
	return s.run(ctx, token, "add", msgAddFailed, func() (*models.Cart, error) {
		return s.client.AddToCart(ctx, token, productID, quantity)
	})
}

// UpdateQuantity sets the line's quantity. Bounds are the caller's job.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) bool {
	token := s.session.Credential()
	if token == "" {
		return false
	}
	return s.run(ctx, token, "update", msgQuantityFailed, func() (*models.Cart, error) {
		return s.client.UpdateCartItem(ctx, token, productID, quantity)
	})
}

func (s *CartStore) RemoveFromCart(ctx context.Context, productID string) bool {
	token := s.session.Credential()
	if token == "" {
		return false
	}
	return s.run(ctx, token, "remove", msgRemoveFailed, func() (*models.Cart, error) {
		return s.client.RemoveCartItem(ctx, token, productID)
	})
}

func (s *CartStore) ClearCart(ctx context.Context) bool {
	token := s.session.Credential()
	if token == "" {
		return false
	}
	return s.run(ctx, token, "clear", msgClearCartFailed, func() (*models.Cart, error) {
		return s.client.ClearCart(ctx, token)
	})
}

// run performs one cart request made with token.
func (s *CartStore) run(ctx context.Context, token, op, fallback string, call func() (*models.Cart, error)) bool {
	s.mu.Lock()
	s.inFlight++
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	cart, err := call()
	if err != nil {
		msg := client.MessageOf(err, fallback)
		s.log.Warn(ctx, "cart request failed", "op", op, "error", err)

		s.mu.Lock()
		s.err = msg
		s.mu.Unlock()

		if errors.Is(err, client.ErrUnauthorized) {
			s.session.Invalidate(ctx, token)
		}
		return false
	}

	// A response to a credential that is no longer held must not bring the
	// snapshot back after logout.
	if s.session.Credential() != token {
		return false
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()

	s.log.Debug(ctx, "cart replaced", "op", op, "items", cart.TotalItems, "total", cart.TotalPrice)
	return true
}

// Cart returns a deep copy of the snapshot, or nil when there is none.
func (s *CartStore) Cart() *models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// ItemCount is the server's totalItems, or 0 without a snapshot.
func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.TotalItems
}

func (s *CartStore) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.TotalPrice
}

// Error is the message of the last failed operation, or "".
func (s *CartStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *CartStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}
