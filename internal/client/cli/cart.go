package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var errCartNeedsLogin = errors.New("Please login to use your cart")

// cartFailed turns a false store result into the store's message.
func (a *App) cartFailed(fallback string) error {
	if msg := a.cart.Error(); msg != "" {
		return errors.New(msg)
	}
	return errors.New(fallback)
}

func (a *App) Cart(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errCartNeedsLogin
	}
	if !a.cart.FetchCart(ctx) {
		return a.cartFailed("Failed to fetch cart")
	}
	a.render.Cart(a.cart.Cart())
	return nil
}

// Add puts qty (default 1) of a product in the cart, bounded by its stock.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("add <id> [qty]")
	}
	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return errors.New("Quantity must be a whole number of at least 1")
		}
		qty = n
	}
	if !a.isLoggedIn() {
		return errors.New("Please login to add items to cart")
	}

	p, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if p.Stock <= 0 {
		return errors.New("Out of stock")
	}
	if qty > p.Stock {
		return fmt.Errorf("Only %d available", p.Stock)
	}

	if !a.cart.AddToCart(ctx, p.ID, qty) {
		return a.cartFailed("Failed to add item to cart")
	}
	a.println(fmt.Sprintf("Product added to cart! (%d items)", a.cart.ItemCount()))
	return nil
}

// Qty sets a cart line's quantity within 1..stock.
func (a *App) Qty(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("qty <id> <n>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return usage("qty <id> <n>")
	}
	if !a.isLoggedIn() {
		return errCartNeedsLogin
	}
	if n < 1 {
		return errors.New("Quantity must be at least 1; use remove to drop the item")
	}
	line, ok := a.cart.Cart().Line(args[0])
	if !ok {
		return errors.New("That product is not in your cart")
	}
	if stock := line.Product.Stock; stock > 0 && n > stock {
		return fmt.Errorf("Only %d available", stock)
	}

	if !a.cart.UpdateQuantity(ctx, args[0], n) {
		return a.cartFailed("Failed to update quantity")
	}
	a.render.Cart(a.cart.Cart())
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("remove <id>")
	}
	if !a.isLoggedIn() {
		return errCartNeedsLogin
	}
	ok, err := GetConfirm(a.reader, "Remove this item from cart?", a.out)
	if err != nil || !ok {
		return err
	}
	if !a.cart.RemoveFromCart(ctx, args[0]) {
		return a.cartFailed("Failed to remove item")
	}
	a.render.Cart(a.cart.Cart())
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errCartNeedsLogin
	}
	ok, err := GetConfirm(a.reader, "Clear entire cart?", a.out)
	if err != nil || !ok {
		return err
	}
	if !a.cart.ClearCart(ctx) {
		return a.cartFailed("Failed to clear cart")
	}
	a.println("Cart cleared.")
	return nil
}

// Metrics prints per-route request counts and latency for this session.
func (a *App) Metrics(ctx context.Context) error {
	rows, err := a.metrics.Summary()
	if err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}
	a.render.Metrics(rows)
	return nil
}
