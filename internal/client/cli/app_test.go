package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/vibecart/internal/client/config"
	"github.com/dmitrijs2005/vibecart/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, apiURL, dataDir, input string) (*App, *bytes.Buffer) {
	t.Helper()

	oldTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = oldTerm })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = apiURL
	cfg.DataDir = dataDir
	cfg.RequestTimeout = 2 * time.Second

	var out bytes.Buffer
	app, err := NewApp(context.Background(), cfg, logging.Discard(), strings.NewReader(input), &out)
	require.NoError(t, err)
	return app, &out
}

func TestApp_ShoppingSession(t *testing.T) {
	capturePrintln(t)
	fs, srv := newFakeStore(t)

	input := strings.Join([]string{
		"login", "a@b.c", "secret1",
		"add p1 2",
		"add p2",
		"qty p1 9",
		"qty p1 3",
		"cart",
		"logout",
		"cart",
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, srv.URL, t.TempDir(), input)
	require.NoError(t, app.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Welcome back, Ann!")
	assert.Contains(t, text, "Product added to cart! (2 items)")
	assert.Contains(t, text, "Items: 3   Total: $30.00")
	assert.Contains(t, text, "Logged out.")

	reqs := fs.Requests()
	assert.Contains(t, reqs, "POST /api/cart/add auth=yes")
	assert.Contains(t, reqs, "PUT /api/cart/update/p1 auth=yes")
	// the out-of-stock product and the over-stock quantity never reach the cart API
	assert.Equal(t, 1, countPrefix(reqs, "POST /api/cart/add"))
	assert.Equal(t, 1, countPrefix(reqs, "PUT /api/cart/update"))
	// after logout nothing is sent with the old credential
	for _, r := range reqs[indexOf(reqs, "GET /api/cart auth=yes")+1:] {
		assert.NotContains(t, r, "auth=yes")
	}
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	capturePrintln(t)
	_, srv := newFakeStore(t)
	dir := t.TempDir()

	app, _ := newTestApp(t, srv.URL, dir, "login\na@b.c\nsecret1\nexit\n")
	require.NoError(t, app.Run(context.Background()))

	app2, _ := newTestApp(t, srv.URL, dir, "")
	defer app2.Close()
	require.NoError(t, app2.session.Init(context.Background()))

	assert.True(t, app2.isLoggedIn())
	assert.Equal(t, "(Ann, cart: 0)", app2.status())
}

func TestApp_LoginFailureShowsServerMessage(t *testing.T) {
	capturePrintln(t)
	_, srv := newFakeStore(t)

	app, _ := newTestApp(t, srv.URL, t.TempDir(), "a@b.c\nwrong\n")
	defer app.Close()

	err := app.Login(context.Background())
	assert.EqualError(t, err, "Invalid credentials")
	assert.Equal(t, "(guest)", app.status())
}

func TestApp_GuestCommands(t *testing.T) {
	capturePrintln(t)
	_, srv := newFakeStore(t)

	app, out := newTestApp(t, srv.URL, t.TempDir(), "")
	defer app.Close()
	ctx := context.Background()

	require.NoError(t, app.Products(ctx))
	assert.Contains(t, out.String(), "Lamp")
	assert.Contains(t, out.String(), "Warm light")
	assert.NotContains(t, out.String(), "<b>")

	assert.EqualError(t, app.Cart(ctx), "Please login to use your cart")
	assert.EqualError(t, app.Add(ctx, []string{"p1"}), "Please login to add items to cart")
	assert.EqualError(t, app.Dashboard(ctx), "Please login to view dashboard")
	assert.EqualError(t, app.Whoami(ctx), "Please login first")
	assert.EqualError(t, app.Product(ctx, []string{"nope"}), "Product not found")
	assert.EqualError(t, app.Qty(ctx, []string{"p1"}), "Usage: qty <id> <n>")

	require.NoError(t, app.Metrics(ctx))
	assert.Contains(t, out.String(), "GET /api/products")
}

func countPrefix(xs []string, prefix string) int {
	n := 0
	for _, x := range xs {
		if strings.HasPrefix(x, prefix) {
			n++
		}
	}
	return n
}

func indexOf(xs []string, want string) int {
	last := -1
	for i, x := range xs {
		if x == want {
			last = i
		}
	}
	return last
}
