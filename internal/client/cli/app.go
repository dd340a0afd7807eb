package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/vibecart/internal/client/broadcast"
	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/client/config"
	"github.com/dmitrijs2005/vibecart/internal/client/imageurl"
	"github.com/dmitrijs2005/vibecart/internal/client/metrics"
	"github.com/dmitrijs2005/vibecart/internal/client/render"
	"github.com/dmitrijs2005/vibecart/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/vibecart/internal/client/services"
	"github.com/dmitrijs2005/vibecart/internal/client/storage"
	"github.com/dmitrijs2005/vibecart/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger

	db      *sql.DB
	relay   *broadcast.FileRelay
	metrics *metrics.Metrics

	session   *services.SessionStore
	cart      *services.CartStore
	catalog   services.CatalogService
	dashboard *services.DashboardService
	uploads   *services.UploadService

	render *render.Renderer
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens storage under cfg.DataDir and builds every store. The
// session is constructed before the cart so it handles logout events first.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := storage.OpenDatabase(ctx, cfg.StoragePath())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	m := metrics.New()
	api := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout,
		client.WithMetrics(m),
		client.WithLogger(log),
	)

	local := storage.NewLocalStorage(localstorage.NewSQLiteRepository(db), cfg.APIBaseURL)
	hub := broadcast.NewHub()
	relay := broadcast.NewFileRelay(cfg.DataDir, hub, log)

	session := services.NewSessionStore(api, local, relay, log)
	cart := services.NewCartStore(api, session, relay, log)

	images := imageurl.New(cfg.BackendURL, cfg.LegacyImageHost, cfg.PlaceholderImageURL)

	return &App{
		config:    cfg,
		log:       log,
		db:        db,
		relay:     relay,
		metrics:   m,
		session:   session,
		cart:      cart,
		catalog:   services.NewCatalogService(api, session, log),
		dashboard: services.NewDashboardService(api, session, log),
		uploads:   services.NewUploadService(api, session, cfg.APIBaseURL, log),
		render:    render.New(out, images),
		reader:    bufio.NewReader(in),
		out:       out,
	}, nil
}

// Run restores the session, starts watching for logouts from other
// processes and serves the REPL until the input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.relay.Start(ctx); err != nil {
		a.log.Warn(ctx, "cross-process logout disabled", "error", err)
	}

	if err := a.session.Init(ctx); err != nil {
		a.log.Warn(ctx, "session not restored", "error", err)
	}
	if a.session.IsAuthenticated() {
		a.cart.FetchCart(ctx)
	}

	fmt.Fprintln(a.out, "Welcome to vibecart (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// Close releases the watcher and the database.
func (a *App) Close() {
	a.relay.Stop()
	a.cart.Close()
	a.session.Close()
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing storage", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status is the prompt decoration: signed-in name and cart size.
func (a *App) status() string {
	u := a.session.User()
	if u == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s, cart: %d)", u.Name, a.cart.ItemCount())
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
