// Package render formats API data for the terminal.
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/vibecart/internal/client/imageurl"
	"github.com/dmitrijs2005/vibecart/internal/client/metrics"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/microcosm-cc/bluemonday"
)

const listDescriptionWidth = 40

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Renderer writes human-readable views to w.
type Renderer struct {
	w      io.Writer
	images *imageurl.Resolver
	policy *bluemonday.Policy
}

func New(w io.Writer, images *imageurl.Resolver) *Renderer {
	return &Renderer{w: w, images: images, policy: bluemonday.StrictPolicy()}
}

// PlainText strips markup from seller-supplied text and folds whitespace.
func (r *Renderer) PlainText(s string) string {
	clean := html.UnescapeString(r.policy.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

func Money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.w, s)
}

func visibility(p models.Product) string {
	if p.IsPublic {
		return "public"
	}
	return "private"
}

// Products prints a catalog listing.
func (r *Renderer) Products(products []models.Product) {
	if len(products) == 0 {
		r.println(mutedStyle.Render("No products found."))
		return
	}
	t := newTable("ID", "NAME", "PRICE", "STOCK", "CATEGORY", "DESCRIPTION")
	for _, p := range products {
		t.Row(p.ID, p.Name, Money(p.Price), strconv.Itoa(p.Stock), p.Category,
			truncate(r.PlainText(p.Description), listDescriptionWidth))
	}
	r.println(t.String())
}

// SellerProducts is the listing for the signed-in seller, with visibility.
func (r *Renderer) SellerProducts(products []models.Product) {
	if len(products) == 0 {
		r.println(mutedStyle.Render("You have not listed any products yet."))
		return
	}
	t := newTable("ID", "NAME", "PRICE", "STOCK", "VISIBILITY")
	for _, p := range products {
		stock := strconv.Itoa(p.Stock)
		if p.Stock < models.LowStockThreshold {
			stock = warnStyle.Render(stock)
		}
		t.Row(p.ID, p.Name, Money(p.Price), stock, visibility(p))
	}
	r.println(t.String())
}

// Product prints one product in full.
func (r *Renderer) Product(p *models.Product) {
	r.println(titleStyle.Render(p.Name))
	fmt.Fprintf(r.w, "  id:        %s\n", p.ID)
	fmt.Fprintf(r.w, "  price:     %s\n", Money(p.Price))
	fmt.Fprintf(r.w, "  category:  %s\n", p.Category)
	if p.Stock > 0 {
		fmt.Fprintf(r.w, "  stock:     %d\n", p.Stock)
	} else {
		fmt.Fprintf(r.w, "  stock:     %s\n", warnStyle.Render("out of stock"))
	}
	primary := p.Image
	if primary == "" && len(p.Images) > 0 {
		primary = p.Images[0]
	}
	fmt.Fprintf(r.w, "  image:     %s\n", r.images.URL(primary))
	for _, img := range p.Images {
		if img == primary {
			continue
		}
		fmt.Fprintf(r.w, "             %s\n", r.images.URL(img))
	}
	if d := r.PlainText(p.Description); d != "" {
		fmt.Fprintf(r.w, "\n  %s\n", d)
	}
}

// Cart prints the cart snapshot using only server-computed totals.
func (r *Renderer) Cart(c *models.Cart) {
	if c == nil || len(c.Items) == 0 {
		r.println(mutedStyle.Render("Your cart is empty."))
		return
	}
	t := newTable("ID", "PRODUCT", "PRICE", "QTY", "STOCK")
	for _, l := range c.Items {
		t.Row(l.Product.ID, l.Product.Name, Money(l.Price), strconv.Itoa(l.Quantity), strconv.Itoa(l.Product.Stock))
	}
	r.println(t.String())
	fmt.Fprintf(r.w, "Items: %d   Total: %s\n", c.TotalItems, Money(c.TotalPrice))
}

func (r *Renderer) Dashboard(stats models.DashboardStats, products []models.Product) {
	r.println(titleStyle.Render("Seller dashboard"))
	fmt.Fprintf(r.w, "  products:        %d\n", stats.TotalProducts)
	fmt.Fprintf(r.w, "  public/private:  %d/%d\n", stats.PublicProducts, stats.PrivateProducts)
	fmt.Fprintf(r.w, "  inventory value: %s\n", Money(stats.TotalValue))
	low := strconv.Itoa(stats.LowStock)
	if stats.LowStock > 0 {
		low = warnStyle.Render(low)
	}
	fmt.Fprintf(r.w, "  low stock (<%d):  %s\n\n", models.LowStockThreshold, low)
	r.SellerProducts(products)
}

// User prints the identity and, when the credential carries one, its expiry.
func (r *Renderer) User(u *models.User, expires time.Time) {
	if u == nil {
		r.println(mutedStyle.Render("Not signed in."))
		return
	}
	fmt.Fprintf(r.w, "%s <%s>\n", titleStyle.Render(u.Name), u.Email)
	fmt.Fprintf(r.w, "  id:      %s\n", u.ID)
	if u.Role != "" {
		fmt.Fprintf(r.w, "  role:    %s\n", u.Role)
	}
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(r.w, "  since:   %s\n", u.CreatedAt.Format(time.DateOnly))
	}
	if !expires.IsZero() {
		fmt.Fprintf(r.w, "  expires: %s\n", expires.Local().Format(time.DateTime))
	}
}

func (r *Renderer) FieldErrors(errs []models.FieldError) {
	for _, e := range errs {
		if e.Field != "" {
			fmt.Fprintf(r.w, "  - %s: %s\n", e.Field, e.Message)
		} else {
			fmt.Fprintf(r.w, "  - %s\n", e.Message)
		}
	}
}

func (r *Renderer) Metrics(rows []metrics.RouteSummary) {
	if len(rows) == 0 {
		r.println(mutedStyle.Render("No requests yet."))
		return
	}
	t := newTable("ROUTE", "REQUESTS", "FAILED", "MEAN")
	for _, s := range rows {
		t.Row(s.Route, strconv.FormatUint(s.Requests, 10), strconv.FormatUint(s.Failures, 10),
			s.MeanTime.Round(time.Millisecond).String())
	}
	r.println(t.String())
}
